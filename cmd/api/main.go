/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/ema1103/timeshit-backend/internal/adapters/jira"
    "github.com/ema1103/timeshit-backend/internal/config"
    httpx "github.com/ema1103/timeshit-backend/internal/http"
    "github.com/ema1103/timeshit-backend/internal/logger"
    "github.com/ema1103/timeshit-backend/internal/repo"
    "github.com/ema1103/timeshit-backend/internal/services"
)

func main() {
    cfg := config.Load()
    log := logger.New(cfg)
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    // DB pool is part of the deployment but unused by the worklog paths;
    // a failure to open it must not take the proxy down.
    var db *repo.DB
    if d, err := repo.Open(ctx, cfg, log); err != nil {
        log.Warn().Err(err).Msg("db open failed; continuing without pool")
    } else {
        db = d
        defer db.Close()
    }

    jc := jira.NewClient(cfg, log)
    svc := services.NewService(cfg, log, jc)

    router := httpx.NewRouter(cfg, log, svc, db)

    errCh := make(chan error, 1)
    go func() { errCh <- router.Run(cfg.HTTPAddr) }()
    log.Info().Str("addr", cfg.HTTPAddr).Str("origin", cfg.FrontURL).Msg("listening")

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil { log.Error().Err(err).Msg("http server error") }
    }

    time.Sleep(500 * time.Millisecond)
}
