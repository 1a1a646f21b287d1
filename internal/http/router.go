/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "github.com/ema1103/timeshit-backend/internal/config"
    "github.com/gin-contrib/cors"
    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"
)

func NewRouter(cfg config.Config, log zerolog.Logger, svc service, db pinger) *gin.Engine {
    if cfg.AppEnv != "dev" { gin.SetMode(gin.ReleaseMode) }
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(func(c *gin.Context) {
        c.Next()
        log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
    })
    r.Use(cors.New(cors.Config{
        AllowOrigins: []string{cfg.FrontURL},
        AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
        AllowHeaders: []string{"Content-Type", "token", "email"},
    }))

    h := NewHandlers(cfg, log, svc, db)

    r.GET("/", h.Live)
    r.GET("/healthz", h.Healthz)
    r.GET("/worklog/:from/:to", h.GetWorklogs)
    r.POST("/worklog", h.AddWorklog)
    r.PUT("/worklog", h.UpdateWorklog)
    r.DELETE("/worklog", h.DeleteWorklog)

    return r
}
