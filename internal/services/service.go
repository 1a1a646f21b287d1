/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "sync"

    "github.com/ema1103/timeshit-backend/internal/adapters/jira"
    "github.com/ema1103/timeshit-backend/internal/config"
    "github.com/ema1103/timeshit-backend/internal/domain"
    "github.com/rs/zerolog"
)

type Service struct {
    cfg  config.Config
    log  zerolog.Logger
    jira *jira.Client
}

func NewService(cfg config.Config, log zerolog.Logger, jc *jira.Client) *Service {
    return &Service{cfg: cfg, log: log, jira: jc}
}

// WorklogReport runs the read pipeline: search the caller's issues in range,
// fetch every issue's worklogs concurrently, aggregate. The per-issue
// fetches fan out one goroutine per issue and land in an index-correlated
// slice, so results are consumed in issue order regardless of completion
// order. Any single failure fails the whole report.
func (s *Service) WorklogReport(ctx context.Context, creds jira.Credentials, from, to string) (domain.Report, error) {
    search, err := s.jira.SearchWorklogIssues(ctx, creds, from, to)
    if err != nil { return domain.Report{}, err }

    lists := make([][]jira.WorklogRecord, len(search.Issues))
    errs := make([]error, len(search.Issues))
    var wg sync.WaitGroup
    for i, issue := range search.Issues {
        wg.Add(1)
        go func(i int, key string) {
            defer wg.Done()
            wl, err := s.jira.IssueWorklogs(ctx, creds, key)
            if err != nil { errs[i] = err; return }
            lists[i] = wl.Worklogs
        }(i, issue.Key)
    }
    wg.Wait()
    for _, err := range errs {
        if err != nil { return domain.Report{}, err }
    }

    return buildReport(search.Issues, lists, from, to)
}

func (s *Service) CreateWorklog(ctx context.Context, creds jira.Credentials, key string, fields jira.WorklogFields) (map[string]any, error) {
    return s.jira.CreateWorklog(ctx, creds, key, fields)
}

func (s *Service) UpdateWorklog(ctx context.Context, creds jira.Credentials, key, id string, fields jira.WorklogFields) (map[string]any, error) {
    return s.jira.UpdateWorklog(ctx, creds, key, id, fields)
}

func (s *Service) DeleteWorklog(ctx context.Context, creds jira.Credentials, key, id string) (map[string]any, error) {
    return s.jira.DeleteWorklog(ctx, creds, key, id)
}
