/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "fmt"
    "time"

    "github.com/ema1103/timeshit-backend/internal/adapters/jira"
    "github.com/ema1103/timeshit-backend/internal/domain"
)

var startedLayouts = []string{
    "2006-01-02T15:04:05.000-0700",
    "2006-01-02T15:04:05-0700",
    time.RFC3339Nano,
    time.RFC3339,
}

func parseStarted(s string) (time.Time, error) {
    for _, l := range startedLayouts {
        if t, err := time.Parse(l, s); err == nil { return t, nil }
    }
    return time.Time{}, fmt.Errorf("worklog: unparsable started timestamp %q", s)
}

// formatTotal renders a seconds total as "<H>h" or "<H>h <M>m".
func formatTotal(totalSeconds int) string {
    hours := totalSeconds / 3600
    minutes := (totalSeconds % 3600) / 60
    if minutes == 0 { return fmt.Sprintf("%dh", hours) }
    return fmt.Sprintf("%dh %dm", hours, minutes)
}

// buildReport turns the matched issues and their per-issue worklog lists
// into the date→author aggregation. worklogsByIssue is index-correlated
// with issues. The [from, to] range is inclusive, to through 23:59:59 of
// its day, both interpreted in server-local time.
//
// A record without an author or a usable started timestamp fails the whole
// aggregation; nothing is silently skipped. Inputs are not mutated.
func buildReport(issues []jira.Issue, worklogsByIssue [][]jira.WorklogRecord, from, to string) (domain.Report, error) {
    startDate, err := time.ParseInLocation("2006-01-02", from, time.Local)
    if err != nil { return domain.Report{}, fmt.Errorf("worklog: bad from date %q: %w", from, err) }
    endDate, err := time.ParseInLocation("2006-01-02 15:04:05", to+" 23:59:59", time.Local)
    if err != nil { return domain.Report{}, fmt.Errorf("worklog: bad to date %q: %w", to, err) }

    descriptions := make([]domain.IssueDescription, len(issues))
    for i, issue := range issues {
        d := domain.IssueDescription{
            Key:         issue.Key,
            Title:       issue.Fields.Summary,
            Description: issue.Fields.Description,
        }
        if p := issue.Fields.Parent; p != nil {
            key := p.Key
            title := p.Fields.Summary
            d.ParentKey = &key
            d.ParentTitle = &title
        }
        descriptions[i] = d
    }

    // flatten, attaching each issue's description by position
    var flat []domain.WorklogEntry
    for i := range worklogsByIssue {
        for _, wl := range worklogsByIssue[i] {
            if wl.Author == nil || wl.Author.EmailAddress == "" {
                return domain.Report{}, fmt.Errorf("worklog: record %q on issue %s has no author", wl.ID, issues[i].Key)
            }
            if wl.Started == "" {
                return domain.Report{}, fmt.Errorf("worklog: record %q on issue %s has no started timestamp", wl.ID, issues[i].Key)
            }
            flat = append(flat, domain.WorklogEntry{
                Comment:          wl.Comment,
                Started:          wl.Started,
                TimeSpent:        wl.TimeSpent,
                TimeSpentSeconds: wl.TimeSpentSeconds,
                Author:           domain.Author{EmailAddress: wl.Author.EmailAddress, DisplayName: wl.Author.DisplayName},
                Description:      descriptions[i],
                ID:               wl.ID,
            })
        }
    }

    // distinct authors by displayName, first appearance wins, computed
    // before range filtering as the consumers expect
    authors := make([]domain.Author, 0)
    seenNames := map[string]struct{}{}
    for _, e := range flat {
        if _, ok := seenNames[e.Author.DisplayName]; ok { continue }
        seenNames[e.Author.DisplayName] = struct{}{}
        authors = append(authors, e.Author)
    }

    worklogs := map[string]domain.DateBucket{}
    for _, e := range flat {
        started, err := parseStarted(e.Started)
        if err != nil { return domain.Report{}, err }
        if started.Before(startDate) || started.After(endDate) { continue }
        date := e.Started[:10]
        bucket, ok := worklogs[date]
        if !ok {
            bucket = domain.DateBucket{}
            worklogs[date] = bucket
        }
        email := e.Author.EmailAddress
        bucket[email] = append(bucket[email], e)
    }

    // per (date, author) trailing summary, computed once all real entries
    // for the pair are in place
    for _, bucket := range worklogs {
        for email, entries := range bucket {
            total := 0
            for _, item := range entries {
                total += item.(domain.WorklogEntry).TimeSpentSeconds
            }
            bucket[email] = append(entries, domain.DaySummary{
                TotalTimeSpentSeconds:   total,
                TotalTimeSpentFormatted: formatTotal(total),
            })
        }
    }

    return domain.Report{Authors: authors, Worklogs: worklogs}, nil
}
