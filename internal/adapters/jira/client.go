/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
    "context"
    "encoding/base64"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"

    "github.com/ema1103/timeshit-backend/internal/config"
    "github.com/rs/zerolog"
)

// issueKeyPrefix is prepended to the numeric key the front-end sends on
// write operations, matching the tracker's project.
const issueKeyPrefix = "CG-"

// Credentials carry the caller-supplied identity forwarded to the tracker.
// They are per-request, never configured server-side.
type Credentials struct {
    Email string
    Token string
}

func (cr Credentials) authorization() string {
    return "Basic " + base64.StdEncoding.EncodeToString([]byte(cr.Email+":"+cr.Token))
}

// WorklogFields is the body of a worklog create or update.
type WorklogFields struct {
    Comment          string `json:"comment"`
    Started          string `json:"started"`
    TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

type Author struct {
    EmailAddress string `json:"emailAddress"`
    DisplayName  string `json:"displayName"`
}

type IssueFields struct {
    Summary     string `json:"summary"`
    Description string `json:"description"`
    Parent      *Issue `json:"parent"`
}

type Issue struct {
    Key    string      `json:"key"`
    Fields IssueFields `json:"fields"`
}

type SearchResult struct {
    Issues []Issue `json:"issues"`
}

type WorklogRecord struct {
    ID               string  `json:"id"`
    Comment          string  `json:"comment"`
    Started          string  `json:"started"`
    TimeSpent        string  `json:"timeSpent"`
    TimeSpentSeconds int     `json:"timeSpentSeconds"`
    Author           *Author `json:"author"`
}

type WorklogList struct {
    Worklogs []WorklogRecord `json:"worklogs"`
}

type Client struct {
    baseURL string
    http    *http.Client
    log     zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    return &Client{
        baseURL: cfg.JiraBaseURL,
        http:    &http.Client{Timeout: cfg.HTTPTimeout},
        log:     log,
    }
}

func (c *Client) apiURL(path string, q url.Values) string {
    base := strings.TrimRight(c.baseURL, "/")
    if !strings.HasPrefix(path, "/") { path = "/" + path }
    u := base + path
    if len(q) > 0 { u = u + "?" + q.Encode() }
    return u
}

// doJSON issues one request and decodes the JSON response into out (when
// non-nil). Any non-2xx status is a single generic failure carrying the
// upstream body.
func (c *Client) doJSON(ctx context.Context, creds Credentials, method, u string, body, out any) error {
    if c.baseURL == "" { return errors.New("jira: empty baseURL") }
    var r io.Reader
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil { return err }
        r = strings.NewReader(string(b))
    }
    req, err := http.NewRequestWithContext(ctx, method, u, r)
    if err != nil { return err }
    req.Header.Set("Accept", "application/json")
    req.Header.Set("Authorization", creds.authorization())
    if body != nil { req.Header.Set("Content-Type", "application/json") }
    resp, err := c.http.Do(req)
    if err != nil { return err }
    defer resp.Body.Close()
    if resp.StatusCode >= 300 {
        b, _ := io.ReadAll(resp.Body)
        return fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
    }
    if out == nil { return nil }
    if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
        // a 204 delete has no body to decode
        if errors.Is(err, io.EOF) { return nil }
        return err
    }
    return nil
}

// SearchWorklogIssues finds issues the caller logged time on within the
// inclusive [from, to] date range. The JQL values are interpolated as the
// caller supplied them.
func (c *Client) SearchWorklogIssues(ctx context.Context, creds Credentials, from, to string) (*SearchResult, error) {
    jql := fmt.Sprintf("worklogAuthor='%s' AND worklogDate>='%s' AND worklogDate<='%s'", creds.Email, from, to)
    q := url.Values{}
    q.Set("jql", jql)
    u := c.apiURL("/search", q)
    var out SearchResult
    if err := c.doJSON(ctx, creds, http.MethodGet, u, nil, &out); err != nil { return nil, err }
    return &out, nil
}

// IssueWorklogs fetches the full worklog list of one issue.
func (c *Client) IssueWorklogs(ctx context.Context, creds Credentials, issueKey string) (*WorklogList, error) {
    if issueKey == "" { return nil, errors.New("jira: empty issue key") }
    u := c.apiURL("/issue/"+issueKey+"/worklog", nil)
    var out WorklogList
    if err := c.doJSON(ctx, creds, http.MethodGet, u, nil, &out); err != nil { return nil, err }
    return &out, nil
}

func writeQuery() url.Values {
    q := url.Values{}
    q.Set("notifyUsers", "false")
    return q
}

// CreateWorklog adds a worklog to issue CG-<key> and returns the upstream
// response as-is.
func (c *Client) CreateWorklog(ctx context.Context, creds Credentials, key string, fields WorklogFields) (map[string]any, error) {
    u := c.apiURL("/issue/"+issueKeyPrefix+key+"/worklog", writeQuery())
    var out map[string]any
    if err := c.doJSON(ctx, creds, http.MethodPost, u, fields, &out); err != nil { return nil, err }
    return out, nil
}

// UpdateWorklog rewrites an existing worklog on issue CG-<key>.
func (c *Client) UpdateWorklog(ctx context.Context, creds Credentials, key, id string, fields WorklogFields) (map[string]any, error) {
    u := c.apiURL("/issue/"+issueKeyPrefix+key+"/worklog/"+id, writeQuery())
    var out map[string]any
    if err := c.doJSON(ctx, creds, http.MethodPut, u, fields, &out); err != nil { return nil, err }
    return out, nil
}

// DeleteWorklog removes a worklog from issue CG-<key>. The tracker answers
// 204; an empty object is returned so the gateway still has JSON to pass on.
func (c *Client) DeleteWorklog(ctx context.Context, creds Credentials, key, id string) (map[string]any, error) {
    u := c.apiURL("/issue/"+issueKeyPrefix+key+"/worklog/"+id, writeQuery())
    out := map[string]any{}
    if err := c.doJSON(ctx, creds, http.MethodDelete, u, nil, &out); err != nil { return nil, err }
    return out, nil
}
