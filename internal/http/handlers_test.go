package http

import (
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/ema1103/timeshit-backend/internal/adapters/jira"
    "github.com/ema1103/timeshit-backend/internal/config"
    "github.com/ema1103/timeshit-backend/internal/domain"
    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

type stubService struct {
    report domain.Report
    out    map[string]any
    err    error

    creds    jira.Credentials
    from, to string
    key, id  string
    fields   jira.WorklogFields
}

func (s *stubService) WorklogReport(_ context.Context, creds jira.Credentials, from, to string) (domain.Report, error) {
    s.creds, s.from, s.to = creds, from, to
    return s.report, s.err
}

func (s *stubService) CreateWorklog(_ context.Context, creds jira.Credentials, key string, fields jira.WorklogFields) (map[string]any, error) {
    s.creds, s.key, s.fields = creds, key, fields
    return s.out, s.err
}

func (s *stubService) UpdateWorklog(_ context.Context, creds jira.Credentials, key, id string, fields jira.WorklogFields) (map[string]any, error) {
    s.creds, s.key, s.id, s.fields = creds, key, id, fields
    return s.out, s.err
}

func (s *stubService) DeleteWorklog(_ context.Context, creds jira.Credentials, key, id string) (map[string]any, error) {
    s.creds, s.key, s.id = creds, key, id
    return s.out, s.err
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func serve(svc *stubService, db pinger) (*httptest.ResponseRecorder, func(req *http.Request)) {
    cfg := config.Config{FrontURL: "http://localhost:5500"}
    router := NewRouter(cfg, zerolog.Nop(), svc, db)
    rec := httptest.NewRecorder()
    return rec, func(req *http.Request) { router.ServeHTTP(rec, req) }
}

func TestLiveness(t *testing.T) {
    rec, do := serve(&stubService{}, stubPinger{})
    do(httptest.NewRequest("GET", "/", nil))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.NotEmpty(t, rec.Body.String())
}

func TestHealthz(t *testing.T) {
    rec, do := serve(&stubService{}, stubPinger{err: errors.New("down")})
    do(httptest.NewRequest("GET", "/healthz", nil))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `{"ok":true,"db":false}`, rec.Body.String())
}

func TestGetWorklogs(t *testing.T) {
    svc := &stubService{report: domain.Report{
        Authors:  []domain.Author{{EmailAddress: "alice@example.com", DisplayName: "Alice"}},
        Worklogs: map[string]domain.DateBucket{},
    }}
    rec, do := serve(svc, stubPinger{})
    req := httptest.NewRequest("GET", "/worklog/2024-01-01/2024-01-31", nil)
    req.Header.Set("email", "alice@example.com")
    req.Header.Set("token", "tok")
    do(req)

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "2024-01-01", svc.from)
    assert.Equal(t, "2024-01-31", svc.to)
    assert.Equal(t, jira.Credentials{Email: "alice@example.com", Token: "tok"}, svc.creds)
    assert.Contains(t, rec.Body.String(), `"authors"`)
    assert.Contains(t, rec.Body.String(), `"worklogs"`)
}

func TestGetWorklogsUpstreamFailure(t *testing.T) {
    svc := &stubService{err: errors.New("jira api status=500 body=boom")}
    rec, do := serve(svc, stubPinger{})
    do(httptest.NewRequest("GET", "/worklog/2024-01-01/2024-01-31", nil))

    assert.Equal(t, http.StatusBadGateway, rec.Code)
    assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestAddWorklogPassthrough(t *testing.T) {
    svc := &stubService{out: map[string]any{"id": "42", "timeSpent": "15m"}}
    rec, do := serve(svc, stubPinger{})
    body := `{"comment":"dev","started":"2024-01-05T09:00:00.000+0000","timeSpentSeconds":900,"key":"123"}`
    req := httptest.NewRequest("POST", "/worklog", strings.NewReader(body))
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("email", "alice@example.com")
    req.Header.Set("token", "tok")
    do(req)

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "123", svc.key)
    assert.Equal(t, 900, svc.fields.TimeSpentSeconds)
    assert.JSONEq(t, `{"id":"42","timeSpent":"15m"}`, rec.Body.String())
}

func TestWriteFailureKeepsStatus200(t *testing.T) {
    svc := &stubService{err: errors.New("jira api status=403 body=denied")}
    rec, do := serve(svc, stubPinger{})
    body := `{"comment":"dev","started":"x","timeSpentSeconds":1,"key":"123"}`
    req := httptest.NewRequest("POST", "/worklog", strings.NewReader(body))
    req.Header.Set("Content-Type", "application/json")
    do(req)

    // error surfaces in the payload, not the status
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestUpdateAndDeleteWorklog(t *testing.T) {
    svc := &stubService{out: map[string]any{"id": "42"}}
    rec, do := serve(svc, stubPinger{})
    req := httptest.NewRequest("PUT", "/worklog", strings.NewReader(`{"comment":"c","key":"123","id":"42"}`))
    req.Header.Set("Content-Type", "application/json")
    do(req)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "123", svc.key)
    assert.Equal(t, "42", svc.id)

    svc2 := &stubService{out: map[string]any{}}
    rec2, do2 := serve(svc2, stubPinger{})
    req2 := httptest.NewRequest("DELETE", "/worklog", strings.NewReader(`{"key":"123","id":"42"}`))
    req2.Header.Set("Content-Type", "application/json")
    do2(req2)
    assert.Equal(t, http.StatusOK, rec2.Code)
    assert.Equal(t, "123", svc2.key)
    assert.Equal(t, "42", svc2.id)
}

func TestCORSRestrictedToFrontURL(t *testing.T) {
    rec, do := serve(&stubService{}, stubPinger{})
    req := httptest.NewRequest("GET", "/", nil)
    req.Header.Set("Origin", "http://localhost:5500")
    do(req)
    assert.Equal(t, "http://localhost:5500", rec.Header().Get("Access-Control-Allow-Origin"))

    rec2, do2 := serve(&stubService{}, stubPinger{})
    req2 := httptest.NewRequest("GET", "/", nil)
    req2.Header.Set("Origin", "http://evil.example")
    do2(req2)
    assert.Empty(t, rec2.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
    rec, do := serve(&stubService{}, stubPinger{})
    req := httptest.NewRequest("OPTIONS", "/worklog", nil)
    req.Header.Set("Origin", "http://localhost:5500")
    req.Header.Set("Access-Control-Request-Method", "POST")
    req.Header.Set("Access-Control-Request-Headers", "token,email,content-type")
    do(req)
    require.Equal(t, http.StatusNoContent, rec.Code)
    assert.Equal(t, "http://localhost:5500", rec.Header().Get("Access-Control-Allow-Origin"))
}
