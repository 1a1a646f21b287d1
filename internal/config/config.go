/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
    "fmt"
    "log"
    "os"
    "time"
)

// DefaultJiraBaseURL is the upstream tracker's REST API root.
const DefaultJiraBaseURL = "https://fktech.atlassian.net/rest/api/2"

type Config struct {
    AppEnv   string
    TZ       string
    HTTPAddr string

    // FrontURL is the single origin allowed by CORS.
    FrontURL string

    JiraBaseURL string
    HTTPTimeout time.Duration

    DBUser string
    DBPass string
    DBName string
    DBHost string
    DBPort string
}

func getenv(key, def string) string {
    v := os.Getenv(key)
    if v == "" { return def }
    return v
}

func dur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" { return def }
    d, err := time.ParseDuration(v)
    if err != nil { return def }
    return d
}

func Load() Config {
    cfg := Config{
        AppEnv:   getenv("APP_ENV", "dev"),
        TZ:       getenv("APP_TZ", ""),
        HTTPAddr: ":" + getenv("PORT", "3010"),

        FrontURL: getenv("FRONT_URL", "http://localhost:5500"),

        JiraBaseURL: getenv("JIRA_BASE_URL", DefaultJiraBaseURL),
        HTTPTimeout: dur("HTTP_TIMEOUT", 15*time.Second),

        DBUser: getenv("DB_USER", "postgres"),
        DBPass: getenv("DB_PASS", "adminadmin"),
        DBName: getenv("DB_NAME", "timeshit"),
        DBHost: getenv("DB_HOST", "localhost"),
        DBPort: getenv("DB_PORT", "5432"),
    }

    // set global timezone if available
    if cfg.TZ != "" {
        if loc, err := time.LoadLocation(cfg.TZ); err == nil {
            time.Local = loc
        } else {
            log.Printf("warning: cannot load TZ %s: %v", cfg.TZ, err)
        }
    }
    return cfg
}

// DBDSN assembles the Postgres connection string from the DB_* parts.
func (c Config) DBDSN() string {
    return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
        c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}
