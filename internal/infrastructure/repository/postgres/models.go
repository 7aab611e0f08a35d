package postgres

import (
	"database/sql"
	"time"
)

type externalAPITableModel struct {
	ID                int64  `db:"id"`
	Name              string `db:"name"`
	RateLimitKind     string `db:"rate_limit_kind"`
	RequestsPerMinute int    `db:"requests_per_minute"`
	RequestIntervalMS int64  `db:"request_interval_ms"`
}

type requestTypeTableModel struct {
	ID          int64  `db:"id"`
	APIID       int64  `db:"api_id"`
	URLTemplate string `db:"url_template"`
	Description string `db:"description"`
	VersionIter int    `db:"version_iter"`
}

type requestAuditTableModel struct {
	ID            string    `db:"id"`
	APIID         int64     `db:"api_id"`
	RequestTypeID int64     `db:"request_type_id"`
	URL           string    `db:"url"`
	RequestTime   time.Time `db:"request_time"`
	ContentHash   string    `db:"content_hash"`
	ResponseCode  int       `db:"response_code"`
	Success       bool      `db:"success"`
}

type entityMappingTableModel struct {
	ID              int64          `db:"id,readonly"`
	APIID           int64          `db:"api_id"`
	Entity          string         `db:"entity"`
	InternalID      int64          `db:"internal_id"`
	ExternalNumeric sql.NullInt64  `db:"external_numeric"`
	ExternalText    sql.NullString `db:"external_text"`
}

type teamTableModel struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Active bool   `db:"active"`
}

type fixtureTableModel struct {
	ID         int64         `db:"id,readonly"`
	HomeTeamID int64         `db:"home_team_id"`
	AwayTeamID int64         `db:"away_team_id"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	KickoffAt  time.Time     `db:"kickoff_at"`
	Status     string        `db:"status"`
}
