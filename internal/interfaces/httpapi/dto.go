package httpapi

import (
	"time"

	"github.com/riskibarqy/sportsfeed/internal/domain/fixture"
	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
)

type teamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type fixtureDTO struct {
	ID         int64  `json:"id"`
	HomeTeamID int64  `json:"home_team_id"`
	AwayTeamID int64  `json:"away_team_id"`
	HomeScore  *int   `json:"home_score"`
	AwayScore  *int   `json:"away_score"`
	KickoffAt  string `json:"kickoff_at"`
	Status     string `json:"status"`
	Final      bool   `json:"final"`
}

type refreshDTO struct {
	Refreshed bool `json:"refreshed"`
}

type auditDTO struct {
	ID            string `json:"id"`
	APIID         int64  `json:"api_id"`
	RequestTypeID int64  `json:"request_type_id"`
	URL           string `json:"url"`
	RequestedAt   string `json:"requested_at"`
	ContentHash   string `json:"content_hash"`
	ResponseCode  int    `json:"response_code"`
	Successful    bool   `json:"successful"`
}

func fixtureToDTO(f fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:         f.ID,
		HomeTeamID: f.HomeTeamID,
		AwayTeamID: f.AwayTeamID,
		HomeScore:  f.HomeScore,
		AwayScore:  f.AwayScore,
		KickoffAt:  f.KickoffAt.UTC().Format(time.RFC3339),
		Status:     string(f.Status),
		Final:      f.Status.IsFinal(),
	}
}

func auditToDTO(a requestaudit.Audit) auditDTO {
	return auditDTO{
		ID:            a.ID,
		APIID:         a.APIID,
		RequestTypeID: a.RequestTypeID,
		URL:           a.URL,
		RequestedAt:   a.RequestedAt.UTC().Format(time.RFC3339Nano),
		ContentHash:   a.ContentHash,
		ResponseCode:  a.ResponseCode,
		Successful:    a.Successful,
	}
}
