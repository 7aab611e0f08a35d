package memory

import (
	"github.com/riskibarqy/sportsfeed/internal/domain/externalapi"
	"github.com/riskibarqy/sportsfeed/internal/domain/fixture"
	"github.com/riskibarqy/sportsfeed/internal/domain/mapping"
	"github.com/riskibarqy/sportsfeed/internal/domain/team"
)

const (
	APIIDFantasy      int64 = 0
	APIIDFootballData int64 = 1

	RequestTypeIDCompetitionMatches int64 = 1
)

func SeedAPIs() []externalapi.API {
	return []externalapi.API{
		{ID: APIIDFantasy, Name: "Fantasy EPL", RateLimit: externalapi.RateLimitStaggered, RequestIntervalMS: 10000},
		{ID: APIIDFootballData, Name: "football-data.org", RateLimit: externalapi.RateLimitStaggered, RequestIntervalMS: 10000},
	}
}

func SeedRequestTypes() []externalapi.RequestType {
	return []externalapi.RequestType{
		{
			ID:          RequestTypeIDCompetitionMatches,
			APIID:       APIIDFootballData,
			URLTemplate: "https://api.football-data.org/v2/competitions/[competition_id]/matches",
			Description: "All matches of one competition",
			VersionIter: 1,
		},
	}
}

type seedClub struct {
	name           string
	footballDataID int64
}

// seedClubs is ordered by internal team id.
var seedClubs = []seedClub{
	{"Arsenal", 57},
	{"Aston Villa", 58},
	{"Bournemouth", 1044},
	{"Brighton", 397},
	{"Burnley", 328},
	{"Chelsea", 61},
	{"Crystal Palace", 354},
	{"Everton", 62},
	{"Leicester", 338},
	{"Liverpool", 64},
	{"Man City", 65},
	{"Man United", 66},
	{"Newcastle", 67},
	{"Norwich", 68},
	{"Sheffield Utd", 356},
	{"Southampton", 340},
	{"Tottenham", 73},
	{"Watford", 346},
	{"West Ham", 563},
	{"Wolves", 76},
}

func SeedTeams() []team.Team {
	out := make([]team.Team, 0, len(seedClubs))
	for idx, club := range seedClubs {
		out = append(out, team.Team{ID: int64(idx), Name: club.name, Active: true})
	}
	return out
}

// footballDataStatusCodes lists the provider status codes in internal status order.
var footballDataStatusCodes = []struct {
	code   string
	status fixture.Status
}{
	{"FINISHED", fixture.StatusFinished},
	{"IN_PLAY", fixture.StatusInPlay},
	{"PAUSED", fixture.StatusPaused},
	{"POSTPONED", fixture.StatusPostponed},
	{"SCHEDULED", fixture.StatusScheduled},
	{"SUSPENDED", fixture.StatusSuspended},
	{"AWARDED", fixture.StatusAwarded},
	{"CANCELED", fixture.StatusCanceled},
}

// SeedMappings binds the seeded teams and every fixture status to football-data ids.
func SeedMappings() []mapping.Mapping {
	out := make([]mapping.Mapping, 0, len(seedClubs)+len(footballDataStatusCodes))
	for idx, club := range seedClubs {
		out = append(out, mapping.Mapping{
			APIID:      APIIDFootballData,
			Entity:     mapping.EntityTeam,
			InternalID: int64(idx),
			ExternalID: mapping.Numeric(club.footballDataID),
		})
	}
	for _, item := range footballDataStatusCodes {
		out = append(out, mapping.Mapping{
			APIID:      APIIDFootballData,
			Entity:     mapping.EntityFixtureStatus,
			InternalID: item.status.ID(),
			ExternalID: mapping.Text(item.code),
		})
	}
	return out
}
