package handler

import (
	"time"

	"github.com/standingsfeed/standings-service/internal/app/models"
)

type GetLeagueRequest struct {
	Source     string `form:"source"`
	TTLSeconds *int   `form:"ttl"`
	Debug      bool   `form:"debug"`
}

func (glr *GetLeagueRequest) ToDomain(leagueType string, defaultSource string) models.LeagueDataRequest {
	request := models.LeagueDataRequest{
		LeagueType: models.LeagueType(leagueType),
		SourceURL:  glr.Source,
		Debug:      glr.Debug,
	}

	if request.SourceURL == "" {
		request.SourceURL = defaultSource
	}

	if glr.TTLSeconds != nil {
		ttl := time.Duration(*glr.TTLSeconds) * time.Second
		request.TTLOverride = &ttl
	}

	return request
}

type TeamStandingResponse struct {
	Position       int          `json:"position"`
	Name           string       `json:"name"`
	AssetKey       string       `json:"asset_key,omitempty"`
	Group          string       `json:"group,omitempty"`
	Played         int          `json:"played"`
	Won            int          `json:"won"`
	Drawn          int          `json:"drawn"`
	Lost           int          `json:"lost"`
	GoalsFor       int          `json:"goals_for"`
	GoalsAgainst   int          `json:"goals_against"`
	GoalDifference int          `json:"goal_difference"`
	Points         int          `json:"points"`
	Form           []FormResult `json:"form,omitempty"`
}

type FormResult struct {
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`
}

type FixtureResponse struct {
	Stage          string `json:"stage,omitempty"`
	Group          string `json:"group,omitempty"`
	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
	HomeTeam       string `json:"home_team"`
	AwayTeam       string `json:"away_team"`
	HomeScore      *int   `json:"home_score,omitempty"`
	AwayScore      *int   `json:"away_score,omitempty"`
	AggregateScore string `json:"aggregate_score,omitempty"`
	Venue          string `json:"venue,omitempty"`
	Status         string `json:"status"`
	Live           bool   `json:"live,omitempty"`
	Timestamp      int64  `json:"timestamp,omitempty"`
	MatchNo        int    `json:"match_no,omitempty"`
}

type LeagueResponse struct {
	LeagueType    string                            `json:"league_type"`
	Source        string                            `json:"source"`
	LastUpdated   time.Time                         `json:"last_updated"`
	Teams         []TeamStandingResponse            `json:"teams"`
	Fixtures      []FixtureResponse                 `json:"fixtures"`
	Groups        map[string][]TeamStandingResponse `json:"groups,omitempty"`
	Knockouts     map[string][]FixtureResponse      `json:"knockouts,omitempty"`
	FromCache     bool                              `json:"from_cache"`
	CacheFallback bool                              `json:"cache_fallback"`
}

func FromDomainSnapshot(snapshot *models.LeagueSnapshot) LeagueResponse {
	response := LeagueResponse{
		LeagueType:    string(snapshot.LeagueType),
		Source:        snapshot.Source,
		LastUpdated:   snapshot.LastUpdated,
		Teams:         make([]TeamStandingResponse, 0, len(snapshot.Teams)),
		Fixtures:      make([]FixtureResponse, 0, len(snapshot.Fixtures)),
		FromCache:     snapshot.FromCache,
		CacheFallback: snapshot.CacheFallback,
	}

	for _, team := range snapshot.Teams {
		response.Teams = append(response.Teams, fromDomainStanding(team))
	}

	for _, fixture := range snapshot.Fixtures {
		response.Fixtures = append(response.Fixtures, fromDomainFixture(fixture))
	}

	if len(snapshot.Groups) > 0 {
		response.Groups = make(map[string][]TeamStandingResponse, len(snapshot.Groups))
		for letter, standings := range snapshot.Groups {
			group := make([]TeamStandingResponse, 0, len(standings))
			for _, team := range standings {
				group = append(group, fromDomainStanding(team))
			}
			response.Groups[letter] = group
		}
	}

	if len(snapshot.Knockouts) > 0 {
		response.Knockouts = make(map[string][]FixtureResponse, len(snapshot.Knockouts))
		for stage, fixtures := range snapshot.Knockouts {
			round := make([]FixtureResponse, 0, len(fixtures))
			for _, fixture := range fixtures {
				round = append(round, fromDomainFixture(fixture))
			}
			response.Knockouts[string(stage)] = round
		}
	}

	return response
}

func fromDomainStanding(team models.TeamStanding) TeamStandingResponse {
	response := TeamStandingResponse{
		Position:       team.Position,
		Name:           team.Name,
		AssetKey:       team.AssetKey,
		Group:          team.Group,
		Played:         team.Played,
		Won:            team.Won,
		Drawn:          team.Drawn,
		Lost:           team.Lost,
		GoalsFor:       team.GoalsFor,
		GoalsAgainst:   team.GoalsAgainst,
		GoalDifference: team.GoalDifference,
		Points:         team.Points,
	}

	for _, result := range team.Form {
		response.Form = append(response.Form, FormResult{Outcome: string(result.Outcome), Detail: result.Detail})
	}

	return response
}

func fromDomainFixture(fixture models.Fixture) FixtureResponse {
	return FixtureResponse{
		Stage:          string(fixture.Stage),
		Group:          fixture.Group,
		Date:           fixture.Date,
		Time:           fixture.Time,
		HomeTeam:       fixture.HomeTeam,
		AwayTeam:       fixture.AwayTeam,
		HomeScore:      fixture.HomeScore,
		AwayScore:      fixture.AwayScore,
		AggregateScore: fixture.AggregateScore,
		Venue:          fixture.Venue,
		Status:         string(fixture.Status),
		Live:           fixture.Live,
		Timestamp:      fixture.Timestamp,
		MatchNo:        fixture.MatchNo,
	}
}

type CacheEntryStatsResponse struct {
	Key          string `json:"key"`
	AgeSeconds   int64  `json:"age_seconds"`
	RemainingTTL int64  `json:"remaining_ttl_seconds"`
	SizeBytes    int64  `json:"size_bytes"`
}
