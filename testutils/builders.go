package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

func FakeTeamStanding(overrides ...func(*models.TeamStanding)) models.TeamStanding {
	goalsFor := gofakeit.Number(0, 40)
	goalsAgainst := gofakeit.Number(0, 40)

	standing := models.TeamStanding{
		Position:       gofakeit.Number(1, 20),
		Name:           gofakeit.Company(),
		Played:         gofakeit.Number(1, 38),
		Won:            gofakeit.Number(0, 20),
		Drawn:          gofakeit.Number(0, 10),
		Lost:           gofakeit.Number(0, 10),
		GoalsFor:       goalsFor,
		GoalsAgainst:   goalsAgainst,
		GoalDifference: goalsFor - goalsAgainst,
		Points:         gofakeit.Number(0, 90),
	}

	for _, override := range overrides {
		override(&standing)
	}

	return standing
}

func FakeFixture(overrides ...func(*models.Fixture)) models.Fixture {
	date := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now().AddDate(0, 6, 0))

	fixture := models.Fixture{
		Stage:    models.StageGroup,
		Date:     date.Format("2006-01-02"),
		Time:     fmt.Sprintf("%02d:%02d", gofakeit.Number(12, 21), gofakeit.Number(0, 59)),
		HomeTeam: gofakeit.Company(),
		AwayTeam: gofakeit.Company(),
		Status:   models.StatusScheduled,
		MatchNo:  gofakeit.Number(1, 51),
	}

	for _, override := range overrides {
		override(&fixture)
	}

	return fixture
}

func FakeSnapshot(overrides ...func(*models.LeagueSnapshot)) models.LeagueSnapshot {
	snapshot := models.LeagueSnapshot{
		LeagueType:  models.LeagueType(gofakeit.Word()),
		Source:      gofakeit.URL(),
		LastUpdated: time.Now().UTC(),
		Teams: []models.TeamStanding{
			FakeTeamStanding(),
			FakeTeamStanding(),
		},
		Fixtures: []models.Fixture{
			FakeFixture(),
		},
	}

	for _, override := range overrides {
		override(&snapshot)
	}

	return snapshot
}
