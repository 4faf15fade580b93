package extract_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/standingsfeed/standings-service/internal/app/extract"
	"github.com/standingsfeed/standings-service/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTournamentResolver() *extract.TournamentResolver {
	logger := zerolog.Nop()
	return extract.NewTournamentResolver(extract.DefaultBracketFormat(), &logger)
}

func intPtr(n int) *int {
	return &n
}

func TestTournamentResolver_WinnerOfMatch(t *testing.T) {
	resolver := newTournamentResolver()

	fixtures := []models.Fixture{
		{MatchNo: 37, HomeTeam: "Spain", AwayTeam: "Georgia", HomeScore: intPtr(4), AwayScore: intPtr(1)},
		{MatchNo: 45, HomeTeam: "W37", AwayTeam: "Winner Match 38"},
	}

	resolver.Resolve(nil, fixtures)

	assert.Equal(t, "Spain", fixtures[1].HomeTeam)
	// Match 38 has not been played, the placeholder stays.
	assert.Equal(t, "Winner Match 38", fixtures[1].AwayTeam)
}

func TestTournamentResolver_LoserOfMatch(t *testing.T) {
	resolver := newTournamentResolver()

	fixtures := []models.Fixture{
		{MatchNo: 49, HomeTeam: "Spain", AwayTeam: "France", HomeScore: intPtr(2), AwayScore: intPtr(1)},
		{MatchNo: 50, HomeTeam: "Netherlands", AwayTeam: "England", HomeScore: intPtr(1), AwayScore: intPtr(2)},
		{HomeTeam: "L49", AwayTeam: "L50"},
	}

	resolver.Resolve(nil, fixtures)

	assert.Equal(t, "France", fixtures[2].HomeTeam)
	assert.Equal(t, "Netherlands", fixtures[2].AwayTeam)
}

func TestTournamentResolver_DrawDecidedByPenaltyScore(t *testing.T) {
	resolver := newTournamentResolver()

	tests := []struct {
		name      string
		aggregate string
		expected  string
	}{
		{name: "home wins the shootout", aggregate: "(5-4 pens)", expected: "Portugal"},
		{name: "away wins the shootout", aggregate: "(3-5 pens)", expected: "Slovenia"},
		{name: "no shootout score stays unresolved", aggregate: "", expected: "W40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixtures := []models.Fixture{
				{MatchNo: 40, HomeTeam: "Portugal", AwayTeam: "Slovenia", HomeScore: intPtr(0), AwayScore: intPtr(0), AggregateScore: tt.aggregate},
				{MatchNo: 46, HomeTeam: "W40", AwayTeam: "France"},
			}

			resolver.Resolve(nil, fixtures)

			assert.Equal(t, tt.expected, fixtures[1].HomeTeam)
		})
	}
}

func TestTournamentResolver_GroupPositionReferences(t *testing.T) {
	resolver := newTournamentResolver()

	groups := map[string][]models.TeamStanding{
		"A": {
			{Position: 1, Name: "Germany"},
			{Position: 2, Name: "Switzerland"},
			{Position: 3, Name: "Hungary"},
		},
		"B": {
			{Position: 1, Name: "Spain"},
			{Position: 2, Name: "Italy"},
		},
	}

	fixtures := []models.Fixture{
		{HomeTeam: "1A", AwayTeam: "2B"},
		{HomeTeam: "Runner-up Group A", AwayTeam: "Winner Group B"},
		{HomeTeam: "1C", AwayTeam: "3rd of Group A"},
	}

	resolver.Resolve(groups, fixtures)

	assert.Equal(t, "Germany", fixtures[0].HomeTeam)
	assert.Equal(t, "Italy", fixtures[0].AwayTeam)
	assert.Equal(t, "Switzerland", fixtures[1].HomeTeam)
	assert.Equal(t, "Spain", fixtures[1].AwayTeam)
	// Group C does not exist, the reference is left in place.
	assert.Equal(t, "1C", fixtures[2].HomeTeam)
	assert.Equal(t, "Hungary", fixtures[2].AwayTeam)
}

func thirdPlaceGroups() map[string][]models.TeamStanding {
	groups := make(map[string][]models.TeamStanding)
	thirds := map[string]models.TeamStanding{
		"A": {Position: 3, Name: "Hungary", Points: 6, GoalDifference: 1, GoalsFor: 5},
		"B": {Position: 3, Name: "Croatia", Points: 5, GoalDifference: 0, GoalsFor: 4},
		"C": {Position: 3, Name: "Slovenia", Points: 4, GoalDifference: -1, GoalsFor: 3},
		"D": {Position: 3, Name: "Netherlands", Points: 3, GoalDifference: -1, GoalsFor: 2},
		"E": {Position: 3, Name: "Slovakia", Points: 2, GoalDifference: -2, GoalsFor: 2},
		"F": {Position: 3, Name: "Czechia", Points: 1, GoalDifference: -3, GoalsFor: 1},
	}

	for letter, third := range thirds {
		groups[letter] = []models.TeamStanding{
			{Position: 1, Name: letter + "-winner", Points: 9},
			{Position: 2, Name: letter + "-runner-up", Points: 7},
			third,
		}
	}

	return groups
}

func TestTournamentResolver_BestThirdPlaceAllocation(t *testing.T) {
	resolver := newTournamentResolver()

	fixtures := []models.Fixture{
		{MatchNo: 39, HomeTeam: "1B", AwayTeam: "3rd Group A/D/E/F"},
		{MatchNo: 40, HomeTeam: "1A", AwayTeam: "3rd Group C/D/E"},
		{MatchNo: 41, HomeTeam: "1F", AwayTeam: "3rd Group A/B/C"},
		{MatchNo: 43, HomeTeam: "1E", AwayTeam: "3rd Group A/B/C/D"},
	}

	resolver.Resolve(thirdPlaceGroups(), fixtures)

	// The four best thirds (A, B, C, D) re-sorted by group letter land on
	// the slot table 40, 39, 41, 43 in that order.
	assert.Equal(t, "Hungary", fixtures[1].AwayTeam)
	assert.Equal(t, "Croatia", fixtures[0].AwayTeam)
	assert.Equal(t, "Slovenia", fixtures[2].AwayTeam)
	assert.Equal(t, "Netherlands", fixtures[3].AwayTeam)
}

func TestTournamentResolver_ThirdPlaceNeedsEnoughGroups(t *testing.T) {
	resolver := newTournamentResolver()

	groups := map[string][]models.TeamStanding{
		"A": {{Name: "one"}, {Name: "two"}, {Name: "three"}},
		"B": {{Name: "four"}, {Name: "five"}, {Name: "six"}},
	}

	fixtures := []models.Fixture{
		{MatchNo: 40, HomeTeam: "1A", AwayTeam: "3rd Group A/B/C"},
	}

	resolver.Resolve(groups, fixtures)

	assert.Equal(t, "3rd Group A/B/C", fixtures[0].AwayTeam)
}

func TestTournamentResolver_Idempotent(t *testing.T) {
	resolver := newTournamentResolver()

	fixtures := []models.Fixture{
		{MatchNo: 37, HomeTeam: "Spain", AwayTeam: "Georgia", HomeScore: intPtr(4), AwayScore: intPtr(1)},
		{MatchNo: 45, HomeTeam: "W37", AwayTeam: "Germany"},
	}

	resolver.Resolve(nil, fixtures)
	first := append([]models.Fixture(nil), fixtures...)

	resolver.Resolve(nil, fixtures)

	require.Equal(t, first, fixtures)
	assert.Equal(t, "Spain", fixtures[1].HomeTeam)
}

func TestTournamentResolver_StageForMatch(t *testing.T) {
	format := extract.DefaultBracketFormat()

	tests := []struct {
		name     string
		matchNo  int
		expected models.Stage
		ok       bool
	}{
		{name: "group stage", matchNo: 12, expected: models.StageGroup, ok: true},
		{name: "round of sixteen", matchNo: 40, expected: models.StageRoundOf16, ok: true},
		{name: "final", matchNo: 51, expected: models.StageFinal, ok: true},
		{name: "out of range", matchNo: 99, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, ok := format.StageForMatch(tt.matchNo)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, stage)
		})
	}
}
