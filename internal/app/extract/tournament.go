package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/standingsfeed/standings-service/internal/app/models"
)

var (
	winnerMatchPattern = regexp.MustCompile(`(?i)^\s*(?:w\s*(\d+)|winner\s+(?:of\s+)?match\s+(\d+))\s*$`)
	loserMatchPattern  = regexp.MustCompile(`(?i)^\s*(?:l\s*(\d+)|loser\s+(?:of\s+)?match\s+(\d+))\s*$`)
	groupPosPattern    = regexp.MustCompile(`(?i)^\s*(?:([1-4])([A-L])|(1st|2nd|3rd|4th)\s+(?:of\s+)?group\s+([A-L])|(winner|runner[- ]?up)\s+(?:of\s+)?group\s+([A-L]))\s*$`)
	thirdPlacePattern  = regexp.MustCompile(`(?i)^\s*(?:3(?:rd)?\s*[/]?\s*(?:group\s+)?[A-L](?:\s*[/]\s*[A-L])+|best\s+third[- ]placed?.*|3rd\s+place\s+group\s+stage.*)\s*$`)
	penaltyPattern     = regexp.MustCompile(`\((\d+)\s*[-–:]\s*(\d+)`)
	stageNamePatterns  = []struct {
		pattern *regexp.Regexp
		stage   models.Stage
	}{
		{regexp.MustCompile(`(?i)\bround\s+of\s+32\b|\blast\s+32\b`), models.StageRoundOf32},
		{regexp.MustCompile(`(?i)\bround\s+of\s+16\b|\blast\s+16\b`), models.StageRoundOf16},
		{regexp.MustCompile(`(?i)\bquarter[- ]?finals?\b`), models.StageQuarterFinal},
		{regexp.MustCompile(`(?i)\bsemi[- ]?finals?\b`), models.StageSemiFinal},
		{regexp.MustCompile(`(?i)\bthird[- ]place\b|\b3rd[- ]place\s+(?:match|play[- ]?off)\b`), models.StageThirdPlace},
		{regexp.MustCompile(`(?i)\bgrand\s+final\b|\bfinal\b`), models.StageFinal},
		{regexp.MustCompile(`(?i)\bgroup\s+stage\b|\bgroup\s+[A-L]\b`), models.StageGroup},
	}
)

// StageFromText recognizes a knockout-stage name in a heading. The final is
// matched last among knockout names so "quarter-final" never reads as final.
func StageFromText(text string) (models.Stage, bool) {
	for _, candidate := range stageNamePatterns {
		if candidate.pattern.MatchString(text) {
			return candidate.stage, true
		}
	}

	return "", false
}

// StageRange maps an inclusive span of official match numbers to a stage.
type StageRange struct {
	Stage      models.Stage
	FirstMatch int
	LastMatch  int
}

// ThirdPlaceRule describes how many third-placed teams advance and which
// round-of-16 matches their slots feed, in best-ranked-first order after the
// group-letter re-sort.
type ThirdPlaceRule struct {
	Advance int
	Slots   []int
}

// BracketFormat is the competition-specific wiring of a knockout bracket.
// It is injected so the same resolver serves differently numbered
// tournaments.
type BracketFormat struct {
	StageRanges []StageRange
	ThirdPlace  ThirdPlaceRule
}

// DefaultBracketFormat is the 24-team continental format: six groups of
// four, four best third-placed teams advancing to the round of 16.
func DefaultBracketFormat() BracketFormat {
	return BracketFormat{
		StageRanges: []StageRange{
			{Stage: models.StageGroup, FirstMatch: 1, LastMatch: 36},
			{Stage: models.StageRoundOf16, FirstMatch: 37, LastMatch: 44},
			{Stage: models.StageQuarterFinal, FirstMatch: 45, LastMatch: 48},
			{Stage: models.StageSemiFinal, FirstMatch: 49, LastMatch: 50},
			{Stage: models.StageFinal, FirstMatch: 51, LastMatch: 51},
		},
		ThirdPlace: ThirdPlaceRule{Advance: 4, Slots: []int{40, 39, 41, 43}},
	}
}

func (f BracketFormat) StageForMatch(matchNo int) (models.Stage, bool) {
	for _, r := range f.StageRanges {
		if matchNo >= r.FirstMatch && matchNo <= r.LastMatch {
			return r.Stage, true
		}
	}

	return "", false
}

// TournamentResolver substitutes bracket placeholders ("W37", "Winner Group
// A", best-third-placed slots) with real team names once the feeding results
// exist. It runs once per extraction pass, replaces only sides that still
// hold a placeholder, and leaves anything it cannot prove unresolved.
type TournamentResolver struct {
	format BracketFormat
	logger Logger
}

func NewTournamentResolver(format BracketFormat, logger Logger) *TournamentResolver {
	return &TournamentResolver{format: format, logger: logger}
}

func (r *TournamentResolver) Resolve(groups map[string][]models.TeamStanding, fixtures []models.Fixture) {
	byMatchNo := make(map[int]*models.Fixture, len(fixtures))
	for i := range fixtures {
		if fixtures[i].MatchNo > 0 {
			byMatchNo[fixtures[i].MatchNo] = &fixtures[i]
		}
	}

	thirdSlots := r.thirdPlaceSlots(groups)

	for i := range fixtures {
		fixture := &fixtures[i]
		fixture.HomeTeam = r.resolveSide(fixture.HomeTeam, fixture.MatchNo, groups, byMatchNo, thirdSlots)
		fixture.AwayTeam = r.resolveSide(fixture.AwayTeam, fixture.MatchNo, groups, byMatchNo, thirdSlots)
	}
}

func (r *TournamentResolver) resolveSide(side string, matchNo int, groups map[string][]models.TeamStanding, byMatchNo map[int]*models.Fixture, thirdSlots map[int]string) string {
	if m := winnerMatchPattern.FindStringSubmatch(side); m != nil {
		if team, ok := r.matchOutcome(firstGroup(m), true, byMatchNo); ok {
			return team
		}
		return side
	}

	if m := loserMatchPattern.FindStringSubmatch(side); m != nil {
		if team, ok := r.matchOutcome(firstGroup(m), false, byMatchNo); ok {
			return team
		}
		return side
	}

	if position, group, ok := parseGroupRef(side); ok {
		if team, ok := groupTeamAt(groups, group, position); ok {
			return team
		}
		return side
	}

	if thirdPlacePattern.MatchString(side) {
		// The slot table names one third-placed entrant per match.
		if team, ok := thirdSlots[matchNo]; ok {
			return team
		}
	}

	return side
}

// matchOutcome determines the winner or loser of a numbered match. It needs
// a final score; a draw is decided by a parenthesized penalty score and is
// otherwise unresolvable.
func (r *TournamentResolver) matchOutcome(matchNo int, wantWinner bool, byMatchNo map[int]*models.Fixture) (string, bool) {
	source, ok := byMatchNo[matchNo]
	if !ok || source.HomeScore == nil || source.AwayScore == nil {
		return "", false
	}

	home, away := *source.HomeScore, *source.AwayScore
	if home == away {
		m := penaltyPattern.FindStringSubmatch(source.AggregateScore)
		if m == nil {
			return "", false
		}
		home, _ = strconv.Atoi(m[1])
		away, _ = strconv.Atoi(m[2])
		if home == away {
			return "", false
		}
	}

	homeWon := home > away
	if wantWinner == homeWon {
		return source.HomeTeam, true
	}

	return source.AwayTeam, true
}

// thirdPlaceSlots ranks the third-placed team of every group by points,
// goal difference and goals scored, keeps the advancing count, re-sorts the
// qualifiers by group letter and lays them onto the configured slot table.
// Fewer completed groups than the advancing count resolves nothing.
func (r *TournamentResolver) thirdPlaceSlots(groups map[string][]models.TeamStanding) map[int]string {
	rule := r.format.ThirdPlace
	if rule.Advance == 0 || len(rule.Slots) < rule.Advance {
		return nil
	}

	type thirdPlaced struct {
		group    string
		standing models.TeamStanding
	}

	var thirds []thirdPlaced
	for group, standings := range groups {
		if len(standings) < 3 {
			continue
		}
		thirds = append(thirds, thirdPlaced{group: group, standing: standings[2]})
	}

	if len(thirds) < rule.Advance {
		return nil
	}

	sort.Slice(thirds, func(i, j int) bool {
		a, b := thirds[i].standing, thirds[j].standing
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})

	qualified := thirds[:rule.Advance]
	sort.Slice(qualified, func(i, j int) bool {
		return qualified[i].group < qualified[j].group
	})

	slots := make(map[int]string, rule.Advance)
	for i, q := range qualified {
		slots[rule.Slots[i]] = q.standing.Name
	}

	return slots
}

// parseGroupRef reads "1A", "2nd Group B", "Winner Group C" style
// references into a rank and a group letter.
func parseGroupRef(side string) (int, string, bool) {
	m := groupPosPattern.FindStringSubmatch(side)
	if m == nil {
		return 0, "", false
	}

	switch {
	case m[1] != "":
		position, _ := strconv.Atoi(m[1])
		return position, strings.ToUpper(m[2]), true
	case m[3] != "":
		position := map[string]int{"1st": 1, "2nd": 2, "3rd": 3, "4th": 4}[strings.ToLower(m[3])]
		return position, strings.ToUpper(m[4]), true
	default:
		position := 1
		if strings.HasPrefix(strings.ToLower(m[5]), "runner") {
			position = 2
		}
		return position, strings.ToUpper(m[6]), true
	}
}

// groupTeamAt returns the team ranked at position within a group, sorting
// by the standings' position column when present and table order otherwise.
func groupTeamAt(groups map[string][]models.TeamStanding, group string, position int) (string, bool) {
	standings, ok := groups[group]
	if !ok || position < 1 || position > len(standings) {
		return "", false
	}

	ordered := append([]models.TeamStanding(nil), standings...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position > 0 && ordered[j].Position > 0 {
			return ordered[i].Position < ordered[j].Position
		}
		return false
	})

	return ordered[position-1].Name, true
}

func firstGroup(m []string) int {
	for _, capture := range m[1:] {
		if capture != "" {
			n, _ := strconv.Atoi(capture)
			return n
		}
	}

	return 0
}
