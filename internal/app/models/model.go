package models

import (
	"time"
)

type LeagueType string

// FormOutcome is the result of a single recent match from a team's form run.
type FormOutcome string

const (
	FormWin  FormOutcome = "win"
	FormDraw FormOutcome = "draw"
	FormLoss FormOutcome = "loss"
)

// FormResult carries the outcome plus the free-text detail the source
// attached to it (opponent, score), when one was present.
type FormResult struct {
	Outcome FormOutcome
	Detail  string
}

// TeamStanding is one row of a league table. Position is advisory: a value
// of zero or below means the source did not rank the row and callers may
// assign ordinal rank from list order.
type TeamStanding struct {
	Position       int
	Name           string
	AssetKey       string
	Group          string
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Form           []FormResult
}

type Stage string

const (
	StageGroup        Stage = "group_stage"
	StagePlayoff      Stage = "playoff"
	StageRoundOf32    Stage = "round_of_32"
	StageRoundOf16    Stage = "round_of_16"
	StageQuarterFinal Stage = "quarter_final"
	StageSemiFinal    Stage = "semi_final"
	StageThirdPlace   Stage = "third_place"
	StageFinal        Stage = "final"
)

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
)

// TimeUnknown is the sentinel kick-off time used when the source exposes
// no parseable time for a fixture.
const TimeUnknown = "vs"

// Fixture is a single match. A fixture is only emitted when both team names
// are present and distinct. Identity for deduplication is the tuple
// (HomeTeam, AwayTeam, Date, Time).
type Fixture struct {
	Stage          Stage
	Group          string
	Date           string // YYYY-MM-DD, empty when unknown
	Time           string // HH:mm, or TimeUnknown
	HomeTeam       string
	AwayTeam       string
	HomeScore      *int
	AwayScore      *int
	AggregateScore string
	Venue          string
	Status         MatchStatus
	Live           bool
	Timestamp      int64 // epoch milliseconds, 0 when undeterminable
	MatchNo        int
}

// LeagueSnapshot is the immutable output of one successful extraction.
type LeagueSnapshot struct {
	LeagueType    LeagueType
	Source        string
	LastUpdated   time.Time
	Teams         []TeamStanding
	Fixtures      []Fixture
	Groups        map[string][]TeamStanding
	Knockouts     map[Stage][]Fixture
	FromCache     bool
	CacheFallback bool
}

// LeagueDataRequest is the inbound request shape at the host boundary.
type LeagueDataRequest struct {
	LeagueType  LeagueType
	SourceURL   string
	TTLOverride *time.Duration
	Debug       bool
}

// FetchResult is the settled outcome of a coordinated page fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       string
	Retries    uint
}

func (f Fixture) IdentityKey() string {
	return f.HomeTeam + "|" + f.AwayTeam + "|" + f.Date + "|" + f.Time
}
