package extract

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/standingsfeed/standings-service/config"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

// Engine composes the parsing strategies into one markup-to-snapshot pass:
// standings, fixtures, group partitioning, bracket placeholder resolution
// and knockout bucketing. It never errors on empty or unrecognized markup;
// an empty snapshot is a valid outcome the caller interprets.
type Engine struct {
	toolkit   *Toolkit
	standings *StandingsParser
	fixtures  *FixturesParser
	resolver  *TournamentResolver
	names     NameResolver
	logger    Logger
}

func NewEngine(cfg config.Extraction, format BracketFormat, canonical map[string]string, nameResolver NameResolver, logger Logger) *Engine {
	toolkit := NewToolkit(cfg.FormMaxResults, logger)

	return &Engine{
		toolkit:   toolkit,
		standings: NewStandingsParser(toolkit, canonical, logger),
		fixtures:  NewFixturesParser(toolkit, canonical, format, logger),
		resolver:  NewTournamentResolver(format, logger),
		names:     nameResolver,
		logger:    logger,
	}
}

// Extract parses raw markup into a league snapshot. Markup that fails to
// parse as HTML at all is the only error condition.
func (e *Engine) Extract(leagueType models.LeagueType, source string, markup string) (*models.LeagueSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup for league %s: %w", leagueType, err)
	}

	teams := e.standings.Parse(doc)
	fixtures := e.fixtures.Parse(doc)

	// An unknown name keeps an empty asset key, never a guess.
	for i := range teams {
		if match, ok := e.names.Resolve(teams[i].Name); ok {
			teams[i].AssetKey = match.AssetKey
		}
	}

	snapshot := &models.LeagueSnapshot{
		LeagueType:  leagueType,
		Source:      source,
		LastUpdated: time.Now().UTC(),
		Teams:       teams,
		Fixtures:    fixtures,
	}

	snapshot.Groups = groupStandings(teams)
	e.resolver.Resolve(snapshot.Groups, snapshot.Fixtures)
	snapshot.Knockouts = knockoutFixtures(snapshot.Fixtures)

	e.logger.Debug().
		Str("league_type", string(leagueType)).
		Int("teams", len(teams)).
		Int("fixtures", len(fixtures)).
		Int("groups", len(snapshot.Groups)).
		Msg("extracted league snapshot")

	return snapshot, nil
}

// groupStandings partitions standings by group letter, ordered by the
// position column within each group. Ungrouped competitions get no map.
func groupStandings(teams []models.TeamStanding) map[string][]models.TeamStanding {
	var grouped bool
	for _, team := range teams {
		if team.Group != "" {
			grouped = true
			break
		}
	}
	if !grouped {
		return nil
	}

	groups := make(map[string][]models.TeamStanding)
	for _, team := range teams {
		if team.Group == "" {
			continue
		}
		groups[team.Group] = append(groups[team.Group], team)
	}

	for letter := range groups {
		standings := groups[letter]
		sort.SliceStable(standings, func(i, j int) bool {
			if standings[i].Position > 0 && standings[j].Position > 0 {
				return standings[i].Position < standings[j].Position
			}
			return false
		})
		groups[letter] = standings
	}

	return groups
}

// knockoutFixtures buckets non-group fixtures by stage. All-group
// competitions get no map.
func knockoutFixtures(fixtures []models.Fixture) map[models.Stage][]models.Fixture {
	var knockouts map[models.Stage][]models.Fixture
	for _, fixture := range fixtures {
		if fixture.Stage == "" || fixture.Stage == models.StageGroup {
			continue
		}
		if knockouts == nil {
			knockouts = make(map[models.Stage][]models.Fixture)
		}
		knockouts[fixture.Stage] = append(knockouts[fixture.Stage], fixture)
	}

	return knockouts
}

// DefaultCanonicalNames merges spelling variants that appear across the
// supported sources into one display name per club.
func DefaultCanonicalNames() map[string]string {
	return map[string]string{
		"Bayern":              "Bayern Munich",
		"Bayern München":      "Bayern Munich",
		"FC Bayern München":   "Bayern Munich",
		"Köln":                "1. FC Köln",
		"FC Koln":             "1. FC Köln",
		"Gladbach":            "Borussia Mönchengladbach",
		"B. Mönchengladbach":  "Borussia Mönchengladbach",
		"Dortmund":            "Borussia Dortmund",
		"BVB":                 "Borussia Dortmund",
		"Leverkusen":          "Bayer Leverkusen",
		"Bayer 04 Leverkusen": "Bayer Leverkusen",
		"Atletico":            "Atlético Madrid",
		"Atlético de Madrid":  "Atlético Madrid",
		"Atletico Madrid":     "Atlético Madrid",
		"Inter":               "Inter Milan",
		"Internazionale":      "Inter Milan",
		"FC København":        "FC Copenhagen",
		"FC Koebenhavn":       "FC Copenhagen",
		"Man City":            "Manchester City",
		"Man Utd":             "Manchester United",
		"Man United":          "Manchester United",
		"Spurs":               "Tottenham Hotspur",
		"Tottenham":           "Tottenham Hotspur",
		"Wolves":              "Wolverhampton Wanderers",
		"PSG":                 "Paris Saint-Germain",
		"Paris SG":            "Paris Saint-Germain",
	}
}
