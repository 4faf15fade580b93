package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

// Markers a table-like region must contain before it is considered a
// standings candidate at all.
var standingsKeywords = []string{"team", "club", "position", "played", "pts", "points"}

var groupHeadingPattern = regexp.MustCompile(`(?i)\bgroup\s+([A-L])\b`)

// How many preceding nodes to inspect when attaching a table to its group
// heading.
const groupLookback = 6

const gridRowSelector = "[role='row'],li.table-row,div.standings-row,[class*='table__row'],[class*='standings-row']"

type standingsStrategy struct {
	name    string
	extract func(doc *goquery.Document) []models.TeamStanding
}

// StandingsParser turns heterogeneous markup into standings rows. Layout
// strategies are an ordered chain; the first one yielding at least one team
// wins. An empty result is not an error: the caller decides whether to
// substitute a stored snapshot.
type StandingsParser struct {
	toolkit   *Toolkit
	canonical map[string]string
	logger    Logger
}

func NewStandingsParser(toolkit *Toolkit, canonical map[string]string, logger Logger) *StandingsParser {
	return &StandingsParser{toolkit: toolkit, canonical: canonical, logger: logger}
}

func (p *StandingsParser) Parse(doc *goquery.Document) []models.TeamStanding {
	strategies := []standingsStrategy{
		{name: "table", extract: p.fromTables},
		{name: "grid", extract: p.fromGrid},
	}

	for _, strategy := range strategies {
		teams := strategy.extract(doc)
		if len(teams) > 0 {
			p.logger.Debug().Str("strategy", strategy.name).Int("teams", len(teams)).Msg("extracted standings")
			return teams
		}
	}

	return nil
}

// fromTables parses every candidate table, so a multi-group competition
// with one table per group yields all groups in one pass.
func (p *StandingsParser) fromTables(doc *goquery.Document) []models.TeamStanding {
	var teams []models.TeamStanding

	doc.Find("table,[role='table']").Each(func(_ int, table *goquery.Selection) {
		if !containsAnyKeyword(table.Text(), standingsKeywords) {
			return
		}

		rows := dataRows(table)
		if len(rows) < 2 {
			return
		}

		group := p.groupFor(table)
		for _, row := range rows {
			standing, ok := p.parseRow(row)
			if !ok {
				continue
			}

			standing.Group = group
			teams = append(teams, standing)
		}
	})

	return teams
}

// fromGrid handles card and grid layouts where rows are divs or list items
// identified by role or structural class markers.
func (p *StandingsParser) fromGrid(doc *goquery.Document) []models.TeamStanding {
	var rows []*goquery.Selection

	doc.Find(gridRowSelector).Each(func(_ int, row *goquery.Selection) {
		// Table rows belong to the table strategy.
		if goquery.NodeName(row) == "tr" {
			return
		}
		rows = append(rows, row)
	})

	if len(rows) < 2 {
		return nil
	}

	var teams []models.TeamStanding
	for _, row := range rows {
		standing, ok := p.parseRow(row)
		if !ok {
			continue
		}

		standing.Group = p.groupFor(row)
		teams = append(teams, standing)
	}

	return teams
}

func (p *StandingsParser) parseRow(row *goquery.Selection) (models.TeamStanding, bool) {
	name := p.teamName(row)
	if name == "" {
		return models.TeamStanding{}, false
	}

	standing := models.TeamStanding{Name: name}

	standing.Position, _ = p.toolkit.NumberForLabels(row, "position", "rank", "pos")
	if standing.Position == 0 {
		standing.Position = p.toolkit.LeadingPosition(row)
	}

	standing.Played, _ = p.toolkit.NumberForLabels(row, "played", "pld", "games", "matches")
	standing.Won, _ = p.toolkit.NumberForLabels(row, "won", "wins", "w")
	standing.Drawn, _ = p.toolkit.NumberForLabels(row, "drawn", "draws", "d")
	standing.Lost, _ = p.toolkit.NumberForLabels(row, "lost", "losses", "l")
	standing.GoalsFor, _ = p.toolkit.NumberForLabels(row, "goals for", "scored", "gf")
	standing.GoalsAgainst, _ = p.toolkit.NumberForLabels(row, "goals against", "conceded", "ga")
	standing.Points, _ = p.toolkit.NumberForLabels(row, "points", "pts")

	difference, labelled := p.toolkit.NumberForLabels(row, "goal difference", "difference", "gd")
	computed := standing.GoalsFor - standing.GoalsAgainst
	if labelled {
		// The source label wins, but a disagreement is a data-quality smell
		// worth surfacing.
		if difference != computed {
			p.logger.Warn().
				Str("team", name).
				Int("labelled", difference).
				Int("computed", computed).
				Msg("labelled goal difference disagrees with goals for/against")
		}
		standing.GoalDifference = difference
	} else {
		standing.GoalDifference = computed
	}

	standing.Form = p.toolkit.FormResults(row)

	return standing, true
}

// teamName tries, in order: an identifying badge token, a dedicated name
// label, a visually-hidden accessible label, and finally generic anchor
// text.
func (p *StandingsParser) teamName(row *goquery.Selection) string {
	if badge := row.Find("[data-team-badge],[class*='badge']").First(); badge.Length() > 0 {
		if name := badge.AttrOr("data-team", ""); name != "" {
			return p.canonicalize(name)
		}
		if alt := badge.Find("img").AttrOr("alt", ""); alt != "" {
			return p.canonicalize(alt)
		}
		if alt := badge.AttrOr("alt", ""); alt != "" {
			return p.canonicalize(alt)
		}
	}

	if label := row.Find("[data-team-name],[class*='team-name'],[class*='team_name']").First(); label.Length() > 0 {
		if name := strings.TrimSpace(label.Text()); name != "" {
			return p.canonicalize(name)
		}
	}

	if name := p.hiddenTeamName(row); name != "" {
		return p.canonicalize(name)
	}

	if anchor := row.Find("a").First(); anchor.Length() > 0 {
		if name := strings.TrimSpace(anchor.Text()); name != "" {
			return p.canonicalize(name)
		}
	}

	return ""
}

// hiddenTeamName picks the first visually-hidden text that is neither a
// number nor a result word, which is how accessible tables label the club.
func (p *StandingsParser) hiddenTeamName(row *goquery.Selection) string {
	name := ""
	row.Find(hiddenSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return true
		}
		if _, isNumber := firstNumber(text); isNumber && len(text) <= 4 {
			return true
		}
		if resultWordPattern.MatchString(text) {
			return true
		}

		name = text
		return false
	})

	return name
}

// canonicalize merges known variant spellings of the same club into one
// canonical string.
func (p *StandingsParser) canonicalize(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := p.canonical[name]; ok {
		return canonical
	}

	return name
}

// groupFor walks backwards from a table through a bounded window of
// preceding nodes looking for the nearest group-letter heading.
func (p *StandingsParser) groupFor(start *goquery.Selection) string {
	node := start
	for i := 0; i < groupLookback; i++ {
		prev := node.Prev()
		if prev.Length() == 0 {
			node = node.Parent()
			if node.Length() == 0 {
				return ""
			}
			continue
		}

		node = prev
		if node.Is("table") || node.Is("[role='table']") {
			return ""
		}

		if m := groupHeadingPattern.FindStringSubmatch(node.Text()); m != nil {
			return strings.ToUpper(m[1])
		}
	}

	return ""
}

// dataRows returns the rows of a table that carry at least two data cells,
// skipping header-only rows.
func dataRows(table *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection

	candidates := table.Find("tr")
	if candidates.Length() == 0 {
		candidates = table.Find("[role='row']")
	}

	candidates.Each(func(_ int, row *goquery.Selection) {
		if row.Find("td,[role='cell'],[role='gridcell']").Length() < 2 {
			return
		}
		rows = append(rows, row)
	})

	return rows
}

func containsAnyKeyword(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}

	return false
}
