package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

const (
	headingSelector = "h1,h2,h3,h4,[class*='section-header']"
	blockSelector   = ".match,.fixture,[data-match-id],[class*='match-row'],[class*='fixture-row'],[data-testid='fixture-list-item'],li.match-item"
)

var (
	ariaScorelinePattern = regexp.MustCompile(`^\s*(.+?)\s+(\d+)\s*[,:–-]\s*(.+?)\s+(\d+)\s*$`)
	ariaVersusPattern    = regexp.MustCompile(`(?i)^\s*(.+?)\s+(?:vs?|versus)\.?\s+(.+?)\s*$`)
	scorelinePattern     = regexp.MustCompile(`(\d+)\s*[-–:]\s*(\d+)`)
	parenScorePattern    = regexp.MustCompile(`\((\d+)\s*[-–:]\s*(\d+)[^)]*\)`)
	separatorPattern     = regexp.MustCompile(`\s+(?:\d+\s*[-–:]\s*\d+|vs?\.?|versus)\s+`)
	liveMinutePattern    = regexp.MustCompile(`\b\d{1,3}'`)
	matchNoPattern       = regexp.MustCompile(`(?i)\bmatch\s*#?\s*(\d+)\b`)
	finishedPattern      = regexp.MustCompile(`(?i)\b(ft|full[- ]time|aet|after extra time|pens?|penalties)\b`)
	livePattern          = regexp.MustCompile(`(?i)\b(live|ht|half[- ]time)\b`)
	matchdayPattern      = regexp.MustCompile(`(?i)\bmatch\s*day\b|\bround\s+\d+\b`)
)

type section struct {
	heading  string
	date     string
	stage    models.Stage
	hasStage bool
	content  *goquery.Selection
}

type teamStrategy struct {
	name    string
	extract func(block *goquery.Selection) (string, string, bool)
}

type scoreStrategy struct {
	name    string
	extract func(block *goquery.Selection) (*int, *int, bool)
}

// FixturesParser locates fixture blocks inside date- or stage-headed
// sections and extracts teams, scores, status and kick-off via layered
// fallback strategies. A block whose teams cannot both be resolved is
// discarded, never emitted half-populated.
type FixturesParser struct {
	toolkit   *Toolkit
	canonical map[string]string
	format    BracketFormat
	logger    Logger
}

func NewFixturesParser(toolkit *Toolkit, canonical map[string]string, format BracketFormat, logger Logger) *FixturesParser {
	return &FixturesParser{toolkit: toolkit, canonical: canonical, format: format, logger: logger}
}

func (p *FixturesParser) Parse(doc *goquery.Document) []models.Fixture {
	var fixtures []models.Fixture
	seen := make(map[string]struct{})

	for _, sec := range p.sections(doc) {
		sec.content.Find(blockSelector).Each(func(_ int, block *goquery.Selection) {
			fixture, ok := p.parseBlock(block, sec)
			if !ok {
				return
			}

			key := fixture.IdentityKey()
			if _, duplicate := seen[key]; duplicate {
				return
			}
			seen[key] = struct{}{}

			fixtures = append(fixtures, fixture)
		})
	}

	return fixtures
}

// sections splits the document at headings that carry a date, a stage name
// or a matchday marker. A document without such headings is one unnamed
// section.
func (p *FixturesParser) sections(doc *goquery.Document) []section {
	var sections []section

	doc.Find(headingSelector).Each(func(_ int, heading *goquery.Selection) {
		text := strings.TrimSpace(heading.Text())
		if text == "" {
			return
		}

		sec := section{heading: text, content: heading.NextUntil(headingSelector)}
		sec.date, _ = p.toolkit.ParseDate(text)
		sec.stage, sec.hasStage = StageFromText(text)

		if sec.date == "" && !sec.hasStage && !matchdayPattern.MatchString(text) {
			return
		}

		sections = append(sections, sec)
	})

	if len(sections) == 0 {
		return []section{{content: doc.Selection}}
	}

	return sections
}

func (p *FixturesParser) parseBlock(block *goquery.Selection, sec section) (models.Fixture, bool) {
	home, away, ok := p.teams(block)
	if !ok {
		return models.Fixture{}, false
	}

	fixture := models.Fixture{
		HomeTeam: home,
		AwayTeam: away,
		Group:    sec.groupLetter(),
	}

	fixture.HomeScore, fixture.AwayScore = p.scores(block)
	fixture.AggregateScore = aggregateScore(block)
	fixture.Status, fixture.Live = p.status(block, fixture.HomeScore != nil)
	fixture.Venue = strings.TrimSpace(block.Find("[class*='venue'],.stadium").First().Text())
	fixture.MatchNo = p.matchNo(block)
	fixture.Date, fixture.Time = p.kickoff(block, sec)
	fixture.Timestamp = p.toolkit.Timestamp(fixture.Date, fixture.Time)
	fixture.Stage = p.stage(sec, fixture.MatchNo)

	return fixture, true
}

// teams tries each name-extraction strategy in order and validates the
// result: both names present and distinct, or the block is discarded.
func (p *FixturesParser) teams(block *goquery.Selection) (string, string, bool) {
	strategies := []teamStrategy{
		{name: "labelled-sides", extract: teamsFromLabelledSides},
		{name: "aria-combined", extract: teamsFromAriaLabel},
		{name: "separator-split", extract: teamsFromSeparator},
		{name: "token-scan", extract: teamsFromTokenScan},
	}

	for _, strategy := range strategies {
		home, away, ok := strategy.extract(block)
		if !ok {
			continue
		}

		home = p.canonicalize(home)
		away = p.canonicalize(away)
		if home == "" || away == "" || home == away {
			continue
		}

		return home, away, true
	}

	return "", "", false
}

func teamsFromLabelledSides(block *goquery.Selection) (string, string, bool) {
	home := sideName(block.Find("[data-side='home'],[class*='home-team'],[class*='team-home'],[class*='team--home']").First())
	away := sideName(block.Find("[data-side='away'],[class*='away-team'],[class*='team-away'],[class*='team--away']").First())

	return home, away, home != "" && away != ""
}

func teamsFromAriaLabel(block *goquery.Selection) (string, string, bool) {
	labels := []string{block.AttrOr("aria-label", "")}
	block.Find("[aria-label]").Each(func(_ int, sel *goquery.Selection) {
		labels = append(labels, sel.AttrOr("aria-label", ""))
	})

	for _, label := range labels {
		if label == "" {
			continue
		}

		if m := ariaScorelinePattern.FindStringSubmatch(label); m != nil {
			return strings.TrimSpace(m[1]), strings.TrimSpace(m[3]), true
		}
		if m := ariaVersusPattern.FindStringSubmatch(label); m != nil {
			return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
		}
	}

	return "", "", false
}

// teamsFromSeparator splits the block text at the score or "vs" marker into
// a home half and an away half.
func teamsFromSeparator(block *goquery.Selection) (string, string, bool) {
	text := collapseWhitespace(block.Text())

	loc := separatorPattern.FindStringIndex(text)
	if loc == nil {
		return "", "", false
	}

	home := strings.TrimSpace(text[:loc[0]])
	away := strings.TrimSpace(text[loc[1]:])

	// Trailing status words end up in the away half on flat markup.
	away = finishedPattern.ReplaceAllString(away, "")
	away = liveMinutePattern.ReplaceAllString(away, "")
	away = strings.TrimSpace(strings.Trim(away, " -–"))

	return home, away, home != "" && away != ""
}

// teamsFromTokenScan collects every team-name-looking token and drops names
// that are substrings of another, which weeds out abbreviations.
func teamsFromTokenScan(block *goquery.Selection) (string, string, bool) {
	var tokens []string
	block.Find("[class*='team'],[data-team]").Each(func(_ int, sel *goquery.Selection) {
		if name := strings.TrimSpace(sel.AttrOr("data-team", "")); name != "" {
			tokens = append(tokens, name)
			return
		}
		if name := strings.TrimSpace(sel.Text()); name != "" {
			tokens = append(tokens, name)
		}
	})

	tokens = dropSubstrings(dedupeStrings(tokens))
	if len(tokens) < 2 {
		return "", "", false
	}

	return tokens[0], tokens[1], true
}

func (p *FixturesParser) scores(block *goquery.Selection) (*int, *int) {
	strategies := []scoreStrategy{
		{name: "aria-combined", extract: scoresFromAriaLabel},
		{name: "labelled-values", extract: scoresFromLabelledValues},
		{name: "hyphen-pattern", extract: scoresFromScoreline},
		{name: "bare-numbers", extract: scoresFromBareNumbers},
	}

	for _, strategy := range strategies {
		home, away, ok := strategy.extract(block)
		if ok {
			return home, away
		}
	}

	return nil, nil
}

func scoresFromAriaLabel(block *goquery.Selection) (*int, *int, bool) {
	labels := []string{block.AttrOr("aria-label", "")}
	block.Find("[aria-label]").Each(func(_ int, sel *goquery.Selection) {
		labels = append(labels, sel.AttrOr("aria-label", ""))
	})

	for _, label := range labels {
		if m := ariaScorelinePattern.FindStringSubmatch(label); m != nil {
			home, errHome := strconv.Atoi(m[2])
			away, errAway := strconv.Atoi(m[4])
			if errHome == nil && errAway == nil {
				return &home, &away, true
			}
		}
	}

	return nil, nil, false
}

func scoresFromLabelledValues(block *goquery.Selection) (*int, *int, bool) {
	home, okHome := firstNumber(block.Find("[data-score-home],[class*='score-home'],[class*='home-score']").First().Text())
	away, okAway := firstNumber(block.Find("[data-score-away],[class*='score-away'],[class*='away-score']").First().Text())

	if !okHome || !okAway {
		return nil, nil, false
	}

	return &home, &away, true
}

func scoresFromScoreline(block *goquery.Selection) (*int, *int, bool) {
	texts := []string{block.Find(".score,[class*='score']").First().Text()}
	texts = append(texts, collapseWhitespace(block.Text()))

	for _, text := range texts {
		// Parenthesized scores are aggregates or shootouts, not the result.
		text = parenScorePattern.ReplaceAllString(text, "")
		if m := scorelinePattern.FindStringSubmatch(text); m != nil {
			home, _ := strconv.Atoi(m[1])
			away, _ := strconv.Atoi(m[2])
			return &home, &away, true
		}
	}

	return nil, nil, false
}

// scoresFromBareNumbers is the last resort: any two bare numbers in the
// block, only trusted when the block looks like a played match.
func scoresFromBareNumbers(block *goquery.Selection) (*int, *int, bool) {
	if !finishedPattern.MatchString(block.Text()) && !livePattern.MatchString(block.Text()) {
		return nil, nil, false
	}

	numbers := numberPattern.FindAllString(collapseWhitespace(block.Text()), -1)
	if len(numbers) < 2 {
		return nil, nil, false
	}

	home, errHome := strconv.Atoi(numbers[0])
	away, errAway := strconv.Atoi(numbers[1])
	if errHome != nil || errAway != nil {
		return nil, nil, false
	}

	return &home, &away, true
}

func (p *FixturesParser) status(block *goquery.Selection, hasScore bool) (models.MatchStatus, bool) {
	text := block.Text()

	if block.Find("[class*='live']").Length() > 0 || livePattern.MatchString(text) || liveMinutePattern.MatchString(text) {
		return models.StatusLive, true
	}

	if finishedPattern.MatchString(text) {
		return models.StatusFinished, false
	}

	if hasScore {
		return models.StatusFinished, false
	}

	return models.StatusScheduled, false
}

func (p *FixturesParser) kickoff(block *goquery.Selection, sec section) (string, string) {
	if attr := block.Find("time[datetime]").First().AttrOr("datetime", ""); attr != "" {
		if date, timeOfDay, ok := p.toolkit.ParseTimestampAttr(attr); ok {
			return date, timeOfDay
		}
	}

	date := sec.date
	if timeOfDay, ok := p.toolkit.TimeOfDay(blockTimeText(block)); ok {
		return date, timeOfDay
	}

	return date, models.TimeUnknown
}

// blockTimeText limits the kick-off scan to time-ish nodes first, falling
// back to the whole block.
func blockTimeText(block *goquery.Selection) string {
	if timeish := block.Find("time,[class*='time'],[class*='kickoff']"); timeish.Length() > 0 {
		return timeish.Text()
	}

	return block.Text()
}

func (p *FixturesParser) matchNo(block *goquery.Selection) int {
	if id := block.AttrOr("data-match-id", ""); id != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(id)); err == nil {
			return n
		}
	}

	if m := matchNoPattern.FindStringSubmatch(block.Text()); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}

	return 0
}

// stage prefers the section heading, then the bracket's match numbering,
// and defaults to the group stage.
func (p *FixturesParser) stage(sec section, matchNo int) models.Stage {
	if sec.hasStage {
		return sec.stage
	}

	if matchNo > 0 {
		if stage, ok := p.format.StageForMatch(matchNo); ok {
			return stage
		}
	}

	return models.StageGroup
}

func (p *FixturesParser) canonicalize(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := p.canonical[name]; ok {
		return canonical
	}

	return name
}

func (s section) groupLetter() string {
	if m := groupHeadingPattern.FindStringSubmatch(s.heading); m != nil {
		return strings.ToUpper(m[1])
	}

	return ""
}

func aggregateScore(block *goquery.Selection) string {
	if m := parenScorePattern.FindString(block.Text()); m != "" {
		return m
	}

	return ""
}

func sideName(side *goquery.Selection) string {
	if side.Length() == 0 {
		return ""
	}

	if label := side.Find("[class*='team-name'],[data-team-name]").First(); label.Length() > 0 {
		return strings.TrimSpace(label.Text())
	}

	return strings.TrimSpace(side.Text())
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}

	return out
}

// dropSubstrings removes tokens fully contained in another token.
func dropSubstrings(values []string) []string {
	var out []string
	for i, value := range values {
		contained := false
		for j, other := range values {
			if i == j {
				continue
			}
			if value != other && strings.Contains(other, value) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, value)
		}
	}

	return out
}
