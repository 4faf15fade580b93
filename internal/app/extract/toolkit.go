package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

const (
	cellSelector   = "td,th,[role='cell'],[role='gridcell']"
	hiddenSelector = ".visually-hidden,.sr-only,[class*='VisuallyHidden'],[class*='visually-hidden']"
)

var (
	numberPattern       = regexp.MustCompile(`-?\d+`)
	leadingIntPattern   = regexp.MustCompile(`^\s*(\d+)\.?\s*$`)
	ariaResultPattern   = regexp.MustCompile(`(?i)result:?\s*(win|draw|loss|lose|lost|defeat)\b[,.]?\s*(.*)`)
	resultWordPattern   = regexp.MustCompile(`(?i)\b(win|won|draw|drew|loss|lose|lost|defeat)\b`)
	bareFormPattern     = regexp.MustCompile(`^[WDLwdl]{1,10}$`)
	isoDatePattern      = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	ordinalDayPattern   = regexp.MustCompile(`(\d{1,2})(st|nd|rd|th)`)
	timeOfDayPattern    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	epochAttrPattern    = regexp.MustCompile(`^\d{10,13}$`)
)

var dateLayouts = []string{
	"2006-01-02",
	"Monday 2 January 2006",
	"Monday, 2 January 2006",
	"2 January 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"02.01.2006",
	"02/01/2006",
}

// Toolkit is the field-extraction kit shared by the standings and fixture
// strategies: labelled-cell scanning, form-token parsing and date handling.
// Strategies receive it by injection so each stays independently testable.
type Toolkit struct {
	formMax int
	logger  Logger
}

func NewToolkit(formMax int, logger Logger) *Toolkit {
	if formMax < 1 {
		formMax = 5
	}

	return &Toolkit{formMax: formMax, logger: logger}
}

// NumberForLabels scans the row's cells for one whose label (aria-label,
// title, data-stat, class or hidden text) contains any of the given column
// names, and returns the first integer found in it. Short names are matched
// as whole words so "w" does not hit "away".
func (t *Toolkit) NumberForLabels(row *goquery.Selection, labels ...string) (int, bool) {
	value := 0
	found := false

	row.Find(cellSelector).EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		label := cellLabel(cell)
		for _, want := range labels {
			if !labelContains(label, want) {
				continue
			}

			if n, ok := firstNumber(cell.Text()); ok {
				value, found = n, true
				return false
			}
			if n, ok := firstNumber(label); ok {
				value, found = n, true
				return false
			}
		}

		return true
	})

	return value, found
}

// LeadingPosition reads an ordinal rank from the row's first cell when it
// holds nothing but a number.
func (t *Toolkit) LeadingPosition(row *goquery.Selection) int {
	first := row.Find(cellSelector).First()
	if first.Length() == 0 {
		return 0
	}

	if m := leadingIntPattern.FindStringSubmatch(first.Text()); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}

	return 0
}

type formStrategy struct {
	name    string
	extract func(row *goquery.Selection) []models.FormResult
}

// FormResults extracts the recent-form run of a row. Sub-strategies are
// tried in order and the first one yielding any tokens wins; the run is
// bounded to the configured maximum, keeping the most recent results in
// chronological order.
func (t *Toolkit) FormResults(row *goquery.Selection) []models.FormResult {
	strategies := []formStrategy{
		{name: "aria-result", extract: formFromAriaLabels},
		{name: "hidden-words", extract: formFromHiddenWords},
		{name: "letter-with-word", extract: formFromLettersWithWords},
		{name: "bare-letters", extract: formFromBareLetters},
	}

	for _, strategy := range strategies {
		results := strategy.extract(row)
		if len(results) == 0 {
			continue
		}

		if len(results) > t.formMax {
			results = results[len(results)-t.formMax:]
		}

		return results
	}

	return nil
}

func formFromAriaLabels(row *goquery.Selection) []models.FormResult {
	var results []models.FormResult

	row.Find("[aria-label]").Each(func(_ int, sel *goquery.Selection) {
		label := sel.AttrOr("aria-label", "")
		m := ariaResultPattern.FindStringSubmatch(label)
		if m == nil {
			return
		}

		outcome, ok := outcomeFromWord(m[1])
		if !ok {
			return
		}

		results = append(results, models.FormResult{Outcome: outcome, Detail: strings.TrimSpace(m[2])})
	})

	return results
}

func formFromHiddenWords(row *goquery.Selection) []models.FormResult {
	var results []models.FormResult

	row.Find(hiddenSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		word, detail, _ := strings.Cut(text, ",")
		outcome, ok := outcomeFromWord(strings.TrimSpace(word))
		if !ok {
			return
		}

		results = append(results, models.FormResult{Outcome: outcome, Detail: strings.TrimSpace(detail)})
	})

	return results
}

func formFromLettersWithWords(row *goquery.Selection) []models.FormResult {
	var results []models.FormResult

	row.Find("span,abbr,i").Each(func(_ int, sel *goquery.Selection) {
		letter := strings.TrimSpace(sel.Text())
		if len(letter) != 1 || !strings.ContainsAny(letter, "WDLwdl") {
			return
		}

		// Only trust a bare letter when a result word sits nearby.
		context := sel.AttrOr("title", "") + " " + sel.AttrOr("aria-label", "") + " " + sel.Parent().AttrOr("title", "") + " " + sel.Parent().AttrOr("aria-label", "")
		if !resultWordPattern.MatchString(context) {
			return
		}

		outcome, ok := outcomeFromLetter(letter)
		if !ok {
			return
		}

		results = append(results, models.FormResult{Outcome: outcome, Detail: strings.TrimSpace(sel.AttrOr("title", ""))})
	})

	return results
}

func formFromBareLetters(row *goquery.Selection) []models.FormResult {
	var results []models.FormResult

	row.Find(cellSelector + ",[class*='form']").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if !labelContains(cellLabel(cell), "form") {
			return true
		}

		text := strings.TrimSpace(cell.Text())
		if !bareFormPattern.MatchString(text) {
			return true
		}

		for _, letter := range text {
			outcome, ok := outcomeFromLetter(string(letter))
			if !ok {
				continue
			}
			results = append(results, models.FormResult{Outcome: outcome})
		}

		return false
	})

	return results
}

// ParseDate normalizes a free-text date to YYYY-MM-DD.
func (t *Toolkit) ParseDate(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	if m := isoDatePattern.FindString(text); m != "" {
		if _, err := time.Parse("2006-01-02", m); err == nil {
			return m, true
		}
	}

	cleaned := ordinalDayPattern.ReplaceAllString(text, "$1")
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}

	return "", false
}

// ParseTimestampAttr reads a machine-readable datetime attribute: RFC 3339,
// a bare ISO date, or an epoch in seconds or milliseconds.
func (t *Toolkit) ParseTimestampAttr(value string) (date string, timeOfDay string, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", false
	}

	if epochAttrPattern.MatchString(value) {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return "", "", false
		}
		if len(value) == 13 {
			n /= 1000
		}
		at := time.Unix(n, 0).UTC()
		return at.Format("2006-01-02"), at.Format("15:04"), true
	}

	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC().Format("2006-01-02"), parsed.UTC().Format("15:04"), true
		}
	}

	if date, ok := t.ParseDate(value); ok {
		return date, models.TimeUnknown, true
	}

	return "", "", false
}

// TimeOfDay finds a kick-off time in free text. Scores like "2:1" do not
// qualify: minutes must be two digits and the hour must be on the clock.
func (t *Toolkit) TimeOfDay(text string) (string, bool) {
	for _, m := range timeOfDayPattern.FindAllStringSubmatch(text, -1) {
		hour, _ := strconv.Atoi(m[1])
		if hour > 23 {
			continue
		}

		return m[1] + ":" + m[2], true
	}

	return "", false
}

// Timestamp derives epoch milliseconds from a resolved date and time.
// Without a date it is 0; without a usable time the date alone counts from
// midnight UTC.
func (t *Toolkit) Timestamp(date string, timeOfDay string) int64 {
	if date == "" {
		return 0
	}

	if timeOfDay != "" && timeOfDay != models.TimeUnknown {
		if at, err := time.Parse("2006-01-02 15:04", date+" "+timeOfDay); err == nil {
			return at.UTC().UnixMilli()
		}
	}

	at, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}

	return at.UTC().UnixMilli()
}

func outcomeFromWord(word string) (models.FormOutcome, bool) {
	switch strings.ToLower(word) {
	case "win", "won":
		return models.FormWin, true
	case "draw", "drew":
		return models.FormDraw, true
	case "loss", "lose", "lost", "defeat":
		return models.FormLoss, true
	}

	return "", false
}

func outcomeFromLetter(letter string) (models.FormOutcome, bool) {
	switch strings.ToUpper(letter) {
	case "W":
		return models.FormWin, true
	case "D":
		return models.FormDraw, true
	case "L":
		return models.FormLoss, true
	}

	return "", false
}

// cellLabel gathers everything that can act as a column label for a cell.
func cellLabel(cell *goquery.Selection) string {
	parts := []string{
		cell.AttrOr("aria-label", ""),
		cell.AttrOr("title", ""),
		cell.AttrOr("data-stat", ""),
		cell.AttrOr("class", ""),
		cell.Find(hiddenSelector).Text(),
	}

	return strings.Join(parts, " ")
}

// labelContains matches long column names as substrings and short ones as
// whole words.
func labelContains(label string, want string) bool {
	label = strings.ToLower(label)
	want = strings.ToLower(want)

	if len(want) > 3 {
		return strings.Contains(label, want)
	}

	for _, word := range strings.FieldsFunc(label, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if word == want {
			return true
		}
	}

	return false
}

func firstNumber(text string) (int, bool) {
	m := numberPattern.FindString(text)
	if m == "" {
		return 0, false
	}

	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}

	return n, true
}
