package spend

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Draft is a parsed-but-not-yet-persisted expense candidate. A Draft exists
// only when amount, category and date are all present and valid.
type Draft struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// timeNow is swapped in tests that exercise year inference.
var timeNow = time.Now

var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

var blockSeparator = regexp.MustCompile(`\n\s*\n`)

const (
	prefixAmount      = "amount:"
	prefixCategory    = "category:"
	prefixDescription = "description:"
	prefixDate        = "date:"
)

// ParseOne parses a single expense record in the format:
//
//	amount:300
//	category: hair remover
//	Date:02 aug
//
// Prefixes are case-insensitive, lines may come in any order, unknown lines
// are ignored and the last valid occurrence of a field wins. An optional
// "description:" line fills the description; without it the description is
// empty. Returns nil when any of amount, category or date is missing or
// invalid.
func ParseOne(text string) *Draft {
	var (
		amount      *decimal.Decimal
		category    string
		description string
		date        *time.Time
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, prefixAmount):
			value := strings.TrimSpace(line[len(prefixAmount):])
			if parsed, err := decimal.NewFromString(value); err == nil && parsed.IsPositive() {
				amount = &parsed
			}
		case strings.HasPrefix(lower, prefixCategory):
			if value := strings.TrimSpace(line[len(prefixCategory):]); value != "" {
				category = value
			}
		case strings.HasPrefix(lower, prefixDescription):
			description = strings.TrimSpace(line[len(prefixDescription):])
		case strings.HasPrefix(lower, prefixDate):
			value := strings.TrimSpace(line[len(prefixDate):])
			if parsed, ok := parseDayMonth(value); ok {
				date = &parsed
			}
		}
	}

	if amount == nil || category == "" || date == nil {
		return nil
	}

	return &Draft{
		Amount:      *amount,
		Category:    category,
		Description: description,
		Date:        *date,
	}
}

// ParseMany parses multiple expense records separated by blank lines. Blocks
// that fail to parse are silently dropped, so the result may be empty even
// when ContainsMultiple reported true.
func ParseMany(text string) []Draft {
	drafts, _ := ParseBlocks(text)
	return drafts
}

// ParseBlocks parses blank-line separated blocks and additionally reports how
// many non-empty blocks failed to parse.
func ParseBlocks(text string) ([]Draft, int) {
	var (
		drafts []Draft
		failed int
	)

	for _, block := range splitBlocks(text) {
		if draft := ParseOne(block); draft != nil {
			drafts = append(drafts, *draft)
		} else {
			failed++
		}
	}

	return drafts, failed
}

// LooksLikeExpense reports whether the text contains all three required field
// prefixes. It is a cheap pre-filter that over-approximates: a true result
// does not guarantee ParseOne will succeed.
func LooksLikeExpense(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, prefixAmount) &&
		strings.Contains(lower, prefixCategory) &&
		strings.Contains(lower, prefixDate)
}

// ContainsMultiple reports whether the text holds more than one blank-line
// separated block.
func ContainsMultiple(text string) bool {
	return len(splitBlocks(text)) > 1
}

func splitBlocks(text string) []string {
	var blocks []string
	for _, block := range blockSeparator.Split(text, -1) {
		if strings.TrimSpace(block) != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// parseDayMonth parses dates like "02 aug" or "15 dec". The year is the
// current one, or the previous one when the resulting date would be in the
// future. Day is only range-checked: nominal dates like "30 feb" normalize
// forward per time.Date.
func parseDayMonth(value string) (time.Time, bool) {
	parts := strings.Fields(strings.ToLower(value))
	if len(parts) < 2 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	month, ok := months[parts[1]]
	if !ok {
		return time.Time{}, false
	}

	now := timeNow()
	date := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	if date.After(now) {
		date = date.AddDate(-1, 0, 0)
	}

	return date, true
}
