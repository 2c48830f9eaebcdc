package spend

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func withFixedNow(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}

func TestParseOne(t *testing.T) {
	withFixedNow(t, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		text string
		want *Draft
	}{
		{
			name: "basic record",
			text: "amount:300\ncategory: hair remover\nDate:02 aug",
			want: &Draft{
				Amount:   decimal.NewFromInt(300),
				Category: "hair remover",
				Date:     time.Date(2023, 8, 2, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "lines in any order",
			text: "date: 10 jan\namount: 25.50\ncategory: food",
			want: &Draft{
				Amount:   decimal.NewFromFloat(25.50),
				Category: "food",
				Date:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "mixed case prefixes",
			text: "AMOUNT: 100\nCategory: Transport\nDATE: 01 may",
			want: &Draft{
				Amount:   decimal.NewFromInt(100),
				Category: "Transport",
				Date:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "optional description",
			text: "amount: 40\ncategory: food\ndescription: lunch with team\ndate: 03 jun",
			want: &Draft{
				Amount:      decimal.NewFromInt(40),
				Category:    "food",
				Description: "lunch with team",
				Date:        time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "unknown lines ignored",
			text: "hello there\namount: 12\nnote to self\ncategory: misc\ndate: 01 jun",
			want: &Draft{
				Amount:   decimal.NewFromInt(12),
				Category: "misc",
				Date:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "last valid occurrence wins",
			text: "amount: 10\namount: 20\ncategory: food\ncategory: transport\ndate: 01 jun",
			want: &Draft{
				Amount:   decimal.NewFromInt(20),
				Category: "transport",
				Date:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "invalid occurrence does not overwrite valid one",
			text: "amount: 20\namount: abc\ncategory: food\ndate: 01 jun",
			want: &Draft{
				Amount:   decimal.NewFromInt(20),
				Category: "food",
				Date:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "missing amount",
			text: "category: food\ndate: 01 jun",
			want: nil,
		},
		{
			name: "missing category",
			text: "amount: 5\ndate: 01 jun",
			want: nil,
		},
		{
			name: "missing date",
			text: "amount: 5\ncategory: food",
			want: nil,
		},
		{
			name: "zero amount rejected",
			text: "amount: 0\ncategory: food\ndate: 01 jun",
			want: nil,
		},
		{
			name: "negative amount rejected",
			text: "amount: -10\ncategory: food\ndate: 01 jun",
			want: nil,
		},
		{
			name: "bad month rejected",
			text: "amount: 10\ncategory: food\ndate: 01 xyz",
			want: nil,
		},
		{
			name: "day out of range rejected",
			text: "amount: 10\ncategory: food\ndate: 32 jan",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOne(tt.text)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("ParseOne() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseOne() = nil, want %+v", tt.want)
			}
			if !got.Amount.Equal(tt.want.Amount) {
				t.Errorf("Amount = %s, want %s", got.Amount, tt.want.Amount)
			}
			if got.Category != tt.want.Category {
				t.Errorf("Category = %q, want %q", got.Category, tt.want.Category)
			}
			if got.Description != tt.want.Description {
				t.Errorf("Description = %q, want %q", got.Description, tt.want.Description)
			}
			if !got.Date.Equal(tt.want.Date) {
				t.Errorf("Date = %s, want %s", got.Date, tt.want.Date)
			}
		})
	}
}

func TestParseDayMonthYearInference(t *testing.T) {
	withFixedNow(t, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{
			name:  "past date keeps current year",
			value: "02 jan",
			want:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "future date falls back a year",
			value: "01 dec",
			want:  time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "today is not in the future",
			value: "15 jun",
			want:  time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "nominal date normalizes forward",
			value: "30 feb",
			want:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "missing month",
			value: "15",
			ok:    false,
		},
		{
			name:  "day not a number",
			value: "abc jan",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDayMonth(tt.value)
			if ok != tt.ok {
				t.Fatalf("parseDayMonth(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseDayMonth(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseBlocks(t *testing.T) {
	withFixedNow(t, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name       string
		text       string
		wantCount  int
		wantFailed int
	}{
		{
			name:      "single block",
			text:      "amount: 10\ncategory: food\ndate: 01 jun",
			wantCount: 1,
		},
		{
			name: "two valid blocks",
			text: "amount: 10\ncategory: food\ndate: 01 jun\n\n" +
				"amount: 20\ncategory: transport\ndate: 02 jun",
			wantCount: 2,
		},
		{
			name: "invalid interior block dropped",
			text: "amount: 10\ncategory: food\ndate: 01 jun\n\n" +
				"amount: oops\ncategory: food\ndate: 01 jun\n\n" +
				"amount: 30\ncategory: misc\ndate: 03 jun",
			wantCount:  2,
			wantFailed: 1,
		},
		{
			name: "blank lines with spaces still split",
			text: "amount: 10\ncategory: food\ndate: 01 jun\n   \n" +
				"amount: 20\ncategory: misc\ndate: 02 jun",
			wantCount: 2,
		},
		{
			name:       "all blocks invalid",
			text:       "amount: x\ncategory: food\ndate: 01 jun\n\njust some text",
			wantCount:  0,
			wantFailed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts, failed := ParseBlocks(tt.text)
			if len(drafts) != tt.wantCount {
				t.Errorf("ParseBlocks() returned %d drafts, want %d", len(drafts), tt.wantCount)
			}
			if failed != tt.wantFailed {
				t.Errorf("ParseBlocks() failed = %d, want %d", failed, tt.wantFailed)
			}
		})
	}
}

func TestLooksLikeExpense(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "all prefixes present",
			text: "amount: 10\ncategory: food\ndate: 01 jun",
			want: true,
		},
		{
			name: "prefixes anywhere in text",
			text: "Amount:10 Category:food Date:01 jun",
			want: true,
		},
		{
			name: "over-approximates on unparsable text",
			text: "amount: nothing category: date:",
			want: true,
		},
		{
			name: "missing date prefix",
			text: "amount: 10\ncategory: food",
			want: false,
		},
		{
			name: "plain chat message",
			text: "how much did I spend on food this month?",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeExpense(tt.text); got != tt.want {
				t.Errorf("LooksLikeExpense(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestContainsMultiple(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "single block",
			text: "amount: 10\ncategory: food\ndate: 01 jun",
			want: false,
		},
		{
			name: "two blocks",
			text: "amount: 10\ncategory: food\ndate: 01 jun\n\namount: 20\ncategory: misc\ndate: 02 jun",
			want: true,
		},
		{
			name: "trailing blank lines are not a block",
			text: "amount: 10\ncategory: food\ndate: 01 jun\n\n\n",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsMultiple(tt.text); got != tt.want {
				t.Errorf("ContainsMultiple() = %v, want %v", got, tt.want)
			}
		})
	}
}
