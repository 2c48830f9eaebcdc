package telegram

import (
	"testing"
	"time"
)

func TestParseCommandDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2025-06-15",
			want:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:  "leap day",
			input: "2024-02-29",
			want:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local),
		},
		{
			name:  "surrounding whitespace",
			input: "  2025-01-01 ",
			want:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name:    "nominal date rejected",
			input:   "2025-02-30",
			wantErr: true,
		},
		{
			name:    "leap day in non-leap year",
			input:   "2025-02-29",
			wantErr: true,
		},
		{
			name:    "month out of range",
			input:   "2025-13-01",
			wantErr: true,
		},
		{
			name:    "wrong separator",
			input:   "2025/06/15",
			wantErr: true,
		},
		{
			name:    "missing part",
			input:   "2025-06",
			wantErr: true,
		},
		{
			name:    "not a date",
			input:   "today",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommandDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseCommandDate(%q) = %s, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCommandDate(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseCommandDate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDayEnd(t *testing.T) {
	d := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	got := dayEnd(d)
	want := time.Date(2025, 6, 15, 23, 59, 59, 999999999, time.UTC)
	if !got.Equal(want) {
		t.Errorf("dayEnd() = %s, want %s", got, want)
	}
}
