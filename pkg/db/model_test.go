package db

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	d := time.Date(2024, 6, 15, 14, 30, 45, 123, time.UTC)
	start, end := dayBounds(d)

	wantStart := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 6, 15, 23, 59, 59, 999999999, time.UTC)

	if !start.Equal(wantStart) {
		t.Errorf("start = %s, want %s", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %s, want %s", end, wantEnd)
	}
	if !end.After(start) {
		t.Error("end not after start")
	}
}
