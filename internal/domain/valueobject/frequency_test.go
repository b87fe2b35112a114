package valueobject

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFrequency_Next(t *testing.T) {
	tests := []struct {
		name      string
		frequency Frequency
		ref       time.Time
		expected  time.Time
	}{
		{name: "daily", frequency: FrequencyDaily, ref: date(2024, 3, 10), expected: date(2024, 3, 11)},
		{name: "weekly", frequency: FrequencyWeekly, ref: date(2024, 3, 10), expected: date(2024, 3, 17)},
		{name: "monthly", frequency: FrequencyMonthly, ref: date(2024, 3, 10), expected: date(2024, 4, 10)},
		{name: "monthly clamps to end of february", frequency: FrequencyMonthly, ref: date(2023, 1, 31), expected: date(2023, 2, 28)},
		{name: "monthly clamps in leap year", frequency: FrequencyMonthly, ref: date(2024, 1, 31), expected: date(2024, 2, 29)},
		{name: "monthly across year end", frequency: FrequencyMonthly, ref: date(2024, 12, 15), expected: date(2025, 1, 15)},
		{name: "yearly", frequency: FrequencyYearly, ref: date(2023, 6, 1), expected: date(2024, 6, 1)},
		{name: "yearly from leap day", frequency: FrequencyYearly, ref: date(2024, 2, 29), expected: date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.frequency.Next(tt.ref)
			if !ok {
				t.Fatal("expected frequency to be recognised")
			}
			if !got.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestFrequency_NextUnknown(t *testing.T) {
	if _, ok := Frequency("hourly").Next(date(2024, 1, 1)); ok {
		t.Error("expected unknown frequency to be rejected")
	}
}

func TestFrequency_IsDue(t *testing.T) {
	today := time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)
	processedYesterday := time.Date(2024, 5, 19, 23, 59, 0, 0, time.UTC)
	processedToday := time.Date(2024, 5, 20, 1, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		frequency    Frequency
		originalDate time.Time
		lastRun      *time.Time
		expectDue    bool
	}{
		{name: "daily never processed, created yesterday", frequency: FrequencyDaily, originalDate: date(2024, 5, 19), expectDue: true},
		{name: "daily never processed, created today", frequency: FrequencyDaily, originalDate: date(2024, 5, 20), expectDue: false},
		{name: "daily processed yesterday late", frequency: FrequencyDaily, originalDate: date(2024, 1, 1), lastRun: &processedYesterday, expectDue: true},
		{name: "daily processed earlier today", frequency: FrequencyDaily, originalDate: date(2024, 1, 1), lastRun: &processedToday, expectDue: false},
		{name: "weekly exactly one week ago", frequency: FrequencyWeekly, originalDate: date(2024, 5, 13), expectDue: true},
		{name: "weekly six days ago", frequency: FrequencyWeekly, originalDate: date(2024, 5, 14), expectDue: false},
		{name: "monthly overdue", frequency: FrequencyMonthly, originalDate: date(2024, 2, 1), expectDue: true},
		{name: "monthly not yet", frequency: FrequencyMonthly, originalDate: date(2024, 5, 1), expectDue: false},
		{name: "yearly not yet", frequency: FrequencyYearly, originalDate: date(2024, 1, 1), expectDue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, due := tt.frequency.IsDue(tt.originalDate, tt.lastRun, today)
			if due != tt.expectDue {
				t.Errorf("expected due=%v, got %v", tt.expectDue, due)
			}
		})
	}
}

func TestFrequency_IsDueIsStableWithinADay(t *testing.T) {
	lastRun := time.Date(2024, 5, 13, 8, 0, 0, 0, time.UTC)
	morning := time.Date(2024, 5, 20, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2024, 5, 20, 23, 59, 59, 0, time.UTC)

	dueDate1, due1 := FrequencyWeekly.IsDue(date(2024, 1, 1), &lastRun, morning)
	dueDate2, due2 := FrequencyWeekly.IsDue(date(2024, 1, 1), &lastRun, evening)

	if due1 != due2 {
		t.Errorf("expected same verdict within a day, got %v and %v", due1, due2)
	}
	if !dueDate1.Equal(dueDate2) {
		t.Errorf("expected same due date, got %s and %s", dueDate1, dueDate2)
	}
	if !dueDate1.Equal(date(2024, 5, 20)) {
		t.Errorf("expected due date 2024-05-20, got %s", dueDate1)
	}
}
