package util

import (
	"testing"
	"time"

	"github.com/credipyme/credipyme-backend/internal/domain"
)

func TestFillMonthCounts_EmptyInput(t *testing.T) {
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)

	got := FillMonthCounts(nil, 6, now)

	want := []string{"2026-03", "2026-04", "2026-05", "2026-06", "2026-07", "2026-08"}
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	for i, bucket := range got {
		if bucket.Month != want[i] {
			t.Errorf("bucket[%d].Month = %q, want %q", i, bucket.Month, want[i])
		}
		if bucket.Count != 0 {
			t.Errorf("bucket[%d].Count = %d, want 0", i, bucket.Count)
		}
	}
}

func TestFillMonthCounts_SparseEntryLandsInFinalBucket(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	got := FillMonthCounts([]domain.MonthCount{{Month: "2026-03", Count: 7}}, 3, now)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Month != "2026-01" || got[0].Count != 0 {
		t.Errorf("bucket[0] = %+v, want 2026-01/0", got[0])
	}
	if got[1].Month != "2026-02" || got[1].Count != 0 {
		t.Errorf("bucket[1] = %+v, want 2026-02/0", got[1])
	}
	if got[2].Month != "2026-03" || got[2].Count != 7 {
		t.Errorf("bucket[2] = %+v, want 2026-03/7", got[2])
	}
}

func TestFillMonthCounts_YearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	got := FillMonthCounts([]domain.MonthCount{{Month: "2025-12", Count: 3}}, 4, now)

	want := []domain.MonthCount{
		{Month: "2025-11", Count: 0},
		{Month: "2025-12", Count: 3},
		{Month: "2026-01", Count: 0},
		{Month: "2026-02", Count: 0},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFillMonthCounts_IgnoresMonthsOutsideWindow(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	got := FillMonthCounts([]domain.MonthCount{
		{Month: "2020-01", Count: 99},
		{Month: "2026-06", Count: 2},
	}, 2, now)

	if got[0].Month != "2026-05" || got[0].Count != 0 {
		t.Errorf("bucket[0] = %+v", got[0])
	}
	if got[1].Month != "2026-06" || got[1].Count != 2 {
		t.Errorf("bucket[1] = %+v", got[1])
	}
}

func TestFillMonthValues(t *testing.T) {
	now := time.Date(2026, time.April, 30, 23, 59, 0, 0, time.UTC)

	got := FillMonthValues([]domain.MonthValue{
		{Month: "2026-02", Value: 1250.5},
	}, 3, now)

	want := []domain.MonthValue{
		{Month: "2026-02", Value: 1250.5},
		{Month: "2026-03", Value: 0},
		{Month: "2026-04", Value: 0},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFillMonthPairs(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	got := FillMonthPairs([]domain.MonthRevenueNetIncome{
		{Month: "2025-12", AvgRevenue: 100, AvgNetIncome: 20},
	}, 2, now)

	if got[0].Month != "2025-12" || got[0].AvgRevenue != 100 || got[0].AvgNetIncome != 20 {
		t.Errorf("bucket[0] = %+v", got[0])
	}
	if got[1].Month != "2026-01" || got[1].AvgRevenue != 0 || got[1].AvgNetIncome != 0 {
		t.Errorf("bucket[1] = %+v", got[1])
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	got := WindowStart(6, now)
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WindowStart(6) = %v, want %v", got, want)
	}
}
