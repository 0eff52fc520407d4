package util

import (
	"time"

	"github.com/credipyme/credipyme-backend/internal/domain"
)

// MonthKey formats a time as the "YYYY-MM" bucket key used by the dashboard
// time series.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// monthKeys returns the keys of the trailing months window ending at now's
// month (inclusive), ascending. The window is anchored to now regardless of
// any date filter applied to the underlying query.
func monthKeys(months int, now time.Time) []string {
	keys := make([]string, 0, months)
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := months - 1; i >= 0; i-- {
		keys = append(keys, MonthKey(anchor.AddDate(0, -i, 0)))
	}
	return keys
}

// WindowStart returns the first day of the month `months-1` months before now,
// i.e. the start of the window monthKeys would produce.
func WindowStart(months int, now time.Time) time.Time {
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return anchor.AddDate(0, -(months - 1), 0)
}

// FillMonthCounts expands a sparse count series into exactly months buckets
// ending at now's month, zero-filling absent months.
func FillMonthCounts(rows []domain.MonthCount, months int, now time.Time) []domain.MonthCount {
	byMonth := make(map[string]int64, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r.Count
	}

	out := make([]domain.MonthCount, 0, months)
	for _, key := range monthKeys(months, now) {
		out = append(out, domain.MonthCount{Month: key, Count: byMonth[key]})
	}
	return out
}

// FillMonthValues expands a sparse value series into exactly months buckets
// ending at now's month, zero-filling absent months.
func FillMonthValues(rows []domain.MonthValue, months int, now time.Time) []domain.MonthValue {
	byMonth := make(map[string]float64, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r.Value
	}

	out := make([]domain.MonthValue, 0, months)
	for _, key := range monthKeys(months, now) {
		out = append(out, domain.MonthValue{Month: key, Value: byMonth[key]})
	}
	return out
}

// FillMonthPairs expands the sparse revenue/net-income dual series into
// exactly months buckets ending at now's month, zero-filling absent months.
func FillMonthPairs(rows []domain.MonthRevenueNetIncome, months int, now time.Time) []domain.MonthRevenueNetIncome {
	byMonth := make(map[string]domain.MonthRevenueNetIncome, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}

	out := make([]domain.MonthRevenueNetIncome, 0, months)
	for _, key := range monthKeys(months, now) {
		entry := byMonth[key]
		out = append(out, domain.MonthRevenueNetIncome{
			Month:        key,
			AvgRevenue:   entry.AvgRevenue,
			AvgNetIncome: entry.AvgNetIncome,
		})
	}
	return out
}
