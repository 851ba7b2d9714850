package service

import (
	"time"

	"baking-dashboard/internal/model"
)

// FilterByDateRange keeps the rows dated on or after start's day and on or
// before end's day. Rows without a date never match.
func FilterByDateRange(view model.View, start, end time.Time) model.View {
	from := truncateDay(start)
	until := truncateDay(end).AddDate(0, 0, 1)

	filtered := make(model.View, 0, len(view))
	for _, e := range view {
		if e.Date == nil {
			continue
		}
		if e.Date.Before(from) || !e.Date.Before(until) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// SelectByStatus returns the rows with the given status. The result is meant
// to be computed once and shared by CountPanels and DistinctPallets.
func SelectByStatus(view model.View, status model.ScanStatus) model.View {
	subset := make(model.View, 0, len(view))
	for _, e := range view {
		if e.Status == status {
			subset = append(subset, e)
		}
	}
	return subset
}

func CountPanels(subset model.View, batchSize int) int {
	return len(subset) * batchSize
}

func CountByStatus(view model.View, status model.ScanStatus, batchSize int) int {
	if len(view) == 0 {
		return 0
	}
	return CountPanels(SelectByStatus(view, status), batchSize)
}

// DistinctPallets counts unique non-blank pallet ids in a status subset.
func DistinctPallets(subset model.View) int {
	seen := make(map[string]struct{}, len(subset))
	for _, e := range subset {
		if e.PalletID == "" {
			continue
		}
		seen[e.PalletID] = struct{}{}
	}
	return len(seen)
}

func DistinctPalletCount(view model.View, status model.ScanStatus) int {
	if len(view) == 0 {
		return 0
	}
	return DistinctPallets(SelectByStatus(view, status))
}

// PairedBoxMetric counts the distinct box ids that appear more than once in
// view, times the batch size. Blank box ids never pair.
func PairedBoxMetric(view model.View, batchSize int) int {
	occurrences := make(map[string]int, len(view))
	for _, e := range view {
		if e.BoxID == "" {
			continue
		}
		occurrences[e.BoxID]++
	}

	paired := 0
	for _, n := range occurrences {
		if n > 1 {
			paired++
		}
	}
	return paired * batchSize
}

func Percentage(totalBaked, target int) float64 {
	if target <= 0 {
		return 0.0
	}
	return float64(totalBaked) / float64(target) * 100
}

func FirstModelLabel(view model.View) string {
	if len(view) == 0 || view[0].Model == nil {
		return model.NotAvailable
	}
	return *view[0].Model
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
