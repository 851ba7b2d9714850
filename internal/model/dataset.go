package model

import (
	"slices"
	"time"
)

// View is a read-only selection of scan events, in source order.
type View []ScanEvent

// Dataset is the immutable table of scan events loaded once at startup.
type Dataset struct {
	events   []ScanEvent
	hasModel bool
}

func NewDataset(events []ScanEvent, hasModel bool) *Dataset {
	return &Dataset{
		events:   slices.Clone(events),
		hasModel: hasModel,
	}
}

// All returns a copy of every row so callers cannot mutate the table.
func (d *Dataset) All() View {
	if d == nil {
		return nil
	}
	return View(slices.Clone(d.events))
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.events)
}

func (d *Dataset) HasModelColumn() bool {
	return d != nil && d.hasModel
}

type DatasetSummary struct {
	Rows           int        `json:"rows"`
	UndatedRows    int        `json:"undated_rows"`
	MinDate        *time.Time `json:"min_date"`
	MaxDate        *time.Time `json:"max_date"`
	HasModelColumn bool       `json:"has_model_column"`
}

func (d *Dataset) Summary() DatasetSummary {
	summary := DatasetSummary{
		Rows:           d.Len(),
		HasModelColumn: d.HasModelColumn(),
	}
	if d == nil {
		return summary
	}

	for _, e := range d.events {
		if e.Date == nil {
			summary.UndatedRows++
			continue
		}
		if summary.MinDate == nil || e.Date.Before(*summary.MinDate) {
			date := *e.Date
			summary.MinDate = &date
		}
		if summary.MaxDate == nil || e.Date.After(*summary.MaxDate) {
			date := *e.Date
			summary.MaxDate = &date
		}
	}
	return summary
}
