package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"baking-dashboard/internal/config"
	"baking-dashboard/internal/model"
)

var ErrInvalidInput = errors.New("invalid input")

type BakingService struct {
	dataset *model.Dataset
	cfg     config.BakingConfig
}

func NewBakingService(dataset *model.Dataset, cfg config.BakingConfig) *BakingService {
	return &BakingService{
		dataset: dataset,
		cfg:     cfg,
	}
}

// DefaultRange spans from the reference start date to today.
func (s *BakingService) DefaultRange(now time.Time) model.DateRange {
	return model.DateRange{
		Start: s.cfg.MinStartDate,
		End:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

func (s *BakingService) MinStartDate() time.Time {
	return s.cfg.MinStartDate
}

func (s *BakingService) Report(ctx context.Context, r model.DateRange) (*model.BakingMetrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if truncateDay(r.Start).Before(truncateDay(s.cfg.MinStartDate)) {
		return nil, fmt.Errorf("%w: start date must not be before %s",
			ErrInvalidInput, s.cfg.MinStartDate.Format(config.DateLayout))
	}

	batch := s.cfg.BatchSize
	all := s.dataset.All()
	filtered := FilterByDateRange(all, r.Start, r.End)

	in := SelectByStatus(filtered, model.ScanStatusIn)
	out := SelectByStatus(filtered, model.ScanStatusOut)

	totalBaked := PairedBoxMetric(all, batch)

	return &model.BakingMetrics{
		Range:           r,
		Model:           FirstModelLabel(filtered),
		ShipmentCode:    s.cfg.ShipmentCode,
		EnteringPanels:  CountPanels(in, batch),
		ExitingPanels:   CountPanels(out, batch),
		InPallets:       DistinctPallets(in),
		OutPallets:      DistinctPallets(out),
		OnProgress:      PairedBoxMetric(filtered, batch),
		TotalBaked:      totalBaked,
		TargetBaked:     s.cfg.Target,
		TotalPercentage: Percentage(totalBaked, s.cfg.Target),
	}, nil
}

func (s *BakingService) DatasetSummary(ctx context.Context) (model.DatasetSummary, error) {
	if err := ctx.Err(); err != nil {
		return model.DatasetSummary{}, err
	}
	return s.dataset.Summary(), nil
}
