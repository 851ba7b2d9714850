package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"baking-dashboard/internal/model"
	"baking-dashboard/internal/utils"
)

// ScanEventRepository reads scan events from the scan_events table.
type ScanEventRepository struct {
	db *gorm.DB
}

func NewScanEventRepository(db *gorm.DB) *ScanEventRepository {
	return &ScanEventRepository{db: db}
}

func (r *ScanEventRepository) Source() string {
	return model.ScanEvent{}.TableName()
}

func (r *ScanEventRepository) Load(ctx context.Context) (*model.Dataset, error) {
	var events []model.ScanEvent
	err := r.db.WithContext(ctx).
		Model(&model.ScanEvent{}).
		Order("scanned_at ASC NULLS LAST").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return newScanEventDataset(events), nil
}

// newScanEventDataset applies the workbook normalization to stored rows and
// keeps their query order.
func newScanEventDataset(events []model.ScanEvent) *model.Dataset {
	for i := range events {
		e := &events[i]
		e.Status = model.ScanStatus(utils.NormalizeStatus(string(e.Status)))
		e.PalletID = utils.NormalizeIdentifier(e.PalletID)
		e.BoxID = utils.NormalizeIdentifier(e.BoxID)
		if e.Model != nil {
			if label := strings.TrimSpace(*e.Model); label != "" {
				e.Model = &label
			} else {
				e.Model = nil
			}
		}
	}
	return model.NewDataset(events, true)
}
