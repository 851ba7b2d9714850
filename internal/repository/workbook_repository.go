package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"baking-dashboard/internal/model"
	"baking-dashboard/internal/utils"
)

const (
	columnDate    = "date"
	columnStatus  = "status"
	columnPallet  = "id pallete"
	columnBox     = "id box"
	columnModel   = "model"
	notFoundIndex = -1
)

var requiredColumns = []string{columnDate, columnStatus, columnPallet, columnBox}

// Slash dates are month first, for both two and four digit years.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/06",
	"1/2/06 15:04",
}

// WorkbookRepository reads scan events from the first sheet of an xlsx file.
type WorkbookRepository struct {
	path string
}

func NewWorkbookRepository(path string) *WorkbookRepository {
	return &WorkbookRepository{path: path}
}

func (r *WorkbookRepository) Source() string {
	return r.path
}

func (r *WorkbookRepository) Load(ctx context.Context) (*model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", r.path, err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook %q has no worksheet", r.path)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	return parseRows(rows)
}

func parseRows(rows [][]string) (*model.Dataset, error) {
	headerIndex := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		name := utils.NormalizeHeader(header)
		if _, seen := headerIndex[name]; !seen {
			headerIndex[name] = i
		}
	}

	for _, column := range requiredColumns {
		if _, ok := headerIndex[column]; !ok {
			return nil, fmt.Errorf("missing required column: %s", column)
		}
	}

	modelIdx, hasModel := headerIndex[columnModel]
	if !hasModel {
		modelIdx = notFoundIndex
	}

	events := make([]model.ScanEvent, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		event := model.ScanEvent{
			Date:     parseDate(utils.CellValue(row, headerIndex[columnDate])),
			Status:   model.ScanStatus(utils.NormalizeStatus(utils.CellValue(row, headerIndex[columnStatus]))),
			PalletID: utils.NormalizeIdentifier(utils.CellValue(row, headerIndex[columnPallet])),
			BoxID:    utils.NormalizeIdentifier(utils.CellValue(row, headerIndex[columnBox])),
		}
		if label := utils.CellValue(row, modelIdx); label != "" {
			event.Model = &label
		}

		events = append(events, event)
	}

	return model.NewDataset(events, hasModel), nil
}

// parseDate accepts Excel serial dates and common text layouts. It returns nil
// for anything it cannot read.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial <= 0 {
			return nil
		}
		parsed, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil
		}
		return &parsed
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed
		}
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
