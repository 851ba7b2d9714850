package service

import (
	"context"
	"fmt"
	"os"
)

const SpreadsheetMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportFile is the downloadable baking report.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService serves a fixed report file. The file is read on every call.
type ReportService struct {
	path     string
	filename string
}

func NewReportService(path, filename string) *ReportService {
	return &ReportService{
		path:     path,
		filename: filename,
	}
}

// Check verifies the report file is readable, for startup validation.
func (s *ReportService) Check() error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("report file %q: %w", s.path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("report file %q is a directory", s.path)
	}
	return nil
}

func (s *ReportService) Download(ctx context.Context) (*ReportFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read report file %q: %w", s.path, err)
	}

	return &ReportFile{
		Filename:    s.filename,
		ContentType: SpreadsheetMIME,
		Data:        data,
	}, nil
}
