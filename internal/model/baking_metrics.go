package model

import "time"

const NotAvailable = "N/A"

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

type BakingMetrics struct {
	Range           DateRange `json:"range"`
	Model           string    `json:"model"`
	ShipmentCode    string    `json:"shipment_code"`
	EnteringPanels  int       `json:"entering_panels"`
	ExitingPanels   int       `json:"exiting_panels"`
	InPallets       int       `json:"in_pallets"`
	OutPallets      int       `json:"out_pallets"`
	OnProgress      int       `json:"on_progress"`
	TotalBaked      int       `json:"total_baked"`
	TargetBaked     int       `json:"target_baked"`
	TotalPercentage float64   `json:"total_percentage"`
}
