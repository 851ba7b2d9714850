package http

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"baking-dashboard/internal/model"
)

// Page is the dashboard page selected in the sidebar.
type Page string

const (
	PageReportBaking  Page = "baking"
	PageReportSorting Page = "sorting"
)

var pages = []Page{PageReportBaking, PageReportSorting}

// ParsePage falls back to the baking report for unknown values.
func ParsePage(raw string) Page {
	switch Page(raw) {
	case PageReportSorting:
		return PageReportSorting
	default:
		return PageReportBaking
	}
}

func (p Page) Label() string {
	switch p {
	case PageReportSorting:
		return "Report Sorting"
	default:
		return "Report Baking"
	}
}

// Indonesian groups thousands with a dot: 25000 -> 25.000.
var numberPrinter = message.NewPrinter(language.Indonesian)

func formatNumber(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

func formatPercentage(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

type pageLink struct {
	Value  Page
	Label  string
	Active bool
}

type filterView struct {
	StartDate string
	EndDate   string
	MinDate   string
}

type metricCell struct {
	Label string
	Value string
	Delta string
}

type metricColumn struct {
	Heading string
	Metrics []metricCell
}

// metricRow is one row of three label/value columns.
type metricRow struct {
	Columns [3]metricColumn
}

type dashboardView struct {
	Title       string
	Page        Page
	Pages       []pageLink
	LogoURL     string
	DownloadURL string
	Filter      filterView
	Error       string
	Overview    []metricRow
	Daily       metricRow
}

func newDashboardView(page Page, logoURL string) dashboardView {
	links := make([]pageLink, 0, len(pages))
	for _, p := range pages {
		links = append(links, pageLink{Value: p, Label: p.Label(), Active: p == page})
	}

	return dashboardView{
		Title:       page.Label(),
		Page:        page,
		Pages:       links,
		LogoURL:     logoURL,
		DownloadURL: downloadPath,
	}
}

func (v dashboardView) IsBaking() bool {
	return v.Page == PageReportBaking
}

func (v dashboardView) HasMetrics() bool {
	return len(v.Overview) > 0
}

func bakingRows(m *model.BakingMetrics) ([]metricRow, metricRow) {
	overview := []metricRow{
		{Columns: [3]metricColumn{
			{Metrics: []metricCell{{Label: "Model", Value: m.Model}}},
			{},
			{Metrics: []metricCell{{Label: "Shipment Code", Value: m.ShipmentCode}}},
		}},
		{Columns: [3]metricColumn{
			{Metrics: []metricCell{{Label: "Target Baked", Value: formatNumber(m.TargetBaked)}}},
			{},
			{Metrics: []metricCell{{
				Label: "Total Baked",
				Value: formatNumber(m.TotalBaked),
				Delta: formatPercentage(m.TotalPercentage),
			}}},
		}},
	}

	daily := metricRow{Columns: [3]metricColumn{
		{
			Heading: "IN",
			Metrics: []metricCell{
				{Label: "Panels", Value: formatNumber(m.EnteringPanels)},
				{Label: "Palette", Value: formatNumber(m.InPallets)},
			},
		},
		{
			Heading: "OUT",
			Metrics: []metricCell{
				{Label: "Panels", Value: formatNumber(m.ExitingPanels)},
				{Label: "Palette", Value: formatNumber(m.OutPallets)},
			},
		},
		{
			Metrics: []metricCell{{Label: "Baked", Value: formatNumber(m.OnProgress)}},
		},
	}}

	return overview, daily
}
