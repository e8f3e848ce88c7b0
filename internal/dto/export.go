package dto

import "smarttag/internal/models"

// DetectionExport is the file written by the detection view's export action.
type DetectionExport struct {
	Timestamp string                 `json:"timestamp"`
	Stats     DisplayedCounters      `json:"stats"`
	History   []models.HistoryRecord `json:"history"`
}

type DashboardTotals struct {
	TotalVehicles string `json:"totalVehicles"`
	TotalFraud    string `json:"totalFraud"`
	FraudRate     string `json:"fraudRate"`
}

// DashboardExport is the file written by the dashboard's export action.
type DashboardExport struct {
	Timestamp string          `json:"timestamp"`
	Stats     DashboardTotals `json:"stats"`
}
