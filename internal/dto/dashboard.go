package dto

import "time"

// Dataset is one series of a chart, in the shape the charting library takes.
type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

type ChartConfig struct {
	Type     string    `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type TransactionRow struct {
	Time       string `json:"time"`
	Plate      string `json:"plate"`
	Vehicle    string `json:"vehicle"`
	Fraud      string `json:"fraud"`
	Confidence int    `json:"confidence"`
	Status     string `json:"status"`
}

type DashboardData struct {
	Totals       DashboardTotals        `json:"totals"`
	Charts       map[string]ChartConfig `json:"charts"`
	Transactions []TransactionRow       `json:"transactions"`
	Source       string                 `json:"source"`
	LastUpdated  time.Time              `json:"last_updated"`
}
