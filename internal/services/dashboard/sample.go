package dashboard

import "smarttag/internal/dto"

const (
	ChartFraud       = "fraud"
	ChartVehicle     = "vehicle"
	ChartHourly      = "hourly"
	ChartPerformance = "performance"
)

var sampleTotals = dto.DashboardTotals{
	TotalVehicles: "830",
	TotalFraud:    "87",
	FraudRate:     "10.5%",
}

var fraudColors = []string{"#f94144", "#f8961e", "#f9c74f", "#90be6d"}

func sampleCharts() map[string]dto.ChartConfig {
	return map[string]dto.ChartConfig{
		ChartFraud: {
			Type:   "doughnut",
			Labels: []string{"Class Mismatch", "Unregistered", "Invalid Plate", "Other"},
			Datasets: []dto.Dataset{{
				Data:            []float64{45, 30, 15, 10},
				BackgroundColor: fraudColors,
			}},
		},
		ChartVehicle: {
			Type:   "bar",
			Labels: []string{"Car", "Motorcycle", "Bus", "Truck"},
			Datasets: []dto.Dataset{{
				Label:           "Vehicles",
				Data:            []float64{120, 45, 30, 25},
				BackgroundColor: []string{"#4361ee"},
			}},
		},
		ChartHourly: {
			Type:   "line",
			Labels: []string{"00", "04", "08", "12", "16", "20"},
			Datasets: []dto.Dataset{{
				Label:           "Transactions",
				Data:            []float64{15, 8, 45, 78, 92, 55},
				BorderColor:     "#4cc9f0",
				BackgroundColor: []string{"rgba(76,201,240,0.1)"},
				Tension:         0.4,
				Fill:            true,
			}},
		},
		ChartPerformance: {
			Type:   "radar",
			Labels: []string{"Detection", "OCR", "Fraud Detection", "Speed", "Accuracy"},
			Datasets: []dto.Dataset{{
				Label:           "Performance",
				Data:            []float64{98, 95, 92, 96, 99},
				BackgroundColor: []string{"rgba(67,97,238,0.2)"},
				BorderColor:     "#4361ee",
			}},
		},
	}
}

func sampleTransactions() []dto.TransactionRow {
	return []dto.TransactionRow{
		{Time: "2024-01-15 14:23:45", Plate: "DL5CAB1234", Vehicle: "Car", Fraud: "Class Mismatch", Confidence: 98, Status: StatusFraud},
		{Time: "2024-01-15 14:22:30", Plate: "MH12AB5678", Vehicle: "Truck", Fraud: "None", Confidence: 99, Status: StatusVerified},
		{Time: "2024-01-15 14:21:15", Plate: "KA01CD9012", Vehicle: "Motorcycle", Fraud: "Unregistered", Confidence: 95, Status: StatusFraud},
		{Time: "2024-01-15 14:20:00", Plate: "TN07EF3456", Vehicle: "Bus", Fraud: "None", Confidence: 100, Status: StatusVerified},
		{Time: "2024-01-15 14:18:45", Plate: "GJ06GH7890", Vehicle: "Car", Fraud: "Invalid Plate", Confidence: 92, Status: StatusFraud},
	}
}
