package models

import (
	"bytes"
	"fmt"
)

// Flag is a boolean that also accepts 0/1, which is how the backend's
// SQLite columns come back.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1", "1.0":
		*f = true
	case "false", "0", "0.0", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", data)
	}
	return nil
}

// Statistics is the aggregate returned by the backend's get_statistics endpoint.
type Statistics struct {
	TotalTransactions   int              `json:"total_transactions"`
	FraudTransactions   int              `json:"fraud_transactions"`
	FraudRate           float64          `json:"fraud_rate"`
	FraudByType         []FraudTypeCount `json:"fraud_by_type"`
	HourlyDistribution  []HourCount      `json:"hourly_distribution,omitempty"`
	VehicleDistribution []VehicleCount   `json:"vehicle_distribution,omitempty"`
}

type FraudTypeCount struct {
	FraudType string `json:"fraud_type"`
	Count     int    `json:"count"`
}

type HourCount struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

type VehicleCount struct {
	VehicleClass string `json:"vehicle_class"`
	Count        int    `json:"count"`
}

// Transaction is one row of the backend's transaction log.
type Transaction struct {
	ID           int64   `json:"id"`
	Timestamp    string  `json:"timestamp"`
	PlateNumber  string  `json:"plate_number"`
	VehicleClass string  `json:"vehicle_class"`
	FraudType    string  `json:"fraud_type"`
	IsFraud      Flag    `json:"is_fraud"`
	Confidence   float64 `json:"confidence"`
	Verified     Flag    `json:"verified"`
}

// Verification is the backend's answer to a verify_vehicle request.
type Verification struct {
	Verified bool    `json:"verified"`
	Message  string  `json:"message"`
	Status   string  `json:"status"`
	Owner    string  `json:"owner,omitempty"`
	Balance  float64 `json:"balance,omitempty"`
}
