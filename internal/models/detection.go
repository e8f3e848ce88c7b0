package models

import "time"

// ProcessedFrame is the payload of the backend's processed_frame event.
// Every field is optional.
type ProcessedFrame struct {
	AnnotatedImage string        `json:"annotated_image,omitempty"`
	Image          string        `json:"image,omitempty"` // older backends send the annotated frame here
	FrameID        string        `json:"frame_id,omitempty"`
	Stats          *FrameStats   `json:"stats,omitempty"`
	Vehicles       []Vehicle     `json:"vehicles,omitempty"`
	Plates         []Plate       `json:"plates,omitempty"`
	FraudResults   []FraudResult `json:"fraud_results,omitempty"`
	Timestamp      string        `json:"timestamp,omitempty"`
}

// Frame returns the annotated image data URI, if the backend sent one.
func (p ProcessedFrame) Frame() string {
	if p.AnnotatedImage != "" {
		return p.AnnotatedImage
	}
	return p.Image
}

type FrameStats struct {
	VehicleCount int `json:"vehicle_count"`
	PlateCount   int `json:"plate_count"`
	FraudCount   int `json:"fraud_count"`
}

type Vehicle struct {
	Class      string    `json:"class"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox,omitempty"`
}

type Plate struct {
	Text    string `json:"text"`
	IsValid bool   `json:"is_valid,omitempty"`
}

type FraudResult struct {
	IsFraud      bool    `json:"is_fraud"`
	FraudType    string  `json:"fraud_type"`
	VehicleClass string  `json:"vehicle_class"`
	Confidence   float64 `json:"confidence"`
	PlateNumber  string  `json:"plate_number,omitempty"`
}

// HistoryRecord is one fraud observation kept in the history log.
type HistoryRecord struct {
	FraudType    string    `json:"fraud_type"`
	VehicleClass string    `json:"vehicle_class"`
	PlateNumber  string    `json:"plate_number,omitempty"`
	Risk         string    `json:"risk"`
	IsFraud      bool      `json:"is_fraud"`
	Confidence   float64   `json:"confidence"`
	Timestamp    time.Time `json:"timestamp"`
}

// Title is the timeline heading for the record.
func (r HistoryRecord) Title() string {
	if r.FraudType == "" {
		return "Vehicle Detected"
	}
	return r.FraudType
}

// Badge is the timeline badge class for the record.
func (r HistoryRecord) Badge() string {
	if r.IsFraud {
		return "fraud"
	}
	return "success"
}
