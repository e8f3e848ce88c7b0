package dto

import (
	"strconv"
	"time"

	"smarttag/internal/models"
)

// Counters are the three detection counters shown on the detection view.
type Counters struct {
	Vehicles int `json:"vehicles"`
	Plates   int `json:"plates"`
	Frauds   int `json:"frauds"`
}

// DisplayedCounters is Counters in the text form the view shows.
type DisplayedCounters struct {
	Vehicles string `json:"vehicles"`
	Plates   string `json:"plates"`
	Frauds   string `json:"frauds"`
}

func (c Counters) Display() DisplayedCounters {
	return DisplayedCounters{
		Vehicles: strconv.Itoa(c.Vehicles),
		Plates:   strconv.Itoa(c.Plates),
		Frauds:   strconv.Itoa(c.Frauds),
	}
}

// EmptyState is the placeholder rendered in place of an empty list.
type EmptyState struct {
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

type VehicleEntry struct {
	Class      string `json:"class"`
	Icon       string `json:"icon"`
	Plate      string `json:"plate"`
	Confidence string `json:"confidence"`
}

type FraudEntry struct {
	FraudType    string `json:"fraud_type"`
	VehicleClass string `json:"vehicle_class"`
	Risk         string `json:"risk"`
}

// VehicleList holds either items or the empty placeholder, never both.
type VehicleList struct {
	Items []VehicleEntry `json:"items"`
	Empty *EmptyState    `json:"empty,omitempty"`
}

type FraudList struct {
	Items []FraudEntry `json:"items"`
	Empty *EmptyState  `json:"empty,omitempty"`
}

type Controls struct {
	StartEnabled bool `json:"start_enabled"`
	StopEnabled  bool `json:"stop_enabled"`
}

// DetectionView is everything the detection page displays for the latest result.
type DetectionView struct {
	VideoFeed      string      `json:"video_feed"`
	Counters       Counters    `json:"counters"`
	Vehicles       VehicleList `json:"vehicles"`
	Frauds         FraudList   `json:"frauds"`
	ProcessingTime string      `json:"processing_time,omitempty"`
	FPS            int         `json:"fps"`
}

type TimelineItem struct {
	Time     string `json:"time"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Badge    string `json:"badge"`
}

// Timeline renders history records as timeline items, preserving order.
func Timeline(records []models.HistoryRecord) []TimelineItem {
	items := make([]TimelineItem, 0, len(records))
	for _, r := range records {
		items = append(items, TimelineItem{
			Time:     r.Timestamp.Format(time.TimeOnly),
			Title:    r.Title(),
			Subtitle: r.VehicleClass,
			Badge:    r.Badge(),
		})
	}
	return items
}

type Connection struct {
	Connected bool   `json:"connected"`
	Label     string `json:"label"`
	Color     string `json:"color"`
}

// StateSnapshot is a consistent copy of the application state.
type StateSnapshot struct {
	Connection    Connection             `json:"connection"`
	Controls      Controls               `json:"controls"`
	SessionActive bool                   `json:"session_active"`
	Loading       bool                   `json:"loading"`
	View          DetectionView          `json:"view"`
	History       []models.HistoryRecord `json:"history"`
	Timeline      []TimelineItem         `json:"timeline"`
	Theme         string                 `json:"theme,omitempty"`
	Notifications []Notification         `json:"notifications,omitempty"`
}
