// Package render turns processed_frame results into the detection view.
package render

import (
	"encoding/json"
	"fmt"
	"time"

	"smarttag/internal/dto"
	"smarttag/internal/logger"
	"smarttag/internal/models"
	"smarttag/internal/services/pump"
	"smarttag/internal/state"
)

const (
	ProcessedFrameEvent = "processed_frame"

	noPlate = "N/A"
)

type Renderer struct {
	state   *state.State
	latency *pump.LatencyTracker
	fps     *FPSMeter
	logger  *logger.Logger
	now     func() time.Time
}

func New(st *state.State, latency *pump.LatencyTracker, logger *logger.Logger) *Renderer {
	return &Renderer{
		state:   st,
		latency: latency,
		fps:     NewFPSMeter(time.Now()),
		logger:  logger,
		now:     time.Now,
	}
}

// HandleEvent decodes a processed_frame payload and applies it. Malformed
// payloads are logged and dropped.
func (r *Renderer) HandleEvent(data json.RawMessage) {
	var frame models.ProcessedFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		r.logger.Warning("Dropping malformed %s payload: %v", ProcessedFrameEvent, err)
		return
	}
	r.Apply(frame)
}

// Apply renders one result into the state and records its frauds.
func (r *Renderer) Apply(frame models.ProcessedFrame) {
	now := r.now()

	vehicles := RenderVehicles(frame.Vehicles, frame.Plates)
	frauds, records := RenderFrauds(frame.FraudResults, now)
	for _, rec := range records {
		r.state.History().Add(rec)
	}

	fps := r.fps.Tick(now)
	latency, resolved := r.latency.Resolve(frame.FrameID, now)

	r.state.UpdateView(func(v *dto.DetectionView) {
		if img := frame.Frame(); img != "" {
			v.VideoFeed = img
		}
		if frame.Stats != nil {
			v.Counters = dto.Counters{
				Vehicles: frame.Stats.VehicleCount,
				Plates:   frame.Stats.PlateCount,
				Frauds:   frame.Stats.FraudCount,
			}
		}
		v.Vehicles = vehicles
		v.Frauds = frauds
		v.FPS = fps
		if resolved {
			v.ProcessingTime = fmt.Sprintf("%dms", latency.Round(time.Millisecond).Milliseconds())
		}
	})
}

// Clear resets the lists and counters and empties the history.
func (r *Renderer) Clear() {
	r.state.History().Clear()
	r.state.UpdateView(func(v *dto.DetectionView) {
		empty := state.EmptyView()
		v.Counters = empty.Counters
		v.Vehicles = empty.Vehicles
		v.Frauds = empty.Frauds
	})
}

func RenderVehicles(vehicles []models.Vehicle, plates []models.Plate) dto.VehicleList {
	if len(vehicles) == 0 {
		empty := state.EmptyVehicles
		return dto.VehicleList{Items: []dto.VehicleEntry{}, Empty: &empty}
	}

	items := make([]dto.VehicleEntry, 0, len(vehicles))
	for i, v := range vehicles {
		plate := noPlate
		if i < len(plates) && plates[i].Text != "" {
			plate = plates[i].Text
		}
		items = append(items, dto.VehicleEntry{
			Class:      v.Class,
			Icon:       "fa-" + v.Class,
			Plate:      plate,
			Confidence: fmt.Sprintf("%.1f%%", v.Confidence*100),
		})
	}
	return dto.VehicleList{Items: items}
}

// RenderFrauds keeps only is_fraud results and returns their list entries
// together with the history records stamped at receivedAt.
func RenderFrauds(results []models.FraudResult, receivedAt time.Time) (dto.FraudList, []models.HistoryRecord) {
	var items []dto.FraudEntry
	var records []models.HistoryRecord
	for _, f := range results {
		if !f.IsFraud {
			continue
		}
		risk := RiskLevel(f.Confidence)
		items = append(items, dto.FraudEntry{
			FraudType:    f.FraudType,
			VehicleClass: f.VehicleClass,
			Risk:         risk,
		})
		records = append(records, models.HistoryRecord{
			FraudType:    f.FraudType,
			VehicleClass: f.VehicleClass,
			PlateNumber:  f.PlateNumber,
			Risk:         risk,
			IsFraud:      true,
			Confidence:   f.Confidence,
			Timestamp:    receivedAt,
		})
	}

	if len(items) == 0 {
		empty := state.EmptyFrauds
		return dto.FraudList{Items: []dto.FraudEntry{}, Empty: &empty}, nil
	}
	return dto.FraudList{Items: items}, records
}
