// Package dashboard builds the statistics dashboard from the backend,
// falling back to sample data when the backend is unavailable.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"smarttag/internal/dto"
	"smarttag/internal/logger"
	"smarttag/internal/models"
)

const (
	SourceBackend = "backend"
	SourceSample  = "sample"

	StatusFraud    = "fraud"
	StatusVerified = "verified"

	DefaultTransactionLimit = 100
)

type StatsSource interface {
	GetStatistics(ctx context.Context) (models.Statistics, error)
	GetTransactions(ctx context.Context, limit int) ([]models.Transaction, error)
}

type Notifier interface {
	Info(message string)
}

type Service struct {
	backend  StatsSource
	notifier Notifier
	logger   *logger.Logger
	limit    int
	now      func() time.Time

	mu   sync.RWMutex
	data dto.DashboardData
}

func NewService(backend StatsSource, notifier Notifier, logger *logger.Logger) *Service {
	return &Service{
		backend:  backend,
		notifier: notifier,
		logger:   logger,
		limit:    DefaultTransactionLimit,
		now:      time.Now,
	}
}

// Load fetches statistics and transactions and caches the result. Each
// part falls back to sample data on its own.
func (s *Service) Load(ctx context.Context) dto.DashboardData {
	data := dto.DashboardData{
		Totals:       sampleTotals,
		Charts:       sampleCharts(),
		Transactions: sampleTransactions(),
		Source:       SourceSample,
		LastUpdated:  s.now(),
	}

	stats, err := s.backend.GetStatistics(ctx)
	if err != nil {
		s.logger.Warning("Error loading dashboard data, using sample data: %v", err)
	} else {
		data.Totals = Totals(stats)
		applyStatistics(data.Charts, stats)
		data.Source = SourceBackend
	}

	txs, err := s.backend.GetTransactions(ctx, s.limit)
	if err != nil {
		s.logger.Warning("Error loading transactions, using sample rows: %v", err)
	} else {
		data.Transactions = Rows(txs)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return copyData(data)
}

// Data returns the cached dashboard, loading it on first use.
func (s *Service) Data(ctx context.Context) dto.DashboardData {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	if data.LastUpdated.IsZero() {
		return s.Load(ctx)
	}
	return copyData(data)
}

// ViewDetails notifies about plate and returns the cached rows for it.
func (s *Service) ViewDetails(plate string) []dto.TransactionRow {
	s.notifier.Info(fmt.Sprintf("Viewing details for %s", plate))

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := []dto.TransactionRow{}
	for _, row := range s.data.Transactions {
		if row.Plate == plate {
			rows = append(rows, row)
		}
	}
	return rows
}

func Totals(stats models.Statistics) dto.DashboardTotals {
	return dto.DashboardTotals{
		TotalVehicles: strconv.Itoa(stats.TotalTransactions),
		TotalFraud:    strconv.Itoa(stats.FraudTransactions),
		FraudRate:     fmt.Sprintf("%.1f%%", stats.FraudRate),
	}
}

func applyStatistics(charts map[string]dto.ChartConfig, stats models.Statistics) {
	if len(stats.FraudByType) > 0 {
		labels := make([]string, 0, len(stats.FraudByType))
		values := make([]float64, 0, len(stats.FraudByType))
		for _, f := range stats.FraudByType {
			labels = append(labels, f.FraudType)
			values = append(values, float64(f.Count))
		}
		replaceSeries(charts, ChartFraud, labels, values)
	}

	if len(stats.VehicleDistribution) > 0 {
		labels := make([]string, 0, len(stats.VehicleDistribution))
		values := make([]float64, 0, len(stats.VehicleDistribution))
		for _, v := range stats.VehicleDistribution {
			labels = append(labels, v.VehicleClass)
			values = append(values, float64(v.Count))
		}
		replaceSeries(charts, ChartVehicle, labels, values)
	}

	if len(stats.HourlyDistribution) > 0 {
		labels := make([]string, 0, len(stats.HourlyDistribution))
		values := make([]float64, 0, len(stats.HourlyDistribution))
		for _, h := range stats.HourlyDistribution {
			labels = append(labels, h.Hour)
			values = append(values, float64(h.Count))
		}
		replaceSeries(charts, ChartHourly, labels, values)
	}
}

func replaceSeries(charts map[string]dto.ChartConfig, name string, labels []string, values []float64) {
	chart := charts[name]
	chart.Labels = labels
	if len(chart.Datasets) == 0 {
		chart.Datasets = []dto.Dataset{{}}
	}
	chart.Datasets[0].Data = values
	charts[name] = chart
}

// Rows converts backend transactions into table rows.
func Rows(txs []models.Transaction) []dto.TransactionRow {
	rows := make([]dto.TransactionRow, 0, len(txs))
	for _, tx := range txs {
		fraud := tx.FraudType
		if fraud == "" {
			fraud = "None"
		}
		status := StatusVerified
		if tx.IsFraud {
			status = StatusFraud
		}
		rows = append(rows, dto.TransactionRow{
			Time:       tx.Timestamp,
			Plate:      tx.PlateNumber,
			Vehicle:    tx.VehicleClass,
			Fraud:      fraud,
			Confidence: percent(tx.Confidence),
			Status:     status,
		})
	}
	return rows
}

// percent accepts both fractions and percentages.
func percent(c float64) int {
	if c <= 1 {
		c *= 100
	}
	return int(math.Round(c))
}

func copyData(d dto.DashboardData) dto.DashboardData {
	out := d
	out.Transactions = append([]dto.TransactionRow{}, d.Transactions...)
	out.Charts = make(map[string]dto.ChartConfig, len(d.Charts))
	for k, v := range d.Charts {
		out.Charts[k] = v
	}
	return out
}
