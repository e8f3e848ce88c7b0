package history

import (
	"fmt"
	"testing"
	"time"

	"smarttag/internal/models"
)

func record(i int) models.HistoryRecord {
	return models.HistoryRecord{
		FraudType:    fmt.Sprintf("fraud-%d", i),
		VehicleClass: "car",
		IsFraud:      true,
		Timestamp:    time.Unix(int64(i), 0),
	}
}

func TestLog_NewestFirst(t *testing.T) {
	l := New(10)
	for i := 0; i < 3; i++ {
		l.Add(record(i))
	}

	items := l.Items()
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"fraud-2", "fraud-1", "fraud-0"} {
		if items[i].FraudType != want {
			t.Errorf("items[%d] = %s, expected %s", i, items[i].FraudType, want)
		}
	}
}

func TestLog_EvictsOldestBeyondLimit(t *testing.T) {
	tests := []struct {
		name  string
		added int
	}{
		{"eleven", 11},
		{"twenty five", 25},
		{"exactly ten", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(10)
			for i := 0; i < tt.added; i++ {
				l.Add(record(i))
			}

			items := l.Items()
			if len(items) != 10 {
				t.Fatalf("Expected 10 items, got %d", len(items))
			}
			for i := 0; i < 10; i++ {
				want := fmt.Sprintf("fraud-%d", tt.added-1-i)
				if items[i].FraudType != want {
					t.Errorf("items[%d] = %s, expected %s", i, items[i].FraudType, want)
				}
			}
		})
	}
}

func TestLog_ItemsIsCopy(t *testing.T) {
	l := New(10)
	l.Add(record(1))

	items := l.Items()
	items[0].FraudType = "mutated"

	if l.Items()[0].FraudType != "fraud-1" {
		t.Error("Items should return a copy")
	}
}

func TestLog_Clear(t *testing.T) {
	l := New(10)
	l.Add(record(1))
	l.Add(record(2))
	l.Clear()

	if l.Len() != 0 {
		t.Errorf("Expected empty log, got %d", l.Len())
	}
	l.Add(record(3))
	if l.Len() != 1 {
		t.Errorf("Expected 1 item after clear, got %d", l.Len())
	}
}

func TestNew_DefaultLimit(t *testing.T) {
	if New(0).Limit() != DefaultLimit {
		t.Errorf("Expected default limit %d", DefaultLimit)
	}
}
