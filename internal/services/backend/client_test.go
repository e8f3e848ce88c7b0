package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second)
}

// ==== UploadVideo ====

func TestUploadVideo_SendsMultipartField(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != uploadPath {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("video")
		if err != nil {
			t.Errorf("Missing video field: %v", err)
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != "movie-bytes" || header.Filename != "toll.mp4" {
			t.Errorf("Unexpected upload %q %q", header.Filename, data)
		}
		w.Write([]byte(`{"success":true,"filename":"20240501_toll.mp4","video_path":"uploads/20240501_toll.mp4"}`))
	})

	res, err := c.UploadVideo(context.Background(), "toll.mp4", strings.NewReader("movie-bytes"))
	if err != nil {
		t.Fatalf("UploadVideo failed: %v", err)
	}
	if res.Filename != "20240501_toll.mp4" {
		t.Errorf("Unexpected filename %q", res.Filename)
	}
}

func TestUploadVideo_Unsuccessful(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	})

	_, err := c.UploadVideo(context.Background(), "toll.mp4", strings.NewReader("x"))
	if !errors.Is(err, ErrUnsuccessful) {
		t.Fatalf("Expected ErrUnsuccessful, got %v", err)
	}
}

func TestUploadVideo_BadStatus(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"No video file provided"}`))
	})

	_, err := c.UploadVideo(context.Background(), "toll.mp4", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "No video file provided") {
		t.Fatalf("Expected status error with backend message, got %v", err)
	}
}

func TestUploadVideo_StreamsBody(t *testing.T) {
	const size = 8 << 20
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength != -1 {
			t.Errorf("Expected a streamed body of unknown length, got ContentLength %d", r.ContentLength)
		}
		file, _, err := r.FormFile("video")
		if err != nil {
			t.Errorf("Missing video field: %v", err)
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		defer file.Close()
		n, _ := io.Copy(io.Discard, file)
		if n != size {
			t.Errorf("Expected %d bytes, got %d", size, n)
		}
		w.Write([]byte(`{"success":true}`))
	})

	video := strings.NewReader(strings.Repeat("v", size))
	if _, err := c.UploadVideo(context.Background(), "big.mp4", video); err != nil {
		t.Fatalf("UploadVideo failed: %v", err)
	}
}

func TestUploadVideo_ReaderError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("video"); err != nil {
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"success":true}`))
	})

	_, err := c.UploadVideo(context.Background(), "toll.mp4", iotest.ErrReader(errors.New("disk gone")))
	if err == nil {
		t.Fatal("Expected an error when the video cannot be read")
	}
}

// ==== GetStatistics ====

func TestGetStatistics(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != statisticsPath {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"statistics": map[string]any{
				"total_transactions": 830,
				"fraud_transactions": 87,
				"fraud_rate":         10.48,
				"fraud_by_type": []map[string]any{
					{"fraud_type": "Class Mismatch", "count": 40},
				},
			},
		})
	})

	stats, err := c.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	if stats.TotalTransactions != 830 || stats.FraudTransactions != 87 {
		t.Errorf("Unexpected totals: %+v", stats)
	}
	if len(stats.FraudByType) != 1 || stats.FraudByType[0].Count != 40 {
		t.Errorf("Unexpected fraud_by_type: %+v", stats.FraudByType)
	}
}

func TestGetStatistics_NonJSON(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	})

	if _, err := c.GetStatistics(context.Background()); err == nil {
		t.Fatal("Expected decode error")
	}
}

func TestGetStatistics_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	if _, err := c.GetStatistics(context.Background()); err == nil {
		t.Fatal("Expected transport error")
	}
}

// ==== Other endpoints ====

func TestHealth(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy","timestamp":"2024-05-01T12:00:00"}`))
	})

	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if h.Status != "healthy" {
		t.Errorf("Unexpected status %q", h.Status)
	}
}

func TestGetTransactions_PassesLimit(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("Expected limit=5, got %q", got)
		}
		w.Write([]byte(`{"success":true,"transactions":[{"id":1,"plate_number":"MH12AB5678","vehicle_class":"truck","is_fraud":0,"verified":1,"confidence":0.99}]}`))
	})

	txs, err := c.GetTransactions(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(txs) != 1 || bool(txs[0].IsFraud) || !bool(txs[0].Verified) {
		t.Errorf("Unexpected transactions: %+v", txs)
	}
}

func TestVerifyVehicle(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Bad body: %v", err)
		}
		if body["plate_number"] != "DL5CAB1234" || body["vehicle_class"] != "car" {
			t.Errorf("Unexpected body: %v", body)
		}
		w.Write([]byte(`{"success":true,"verification":{"verified":true,"message":"Vehicle verified","status":"active"}}`))
	})

	v, err := c.VerifyVehicle(context.Background(), "DL5CAB1234", "car")
	if err != nil {
		t.Fatalf("VerifyVehicle failed: %v", err)
	}
	if !v.Verified || v.Status != "active" {
		t.Errorf("Unexpected verification: %+v", v)
	}
}
