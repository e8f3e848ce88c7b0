// Package backend is the HTTP client for the detection backend's REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smarttag/internal/models"
)

const (
	uploadPath       = "/api/upload_video"
	statisticsPath   = "/api/get_statistics"
	healthPath       = "/api/health"
	transactionsPath = "/api/get_transactions"
	verifyPath       = "/api/verify_vehicle"

	uploadField = "video"

	maxResponseBytes = 4 << 20
)

// ErrUnsuccessful is returned when the backend answers with success=false.
var ErrUnsuccessful = errors.New("backend reported failure")

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type UploadResult struct {
	VideoPath string `json:"video_path"`
	Filename  string `json:"filename"`
}

type uploadResponse struct {
	envelope
	UploadResult
}

type statisticsResponse struct {
	envelope
	Statistics models.Statistics `json:"statistics"`
}

type transactionsResponse struct {
	envelope
	Transactions []models.Transaction `json:"transactions"`
}

type verifyResponse struct {
	envelope
	Verification models.Verification `json:"verification"`
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// UploadVideo posts the video as multipart field "video".
func (c *Client) UploadVideo(ctx context.Context, filename string, video io.Reader) (UploadResult, error) {
	const op = "backend.UploadVideo"

	body, writer := io.Pipe()
	form := multipart.NewWriter(writer)
	go func() {
		writer.CloseWithError(writeVideoForm(form, filename, video))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, body)
	if err != nil {
		body.Close()
		return UploadResult{}, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var resp uploadResponse
	if err := c.do(req, &resp); err != nil {
		return UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := resp.check(); err != nil {
		return UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp.UploadResult, nil
}

// writeVideoForm streams video into the multipart body. An error closes the
// pipe so the request fails instead of sending a truncated form.
func writeVideoForm(form *multipart.Writer, filename string, video io.Reader) error {
	part, err := form.CreateFormFile(uploadField, filename)
	if err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}
	if _, err := io.Copy(part, video); err != nil {
		return fmt.Errorf("failed to copy video: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("failed to close form: %w", err)
	}
	return nil
}

func (c *Client) GetStatistics(ctx context.Context) (models.Statistics, error) {
	const op = "backend.GetStatistics"

	var resp statisticsResponse
	if err := c.get(ctx, statisticsPath, &resp); err != nil {
		return models.Statistics{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := resp.check(); err != nil {
		return models.Statistics{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Statistics, nil
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	const op = "backend.Health"

	var resp Health
	if err := c.get(ctx, healthPath, &resp); err != nil {
		return Health{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// GetTransactions returns the most recent transactions. limit <= 0 leaves
// the backend default.
func (c *Client) GetTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	const op = "backend.GetTransactions"

	path := transactionsPath
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	var resp transactionsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := resp.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Transactions, nil
}

func (c *Client) VerifyVehicle(ctx context.Context, plateNumber, vehicleClass string) (models.Verification, error) {
	const op = "backend.VerifyVehicle"

	payload, err := json.Marshal(map[string]string{
		"plate_number":  plateNumber,
		"vehicle_class": vehicleClass,
	})
	if err != nil {
		return models.Verification{}, fmt.Errorf("%s: failed to marshal request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+verifyPath, bytes.NewReader(payload))
	if err != nil {
		return models.Verification{}, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp verifyResponse
	if err := c.do(req, &resp); err != nil {
		return models.Verification{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := resp.check(); err != nil {
		return models.Verification{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Verification, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e envelope
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("unexpected status %s: %s", resp.Status, e.Error)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (e envelope) check() error {
	if e.Success {
		return nil
	}
	if e.Error != "" {
		return fmt.Errorf("%w: %s", ErrUnsuccessful, e.Error)
	}
	return ErrUnsuccessful
}
