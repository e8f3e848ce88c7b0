package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     int    `env:"PORT" env-default:"8090"`
	Password string `env:"PASSWORD"` // empty leaves the dashboard open

	// SessionSecret signs login cookies. A random one is generated when
	// unset, so sessions end on restart.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" env-default:"24h"`

	BackendURL  string        `env:"BACKEND_URL" env-default:"http://localhost:5000"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`

	CameraDevice    int           `env:"CAMERA_DEVICE" env-default:"0"`
	CaptureWidth    int           `env:"CAPTURE_WIDTH" env-default:"1280"`
	CaptureHeight   int           `env:"CAPTURE_HEIGHT" env-default:"720"`
	CaptureInterval time.Duration `env:"CAPTURE_INTERVAL" env-default:"200ms"`
	MaxFrameWidth   int           `env:"MAX_FRAME_WIDTH" env-default:"640"`
	JPEGQuality     int           `env:"JPEG_QUALITY" env-default:"80"`

	ReconnectAttempts int           `env:"RECONNECT_ATTEMPTS" env-default:"5"`
	ReconnectDelay    time.Duration `env:"RECONNECT_DELAY" env-default:"1s"`
	ReconnectDelayMax time.Duration `env:"RECONNECT_DELAY_MAX" env-default:"5s"`

	HistoryLimit    int           `env:"HISTORY_LIMIT" env-default:"10"`
	NotificationTTL time.Duration `env:"NOTIFICATION_TTL" env-default:"5s"`

	DBPath            string `env:"DB_PATH" env-default:"data/smarttag.db"`
	LogDirectory      string `env:"LOG_DIR" env-default:"logs"`
	ExportDirectory   string `env:"EXPORT_DIR" env-default:"exports"`
	SnapshotDirectory string `env:"SNAPSHOT_DIR" env-default:"snapshots"`
	UploadDirectory   string `env:"UPLOAD_DIR" env-default:"uploads"`
	StaticDirectory   string `env:"STATIC_DIR" env-default:"static"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.Password != "" && cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// MustLoad is Load for entrypoints that cannot continue without a config.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid BACKEND_URL %q: %w", c.BackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid BACKEND_URL %q: scheme must be http or https", c.BackendURL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.CaptureInterval <= 0 {
		return fmt.Errorf("CAPTURE_INTERVAL must be positive")
	}
	if c.MaxFrameWidth <= 0 {
		return fmt.Errorf("MAX_FRAME_WIDTH must be positive")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY must be between 1 and 100")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive")
	}
	if c.ReconnectAttempts < 0 {
		return fmt.Errorf("RECONNECT_ATTEMPTS must not be negative")
	}
	if c.Password != "" && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required when PASSWORD is set")
	}
	if c.ReconnectDelayMax < c.ReconnectDelay {
		return fmt.Errorf("RECONNECT_DELAY_MAX must be >= RECONNECT_DELAY")
	}
	return nil
}

// StreamURL is the Socket.IO websocket endpoint derived from BackendURL.
func (c *Config) StreamURL() string {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/socket.io/"
	u.RawQuery = "EIO=4&transport=websocket"
	return u.String()
}
