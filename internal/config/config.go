package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type FieldBackend string

const (
	BackendFiles  FieldBackend = "files"
	BackendSQLite FieldBackend = "sqlite"
)

// ErrConfigMissing is returned when a required secret file does not exist.
var ErrConfigMissing = errors.New("config file missing")

type Config struct {
	// 1 sends without confirmation and logs feedback locally,
	// 2 asks for a reset and a confirmation and folds feedback into the record.
	Variant int `env:"RESHARE_VARIANT" envDefault:"2"`

	// Secret files
	TokenFile    string `env:"RESHARE_TOKEN_FILE" envDefault:"token.txt"`
	ChatIDFile   string `env:"RESHARE_CHAT_ID_FILE" envDefault:"idchat.txt"`
	ThreadIDFile string `env:"RESHARE_THREAD_ID_FILE" envDefault:"threads.txt"`
	WebhookFile  string `env:"RESHARE_WEBHOOK_FILE" envDefault:"webhook.txt"`

	// Field cache
	DataDir      string       `env:"RESHARE_DATA_DIR" envDefault:"data_reshareshing"`
	FieldBackend FieldBackend `env:"RESHARE_FIELD_BACKEND" envDefault:"files"`
	SQLitePath   string       `env:"RESHARE_SQLITE_PATH" envDefault:"data_reshareshing.db"`

	FeedbackFile string `env:"RESHARE_FEEDBACK_FILE" envDefault:"feedback.txt"`

	// Dispatch
	SheetName        string        `env:"RESHARE_SHEET_NAME" envDefault:"reshareshing"`
	HTTPTimeout      time.Duration `env:"RESHARE_HTTP_TIMEOUT" envDefault:"30s"`
	TelegramEndpoint string        `env:"RESHARE_TELEGRAM_ENDPOINT" envDefault:"https://api.telegram.org/bot%s/%s"`

	// Google Sheets (optional)
	SheetsSpreadsheetID   string `env:"RESHARE_SHEETS_SPREADSHEET_ID"`
	SheetsCredentialsFile string `env:"RESHARE_SHEETS_CREDENTIALS_FILE"`
	SheetsRange           string `env:"RESHARE_SHEETS_RANGE" envDefault:"reshareshing!A1"`
}

// Secrets holds the four values provisioned out-of-band before launch.
type Secrets struct {
	BotToken   string
	ChatID     string
	ThreadID   string
	WebhookURL string
}

func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.Variant != 1 && cfg.Variant != 2 {
		return nil, fmt.Errorf("unsupported variant: %d", cfg.Variant)
	}
	switch cfg.FieldBackend {
	case BackendFiles, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown field backend: %s", cfg.FieldBackend)
	}
	return cfg, nil
}

// SheetsEnabled reports whether the direct Google Sheets sink is configured.
func (c *Config) SheetsEnabled() bool {
	return c.SheetsSpreadsheetID != "" && c.SheetsCredentialsFile != ""
}

// ReadSecret returns the trimmed content of path.
func ReadSecret(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &MissingError{Path: path}
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.TrimSpace(string(b)), nil
}

func LoadSecrets(cfg *Config) (Secrets, error) {
	var s Secrets
	for _, f := range []struct {
		path string
		dst  *string
	}{
		{cfg.TokenFile, &s.BotToken},
		{cfg.ChatIDFile, &s.ChatID},
		{cfg.ThreadIDFile, &s.ThreadID},
		{cfg.WebhookFile, &s.WebhookURL},
	} {
		v, err := ReadSecret(f.path)
		if err != nil {
			return Secrets{}, err
		}
		*f.dst = v
	}
	return s, nil
}

type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("ERROR: File %s tidak ditemukan!", e.Path)
}

func (e *MissingError) Is(target error) bool {
	return target == ErrConfigMissing
}
