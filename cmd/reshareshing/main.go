package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"reshareshing/internal/config"
	"reshareshing/internal/feedback"
	"reshareshing/internal/fieldstore"
	"reshareshing/internal/prompt"
	"reshareshing/internal/record"
	"reshareshing/internal/reshare"
	"reshareshing/internal/sheets"
	"reshareshing/internal/telegram"
	"reshareshing/internal/webhook"
)

var rootCmd = &cobra.Command{
	Use:           "reshareshing",
	Short:         "Collect project data and forward it to Telegram and the reshareshing sheet",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}
	log.SetPrefix(fmt.Sprintf("[run %s] ", uuid.NewString()[:8]))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	// Missing secrets abort before any prompt is shown.
	secrets, err := config.LoadSecrets(cfg)
	if err != nil {
		return err
	}

	console := prompt.NewConsole(os.Stdin, os.Stdout)

	backend, closeBackend, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	opts := reshare.Options{
		Variant:   record.Variant(cfg.Variant),
		Fields:    fieldstore.New(backend, console),
		Prompter:  console,
		Out:       os.Stdout,
		Chat:      telegram.NewSink(telegram.NewBotAPI(secrets.BotToken, cfg.TelegramEndpoint, httpClient), secrets.ChatID, secrets.ThreadID),
		Webhook:   webhook.New(secrets.WebhookURL, httpClient),
		SheetName: cfg.SheetName,
	}

	if cfg.SheetsEnabled() {
		app, err := sheets.NewFromCredentialsFile(ctx, cfg.SheetsCredentialsFile, cfg.SheetsSpreadsheetID, cfg.SheetsRange)
		if err != nil {
			log.Printf("sheets sink disabled: %v", err)
		} else {
			opts.Sheets = app
		}
	}

	if opts.Variant == record.VariantDirect {
		fb, err := feedback.NewFileLog(cfg.FeedbackFile)
		if err != nil {
			log.Printf("feedback log disabled: %v", err)
		} else {
			opts.Feedback = fb
		}
	}

	_, err = reshare.New(opts).Run(ctx)
	return err
}

func newBackend(cfg *config.Config) (fieldstore.Backend, func(), error) {
	switch cfg.FieldBackend {
	case config.BackendSQLite:
		db, err := fieldstore.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open field database: %w", err)
		}
		return db, func() { _ = db.Close() }, nil
	default:
		dir, err := fieldstore.NewDirBackend(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init field cache: %w", err)
		}
		return dir, func() {}, nil
	}
}
