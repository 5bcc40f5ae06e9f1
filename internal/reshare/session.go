package reshare

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"reshareshing/internal/preview"
	"reshareshing/internal/prompt"
	"reshareshing/internal/record"
	"reshareshing/internal/telegram"
	"reshareshing/internal/webhook"
)

const previewTitle = "PREVIEW DATA RESHARESHING"

type FieldStore interface {
	record.Resolver
	ResetAll() error
}

type ChatSender interface {
	Send(text, parseMode string) error
}

type RecordPoster interface {
	Send(ctx context.Context, values []string, sheetName string) (webhook.Result, error)
}

type RowAppender interface {
	Append(ctx context.Context, values []string) error
}

type FeedbackLog interface {
	Append(text string, at time.Time) (bool, error)
}

type Options struct {
	Variant   record.Variant
	Fields    FieldStore
	Prompter  prompt.Prompter
	Out       io.Writer
	Chat      ChatSender
	Webhook   RecordPoster
	SheetName string
	// Optional sinks
	Sheets   RowAppender
	Feedback FeedbackLog
	Now      func() time.Time
}

// Session runs one collect-preview-dispatch pass for an operator.
type Session struct {
	opts    Options
	builder *record.Builder
}

// Report summarises the outcome of every sink for one run.
type Report struct {
	Record    record.Record
	WebhookOK bool
	ChatErr   error
	HookErr   error
	SheetsErr error
}

func New(opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Session{
		opts:    opts,
		builder: record.NewBuilder(opts.Variant, opts.Fields, opts.Now),
	}
}

func (s *Session) Run(ctx context.Context) (Report, error) {
	var (
		rec record.Record
		err error
	)
	if s.opts.Variant == record.VariantDirect {
		preview.Banner(s.opts.Out, " DROP X JUNGLER - RESHARESHING TOOLS ")
		rec, err = s.builder.Build(false, nil)
		if err != nil {
			return Report{}, err
		}
		preview.Box(s.opts.Out, previewTitle, rec.Lines())
	} else {
		preview.Banner(s.opts.Out, " DROPXJUNGLER - RESHARESHING TOOLS ")
		rec, err = s.collectConfirmed()
		if err != nil {
			return Report{}, err
		}
	}

	report := s.dispatch(ctx, rec)

	if s.opts.Variant == record.VariantDirect {
		if err := s.collectFeedback(); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (s *Session) collectConfirmed() (record.Record, error) {
	for {
		force, err := s.askReset()
		if err != nil {
			return record.Record{}, err
		}
		rec, err := s.builder.Build(force, func() (string, error) {
			return s.opts.Prompter.Ask("\n›› Masukan Feedback Anda (tekan Enter untuk skip): ")
		})
		if err != nil {
			return record.Record{}, err
		}
		preview.Box(s.opts.Out, previewTitle, rec.Lines())

		confirm, err := s.opts.Prompter.Ask("Apakah anda yakin (y/n): ")
		if err != nil {
			return record.Record{}, err
		}
		if strings.ToLower(strings.TrimSpace(confirm)) == "y" {
			return rec, nil
		}
		fmt.Fprint(s.opts.Out, "\nMengulang input data...\n\n")
	}
}

// askReset returns true when main fields must be re-asked.
func (s *Session) askReset() (bool, error) {
	ans, err := s.opts.Prompter.Ask("Apakah anda pakai data baru? (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "y":
		if err := s.opts.Fields.ResetAll(); err != nil {
			log.Printf("failed to clear some cached fields: %v", err)
		}
		fmt.Fprint(s.opts.Out, "Data lama telah dihapus, silakan masukkan data baru.\n\n")
		return true, nil
	case "n":
		fmt.Fprintln(s.opts.Out, "Menggunakan data yang sudah ada (jika tersedia)")
	default:
		fmt.Fprintln(s.opts.Out, "Input tidak dikenali, menggunakan data yang sudah ada (jika tersedia)")
	}
	return false, nil
}

// dispatch calls every sink independently; the status line reflects the
// webhook only.
func (s *Session) dispatch(ctx context.Context, rec record.Record) Report {
	report := Report{Record: rec}
	out := s.opts.Out

	mode := tgbotapi.ModeHTML
	if s.opts.Variant == record.VariantDirect {
		mode = tgbotapi.ModeMarkdown
	}
	if err := s.opts.Chat.Send(telegram.Summary(rec, mode), mode); err != nil {
		report.ChatErr = err
		log.Printf("failed to send chat summary: %v", err)
		fmt.Fprintf(out, "Error saat mengirim ke Telegram: %v\n", err)
	}

	res, err := s.opts.Webhook.Send(ctx, rec.Values, s.opts.SheetName)
	if res.StatusCode != 0 && s.opts.Variant == record.VariantConfirm {
		fmt.Fprintln(out, "Response dari webhook:", res.Body)
	}
	if err != nil {
		report.HookErr = err
		log.Printf("failed to send record to webhook: %v", err)
		if res.StatusCode == 0 {
			fmt.Fprintln(out, "Error saat mengirim ke Google Sheets:", err)
		}
	}
	report.WebhookOK = err == nil && res.OK()

	if s.opts.Sheets != nil {
		if err := s.opts.Sheets.Append(ctx, rec.Values); err != nil {
			report.SheetsErr = err
			log.Printf("failed to append row to spreadsheet: %v", err)
		}
	}

	fmt.Fprintf(out, "\n✅ Status pengiriman: %s!\n", webhook.StatusLabel(report.WebhookOK))
	return report
}

func (s *Session) collectFeedback() error {
	out := s.opts.Out
	fmt.Fprintln(out, "\n════════════[ MASUKAN UNTUK PENGEMBANGAN ]═════════════")
	fmt.Fprintln(out, "Bantu kami meningkatkan kualitas tools ini dengan:")

	text, err := s.opts.Prompter.Ask("\n›› Masukan Anda (tekan Enter untuk skip): ")
	if err != nil {
		return err
	}
	if s.opts.Feedback == nil {
		return nil
	}
	written, err := s.opts.Feedback.Append(text, s.opts.Now())
	if err != nil {
		log.Printf("failed to save feedback: %v", err)
		return nil
	}
	if written {
		fmt.Fprintln(out, "🗳️ Terima kasih atas masukannya!")
	}
	return nil
}
