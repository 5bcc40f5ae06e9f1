package reshare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"reshareshing/internal/fieldstore"
	"reshareshing/internal/prompt"
	"reshareshing/internal/record"
	"reshareshing/internal/webhook"
)

type fakeChat struct {
	texts []string
	modes []string
	err   error
}

func (f *fakeChat) Send(text, mode string) error {
	f.texts = append(f.texts, text)
	f.modes = append(f.modes, mode)
	return f.err
}

type fakeHook struct {
	status int
	err    error
	calls  [][]string
	sheet  string
}

func (f *fakeHook) Send(_ context.Context, values []string, sheetName string) (webhook.Result, error) {
	f.calls = append(f.calls, append([]string(nil), values...))
	f.sheet = sheetName
	if f.err != nil {
		return webhook.Result{}, f.err
	}
	res := webhook.Result{StatusCode: f.status, Body: `{"ok":true}`}
	if f.status != http.StatusOK {
		return res, fmt.Errorf("%w: status %d", webhook.ErrSendFailure, f.status)
	}
	return res, nil
}

type fakeFeedback struct{ entries []string }

func (f *fakeFeedback) Append(text string, _ time.Time) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	f.entries = append(f.entries, text)
	return true, nil
}

type fakeSheets struct{ rows [][]string }

func (f *fakeSheets) Append(_ context.Context, values []string) error {
	f.rows = append(f.rows, values)
	return nil
}

func linkAnswers(prefix string) []string {
	out := make([]string, len(record.LinkFields))
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return out
}

func newStore(t *testing.T, dir string, p prompt.Prompter) *fieldstore.Store {
	t.Helper()
	b, err := fieldstore.NewDirBackend(dir)
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	return fieldstore.New(b, p)
}

func fixedNow() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

func script(lines ...[]string) io.Reader {
	var all []string
	for _, l := range lines {
		all = append(all, l...)
	}
	return strings.NewReader(strings.Join(all, "\n") + "\n")
}

func TestRun_ConfirmVariant_FreshData(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	in := script(
		[]string{"y", "Alpha", "2024-06-30", "TGE Q3"},
		linkAnswers("https://l"),
		[]string{" great tool ", "y"},
	)
	var out bytes.Buffer
	p := prompt.NewConsole(in, &out)
	chat, hook, sh := &fakeChat{}, &fakeHook{status: http.StatusOK}, &fakeSheets{}

	rep, err := New(Options{
		Variant:   record.VariantConfirm,
		Fields:    newStore(t, dir, p),
		Prompter:  p,
		Out:       &out,
		Chat:      chat,
		Webhook:   hook,
		SheetName: "reshareshing",
		Sheets:    sh,
		Now:       fixedNow,
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !rep.WebhookOK || rep.ChatErr != nil || rep.HookErr != nil {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if len(hook.calls) != 1 || len(hook.calls[0]) != 18 || hook.sheet != "reshareshing" {
		t.Fatalf("unexpected webhook calls: %+v sheet=%q", hook.calls, hook.sheet)
	}
	vals := hook.calls[0]
	if vals[0] != "2024-06-01 10:00:00" || vals[1] != "Alpha" || vals[2] != "https://l1" || vals[14] != "https://l13" ||
		vals[15] != "2024-06-30" || vals[16] != "TGE Q3" || vals[17] != "great tool" {
		t.Fatalf("unexpected record: %q", vals)
	}
	if len(chat.modes) != 1 || chat.modes[0] != tgbotapi.ModeHTML || !strings.Contains(chat.texts[0], "<b>Feedback</b>: great tool") {
		t.Fatalf("unexpected chat: %+v", chat)
	}
	if len(sh.rows) != 1 || len(sh.rows[0]) != 18 {
		t.Fatalf("sheets row not appended: %+v", sh.rows)
	}
	o := out.String()
	for _, want := range []string{"DROPXJUNGLER - RESHARESHING TOOLS", "Data lama telah dihapus", "PREVIEW DATA RESHARESHING", "Status pengiriman: Berhasil!"} {
		if !strings.Contains(o, want) {
			t.Fatalf("output missing %q:\n%s", want, o)
		}
	}
}

func TestRun_ConfirmVariant_ReusesCacheAndLoopsUntilConfirmed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	seed := prompt.NewConsole(script([]string{"Alpha", "2024-06-30", "TGE"}, linkAnswers("v")), io.Discard)
	seedStore := newStore(t, dir, seed)
	if _, err := record.NewBuilder(record.VariantDirect, seedStore, fixedNow).Build(false, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// round 1: keep data, reject; round 2: unknown answer, forced off, confirm
	in := script([]string{"n", "", "n", "maybe", "second", "y"})
	var out bytes.Buffer
	p := prompt.NewConsole(in, &out)
	hook := &fakeHook{status: http.StatusInternalServerError}

	rep, err := New(Options{
		Variant:  record.VariantConfirm,
		Fields:   newStore(t, dir, p),
		Prompter: p,
		Out:      &out,
		Chat:     &fakeChat{},
		Webhook:  hook,
		Now:      fixedNow,
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.WebhookOK || !errors.Is(rep.HookErr, webhook.ErrSendFailure) {
		t.Fatalf("want failed webhook, got %+v", rep)
	}
	vals := hook.calls[0]
	if vals[1] != "Alpha" || vals[2] != "v1" || vals[17] != "second" {
		t.Fatalf("cached values not reused: %q", vals)
	}
	o := out.String()
	for _, want := range []string{"Mengulang input data...", "Input tidak dikenali", "Status pengiriman: Gagal!", "Response dari webhook:"} {
		if !strings.Contains(o, want) {
			t.Fatalf("output missing %q:\n%s", want, o)
		}
	}
	if strings.Contains(o, "Masukkan link") {
		t.Fatalf("cached link fields must not be prompted:\n%s", o)
	}
}

func TestRun_ConfirmVariant_ForcedEmptyKeepsProjectName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	b, err := fieldstore.NewDirBackend(dir)
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	if err := b.Save(record.KeyProjectName, "Alpha"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	in := script([]string{"y", "", "2024-07-01", "Listed"}, linkAnswers("x"), []string{"", "y"})
	p := prompt.NewConsole(in, io.Discard)
	fields := &resetlessStore{Store: fieldstore.New(b, p)}
	hook := &fakeHook{status: http.StatusOK}

	if _, err := New(Options{
		Variant:  record.VariantConfirm,
		Fields:   fields,
		Prompter: p,
		Chat:     &fakeChat{},
		Webhook:  hook,
		Now:      fixedNow,
	}).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !fields.resetCalled {
		t.Fatalf("reset not requested")
	}
	if got := hook.calls[0][1]; got != "Alpha" {
		t.Fatalf("want cached project name retained, got %q", got)
	}
	if got := hook.calls[0][15]; got != "2024-07-01" {
		t.Fatalf("want new snapshot, got %q", got)
	}
}

// resetlessStore records the reset request but keeps the cache, so the
// forced re-prompt path sees an existing value.
type resetlessStore struct {
	*fieldstore.Store
	resetCalled bool
}

func (r *resetlessStore) ResetAll() error {
	r.resetCalled = true
	return nil
}

func TestRun_DirectVariant_ChatFailureStillSendsWebhook(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	in := script([]string{"Alpha", "2024-06-30", "TGE"}, linkAnswers("l"), []string{"tolong tambah fitur"})
	var out bytes.Buffer
	p := prompt.NewConsole(in, &out)
	chat := &fakeChat{err: errors.New("network down")}
	hook := &fakeHook{status: http.StatusOK}
	fb := &fakeFeedback{}

	rep, err := New(Options{
		Variant:   record.VariantDirect,
		Fields:    newStore(t, dir, p),
		Prompter:  p,
		Out:       &out,
		Chat:      chat,
		Webhook:   hook,
		SheetName: "reshareshing",
		Feedback:  fb,
		Now:       fixedNow,
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.ChatErr == nil || !rep.WebhookOK {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if len(hook.calls) != 1 || len(hook.calls[0]) != 17 {
		t.Fatalf("webhook must receive the 17-value record: %+v", hook.calls)
	}
	if chat.modes[0] != tgbotapi.ModeMarkdown || !strings.Contains(chat.texts[0], "• **Nama Proyek**: Alpha") {
		t.Fatalf("unexpected chat message: %+v", chat)
	}
	if len(fb.entries) != 1 || fb.entries[0] != "tolong tambah fitur" {
		t.Fatalf("feedback not logged: %+v", fb.entries)
	}
	o := out.String()
	for _, want := range []string{"DROP X JUNGLER - RESHARESHING TOOLS", "Status pengiriman: Berhasil!", "MASUKAN UNTUK PENGEMBANGAN", "Terima kasih atas masukannya!"} {
		if !strings.Contains(o, want) {
			t.Fatalf("output missing %q:\n%s", want, o)
		}
	}
	if strings.Contains(o, "Apakah anda yakin") {
		t.Fatalf("direct variant must not ask for confirmation")
	}
}

func TestRun_DirectVariant_TransportErrorAndSkippedFeedback(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	in := script([]string{"Alpha", "2024-06-30", "TGE"}, linkAnswers("l"), []string{""})
	var out bytes.Buffer
	p := prompt.NewConsole(in, &out)
	fb := &fakeFeedback{}

	rep, err := New(Options{
		Variant:  record.VariantDirect,
		Fields:   newStore(t, dir, p),
		Prompter: p,
		Out:      &out,
		Chat:     &fakeChat{},
		Webhook:  &fakeHook{err: fmt.Errorf("%w: connection refused", webhook.ErrSendFailure)},
		Feedback: fb,
		Now:      fixedNow,
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.WebhookOK {
		t.Fatalf("transport error must be reported as failure")
	}
	if !strings.Contains(out.String(), "Status pengiriman: Gagal!") {
		t.Fatalf("missing failure status:\n%s", out.String())
	}
	if len(fb.entries) != 0 || strings.Contains(out.String(), "Terima kasih") {
		t.Fatalf("skipped feedback must not be logged")
	}
}

func TestRun_InputClosed(t *testing.T) {
	p := prompt.NewConsole(strings.NewReader(""), io.Discard)
	hook := &fakeHook{status: http.StatusOK}
	_, err := New(Options{
		Variant:  record.VariantConfirm,
		Fields:   newStore(t, filepath.Join(t.TempDir(), "data"), p),
		Prompter: p,
		Chat:     &fakeChat{},
		Webhook:  hook,
	}).Run(context.Background())
	if !errors.Is(err, io.EOF) {
		t.Fatalf("want EOF, got %v", err)
	}
	if len(hook.calls) != 0 {
		t.Fatalf("nothing must be sent when input ends early")
	}
}
