package record

import (
	"fmt"
	"strings"
	"time"
)

type Variant int

const (
	// VariantDirect sends without confirmation and keeps feedback in a local log.
	VariantDirect Variant = 1
	// VariantConfirm asks for confirmation and carries feedback in the record.
	VariantConfirm Variant = 2
)

const TimestampLayout = "2006-01-02 15:04:05"

const (
	KeyProjectName = "nama_proyek"
	KeySnapshot    = "snapshot"
	KeyListingInfo = "listing_info"
)

// LinkFields are the cached link-type fields in record order.
var LinkFields = []string{
	"situs", "roadmap", "whitepiper", "faucet", "funding",
	"block_explorer", "informasi_teamnya", "twitter",
	"telegram", "discord", "github", "dokumentasi", "backer",
}

var mainPrompts = map[string]string{
	KeyProjectName: "Masukkan Nama Proyek          : ",
	KeySnapshot:    "Masukkan Snapshot (YYYY-MM-DD): ",
	KeyListingInfo: "Masukkan Informasi Listing    : ",
}

var directLabels = []string{
	"Timestamp", "Nama Proyek", "Situs", "Roadmap", "Whitepaper",
	"Faucet", "Funding", "Block Explorer", "Informasi Team", "Twitter",
	"Telegram", "Discord", "Github", "Dokumentasi", "Backer",
	"Tanggal Snapshot", "Informasi Listing",
}

// Labels returns the positional labels of a record for v.
func Labels(v Variant) []string {
	if v == VariantDirect {
		return append([]string(nil), directLabels...)
	}
	labels := []string{"Timestamp", "Nama Proyek"}
	for _, f := range LinkFields {
		labels = append(labels, capitalize(strings.ReplaceAll(f, "_", " ")))
	}
	return append(labels, "Tanggal Snapshot", "Informasi Listing", "Feedback")
}

// Arity is the fixed number of values in a record for v.
func Arity(v Variant) int {
	if v == VariantDirect {
		return len(LinkFields) + 4
	}
	return len(LinkFields) + 5
}

// LinkPrompt is the question asked for a link field that is not cached.
func LinkPrompt(key string) string {
	return fmt.Sprintf("Masukkan link %s: ", strings.ReplaceAll(key, "_", " "))
}

// Record is an ordered list of values with matching labels.
// Consumers map values by position.
type Record struct {
	Labels []string
	Values []string
}

func (r Record) Len() int { return len(r.Values) }

// Lines renders "label: value" for every position.
func (r Record) Lines() []string {
	out := make([]string, 0, len(r.Values))
	for i, v := range r.Values {
		out = append(out, fmt.Sprintf("%s: %s", r.Labels[i], v))
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// Resolver looks up field values, prompting the operator when needed.
type Resolver interface {
	GetOrPrompt(key, promptText string) (string, error)
	GetOrPromptForced(key, promptText string, force bool) (string, error)
}

// FeedbackFunc collects free-text feedback; it is only used by VariantConfirm.
type FeedbackFunc func() (string, error)

type Builder struct {
	variant Variant
	fields  Resolver
	now     func() time.Time
}

func NewBuilder(v Variant, fields Resolver, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{variant: v, fields: fields, now: now}
}

// Build resolves every field in record order. Main fields are re-asked when
// force is set.
func (b *Builder) Build(force bool, feedback FeedbackFunc) (Record, error) {
	ts := b.now().Format(TimestampLayout)

	primary := make(map[string]string, len(mainPrompts))
	for _, key := range []string{KeyProjectName, KeySnapshot, KeyListingInfo} {
		v, err := b.fields.GetOrPromptForced(key, mainPrompts[key], force)
		if err != nil {
			return Record{}, fmt.Errorf("resolve %s: %w", key, err)
		}
		primary[key] = v
	}

	links := make([]string, 0, len(LinkFields))
	for _, key := range LinkFields {
		v, err := b.fields.GetOrPrompt(key, LinkPrompt(key))
		if err != nil {
			return Record{}, fmt.Errorf("resolve %s: %w", key, err)
		}
		links = append(links, v)
	}

	values := make([]string, 0, Arity(b.variant))
	values = append(values, ts, primary[KeyProjectName])
	values = append(values, links...)
	values = append(values, primary[KeySnapshot], primary[KeyListingInfo])

	if b.variant == VariantConfirm {
		fb := ""
		if feedback != nil {
			v, err := feedback()
			if err != nil {
				return Record{}, fmt.Errorf("read feedback: %w", err)
			}
			fb = strings.TrimSpace(v)
		}
		values = append(values, fb)
	}

	return Record{Labels: Labels(b.variant), Values: values}, nil
}
