package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Appender writes a record as one new row of a spreadsheet range.
type Appender struct {
	svc           *gsheets.Service
	spreadsheetID string
	rangeA1       string
}

func New(svc *gsheets.Service, spreadsheetID, rangeA1 string) *Appender {
	return &Appender{svc: svc, spreadsheetID: spreadsheetID, rangeA1: rangeA1}
}

// NewFromCredentialsFile authenticates with a service-account JSON key.
func NewFromCredentialsFile(ctx context.Context, credentialsPath, spreadsheetID, rangeA1 string) (*Appender, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}
	svc, err := gsheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return New(svc, spreadsheetID, rangeA1), nil
}

// Append adds values as a single row below the existing data.
// Values are stored as-is, without formula or date parsing.
func (a *Appender) Append(ctx context.Context, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	vr := &gsheets.ValueRange{Values: [][]interface{}{row}}
	_, err := a.svc.Spreadsheets.Values.
		Append(a.spreadsheetID, a.rangeA1, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", a.rangeA1, err)
	}
	return nil
}
