package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

// ErrSendFailure marks a webhook call that did not answer with HTTP 200.
var ErrSendFailure = errors.New("webhook send failed")

// Payload is the body accepted by the spreadsheet ingestion script.
type Payload struct {
	Record    []string `json:"record"`
	SheetName string   `json:"sheetName"`
}

// Result describes a completed HTTP exchange. StatusCode is 0 when no
// response was received.
type Result struct {
	StatusCode int
	Body       string
}

func (r Result) OK() bool { return r.StatusCode == http.StatusOK }

type Client struct {
	url  string
	http *http.Client
}

func New(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{url: url, http: httpClient}
}

// Send posts values tagged with sheetName. Any status other than 200 and any
// transport error is returned as ErrSendFailure.
func (c *Client) Send(ctx context.Context, values []string, sheetName string) (Result, error) {
	if values == nil {
		values = []string{}
	}
	body, err := json.Marshal(Payload{Record: values, SheetName: sheetName})
	if err != nil {
		return Result{}, fmt.Errorf("%w: encode payload: %w", ErrSendFailure, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("%w: build request: %w", ErrSendFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrSendFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("webhook: failed to read response body: %v", err)
	}
	res := Result{StatusCode: resp.StatusCode, Body: string(raw)}
	log.Printf("webhook response [status=%d]: %s", res.StatusCode, res.Body)
	if !res.OK() {
		return res, fmt.Errorf("%w: status %d", ErrSendFailure, res.StatusCode)
	}
	return res, nil
}

// StatusLabel is the operator-facing outcome of a webhook call.
func StatusLabel(ok bool) string {
	if ok {
		return "Berhasil"
	}
	return "Gagal"
}
