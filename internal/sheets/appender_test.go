package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

func TestAppend_PostsSingleRow(t *testing.T) {
	var (
		path  string
		query string
		body  struct {
			Values [][]string `json:"values"`
		}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"SHEET"}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := gsheets.NewService(ctx, option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("service: %v", err)
	}

	if err := New(svc, "SHEET", "reshareshing!A1").Append(ctx, []string{"ts", "Alpha", ""}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if !strings.HasPrefix(path, "/v4/spreadsheets/SHEET/values/") || !strings.HasSuffix(path, ":append") {
		t.Fatalf("unexpected path %q", path)
	}
	if !strings.Contains(query, "valueInputOption=RAW") {
		t.Fatalf("unexpected query %q", query)
	}
	if len(body.Values) != 1 || len(body.Values[0]) != 3 || body.Values[0][1] != "Alpha" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAppend_PropagatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := gsheets.NewService(ctx, option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	if err := New(svc, "SHEET", "A1").Append(ctx, []string{"x"}); err == nil {
		t.Fatalf("expected error on 403")
	}
}
