package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/matthieukhl/salesclean/internal/config"
	"github.com/matthieukhl/salesclean/internal/metrics"
	"github.com/matthieukhl/salesclean/internal/samples"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	if _, err := samples.Write(dir); err != nil {
		t.Fatalf("samples: %v", err)
	}
	cfg := &config.Config{
		Server: config.ServerConfig{MaxUploadMB: 5, PreviewRows: 2, UploadTempDir: t.TempDir()},
		Catalog: config.CatalogConfig{
			Path: filepath.Join(dir, samples.CatalogFile),
		},
	}
	return NewServer(cfg, metrics.NewRegistry()), dir
}

func upload(t *testing.T, srv *Server, path, marketplace, file string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if marketplace != "" {
		w.WriteField("marketplace", marketplace)
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		part, err := w.CreateFormFile("file", filepath.Base(file))
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		part.Write(data)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("got=%d %s", rec.Code, rec.Body.String())
	}
}

func TestMarketplaces(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/marketplaces", nil))

	var resp struct {
		Marketplaces []struct {
			Marketplace string `json:"marketplace"`
			Implemented bool   `json:"implemented"`
		} `json:"marketplaces"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Marketplaces) != 5 {
		t.Fatalf("marketplaces: got=%d want=5", len(resp.Marketplaces))
	}
	if !resp.Marketplaces[0].Implemented || resp.Marketplaces[3].Implemented {
		t.Fatalf("implemented flags: %+v", resp.Marketplaces)
	}
}

func TestCleanReturnsWorkbook(t *testing.T) {
	srv, dir := newTestServer(t)
	rec := upload(t, srv, "/api/clean", "amazon", filepath.Join(dir, samples.AmazonFile))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "Cleaned_Amazon_Data.xlsx") {
		t.Fatalf("content disposition: %q", got)
	}
	if rec.Header().Get("X-Run-Id") == "" {
		t.Fatalf("missing run id header")
	}

	f, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("rows: got=%d want=5 (header + 4)", len(rows))
	}
}

func TestPreview(t *testing.T) {
	srv, dir := newTestServer(t)
	rec := upload(t, srv, "/api/preview", "Noon", filepath.Join(dir, samples.NoonFile))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Columns []string            `json:"columns"`
		Rows    []map[string]string `json:"rows"`
		Stats   struct {
			RowsOut int `json:"rows_out"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Rows) != 2 || resp.Stats.RowsOut != 3 {
		t.Fatalf("got rows=%d rows_out=%d want 2/3", len(resp.Rows), resp.Stats.RowsOut)
	}
	if got := resp.Rows[0]["Brand Name"]; got != "Glow Lab" {
		t.Fatalf("backfilled brand: got=%q", got)
	}
	if resp.Columns[18] != "Units" {
		t.Fatalf("noon qty label: got=%q", resp.Columns[18])
	}
}

func TestCleanErrors(t *testing.T) {
	srv, dir := newTestServer(t)
	broken := filepath.Join(dir, "talabat.xlsx")
	if err := os.WriteFile(broken, []byte("not a workbook"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name        string
		marketplace string
		file        string
		want        int
	}{
		{"unknown marketplace", "ebay", filepath.Join(dir, samples.NoonFile), http.StatusBadRequest},
		{"no file", "Noon", "", http.StatusBadRequest},
		{"schema mismatch", "Noon", filepath.Join(dir, samples.RevibeFile), http.StatusUnprocessableEntity},
		{"not implemented", "Talabat", filepath.Join(dir, samples.NoonFile), http.StatusNotImplemented},
		{"not implemented unreadable", "Careem", broken, http.StatusNotImplemented},
	}
	for _, tt := range tests {
		rec := upload(t, srv, "/api/clean", tt.marketplace, tt.file)
		if rec.Code != tt.want {
			t.Fatalf("%s: got=%d want=%d body=%s", tt.name, rec.Code, tt.want, rec.Body.String())
		}
	}

	rec := upload(t, srv, "/api/clean", "Talabat", filepath.Join(dir, samples.NoonFile))
	if !strings.Contains(rec.Body.String(), "Talabat cleaning not implemented yet.") {
		t.Fatalf("not implemented message: %s", rec.Body.String())
	}
}

func TestUploadTempFilesRemoved(t *testing.T) {
	srv, dir := newTestServer(t)
	upload(t, srv, "/api/clean", "Revibe", filepath.Join(dir, samples.RevibeFile))

	left, err := os.ReadDir(srv.cfg.Server.UploadTempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("temp files left behind: %d", len(left))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, dir := newTestServer(t)
	upload(t, srv, "/api/clean", "Revibe", filepath.Join(dir, samples.RevibeFile))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `salesclean_runs_total{marketplace="Revibe",state="cleaned"} 1`) {
		t.Fatalf("metrics missing run counter:\n%s", body)
	}
}

func TestUploadOverLimitRejected(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.cfg.Server.MaxUploadMB = 1

	big := filepath.Join(t.TempDir(), "talabat.csv")
	data := "order,sku\n" + strings.Repeat("1234567890,ABCDEFGHIJ\n", 3<<20/22)
	if err := os.WriteFile(big, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, path := range []string{"/api/preview", "/api/clean"} {
		rec := upload(t, srv, path, "Talabat", big)
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("%s: got=%d want=%d body=%s", path, rec.Code, http.StatusRequestEntityTooLarge, rec.Body.String())
		}
	}

	left, err := os.ReadDir(srv.cfg.Server.UploadTempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("oversized upload was stored: %d files", len(left))
	}
}
