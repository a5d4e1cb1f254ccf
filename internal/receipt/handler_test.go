package receipt

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateReceiptSuccess(t *testing.T) {
	svc, cfg := newTestService(t)

	rec := doRequest(svc.CreateReceipt, map[string]any{
		"name":              "株式会社 テスト商事",
		"amountTaxExcluded": 10000,
		"description":       "商品代として",
		"date":              "2026年 02月 14日",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TaxAmount != 1000 || resp.TotalAmount != 11000 {
		t.Fatalf("amounts = %d/%d, want 1000/11000", resp.TaxAmount, resp.TotalAmount)
	}
	if !resp.DegradedFont {
		t.Fatal("expected degradedFont with no TTF installed")
	}
	if !strings.HasPrefix(filepath.Base(resp.Path), "receipt-") {
		t.Fatalf("unexpected output name %q", resp.Path)
	}
	if _, err := os.Stat(resp.Path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if resp.Path != filepath.Join(cfg.OutputDir, filepath.Base(resp.Path)) {
		t.Fatalf("output written outside configured dir: %q", resp.Path)
	}
}

func TestCreateReceiptIssueDate(t *testing.T) {
	svc, _ := newTestService(t)

	rec := doRequest(svc.CreateReceipt, map[string]any{
		"name":              "テスト",
		"amountTaxExcluded": 500,
		"issueDate":         "2026-02-14",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestCreateReceiptValidationFailure(t *testing.T) {
	svc, _ := newTestService(t)

	rec := doRequest(svc.CreateReceipt, map[string]any{
		"name":              "",
		"amountTaxExcluded": -5,
		"date":              "2026年 02月 14日",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "VALIDATION_FAILED") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCreateReceiptTemplateMissing(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, 1)
	cfg.TemplatePath = filepath.Join(dir, "absent.pdf")
	cfg.OutputDir = filepath.Join(dir, "out")
	svc := NewService(cfg, NewGenerator(cfg, discardLogger()), discardLogger())

	rec := doRequest(svc.CreateReceipt, map[string]any{
		"name":              "テスト",
		"amountTaxExcluded": 100,
		"date":              "2026年 02月 14日",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "TEMPLATE_NOT_FOUND") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCreateReceiptOutputLocked(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not bind for root")
	}
	dir := t.TempDir()
	cfg := testConfig(dir, 1)
	cfg.OutputDir = filepath.Join(dir, "out")
	if err := os.Mkdir(cfg.OutputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(cfg.OutputDir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(cfg.OutputDir, 0o755) })
	svc := NewService(cfg, NewGenerator(cfg, discardLogger()), discardLogger())

	rec := doRequest(svc.CreateReceipt, map[string]any{
		"name":              "テスト",
		"amountTaxExcluded": 100,
		"date":              "2026年 02月 14日",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "OUTPUT_LOCKED") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestPreviewReceipt(t *testing.T) {
	svc, _ := newTestService(t)

	rec := doRequest(svc.PreviewReceipt, map[string]any{
		"name":              "株式会社 テスト商事",
		"amountTaxExcluded": 10000,
		"date":              "2026年 02月 14日",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("preview body is not a PDF")
	}
}

func TestCreateReceiptBadJSON(t *testing.T) {
	svc, _ := newTestService(t)

	req := httptest.NewRequest(http.MethodPost, "/receipts", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	svc.CreateReceipt(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func newTestService(t *testing.T) (Service, Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := testConfig(dir, 1)
	cfg.OutputDir = filepath.Join(dir, "out")
	svc := NewService(cfg, NewGenerator(cfg, discardLogger()), discardLogger())
	return svc, cfg
}

func doRequest(h http.HandlerFunc, body map[string]any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/receipts", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}
