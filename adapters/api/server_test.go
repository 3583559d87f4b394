package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/patilv/papaja/adapters/typeset"
	"github.com/patilv/papaja/app"
	"github.com/patilv/papaja/domain/apa"
	"github.com/patilv/papaja/internal/errors"
)

func newTestServer() *Server {
	formatter := app.NewResultFormatter(
		typeset.NewNumbers(),
		typeset.NewPValues(),
		typeset.NewNames(),
		typeset.NewIntervals(),
		typeset.NewLatex(),
		apa.NewNameTable(),
	)
	return NewServer(app.NewRenderService(formatter, nil), nil)
}

func postJSON(t *testing.T, server *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleRender_OK(t *testing.T) {
	server := newTestServer()

	item := app.RenderItem{
		Result: apa.TestResult{
			Statistic:  apa.Statistic{Name: "t", Value: 1.324},
			Parameters: []apa.Parameter{{Name: "df", Value: 17.998}},
			PValue:     0.199,
		},
	}

	rec := postJSON(t, server, "/api/render", item)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out apa.FormatResult
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := `$t(18.00) = 1.32$, $p = .199$`
	if out.Statistic != want {
		t.Errorf("statistic clause = %q, want %q", out.Statistic, want)
	}
}

func TestHandleRender_MissingSampleSize(t *testing.T) {
	server := newTestServer()

	item := app.RenderItem{
		Result: apa.TestResult{
			Statistic:  apa.Statistic{Name: "X-squared", Value: 9.67},
			Parameters: []apa.Parameter{{Name: "df", Value: 1}},
			PValue:     0.002,
		},
	}

	rec := postJSON(t, server, "/api/render", item)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Code != errors.CodeMissingSampleSize {
		t.Errorf("expected code %s, got %s", errors.CodeMissingSampleSize, resp.Code)
	}
}

func TestHandleRender_MalformedBody(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleRenderBatch_MixedOutcomes(t *testing.T) {
	server := newTestServer()

	items := []app.RenderItem{
		{
			Source: "good",
			Result: apa.TestResult{
				Statistic: apa.Statistic{Name: "W", Value: 123},
				PValue:    0.05,
			},
		},
		{
			Source: "bad",
			Result: apa.TestResult{
				Statistic:  apa.Statistic{Name: "X-squared", Value: 9.67},
				Parameters: []apa.Parameter{{Name: "df", Value: 1}},
				PValue:     0.002,
			},
		},
	}

	rec := postJSON(t, server, "/api/render/batch", items)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var entries []struct {
		Source string            `json:"source"`
		Output *apa.FormatResult `json:"output"`
		Error  *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Error != nil || entries[0].Output == nil {
		t.Errorf("first entry should succeed: %+v", entries[0])
	}
	if entries[1].Error == nil || entries[1].Error.Code != errors.CodeMissingSampleSize {
		t.Errorf("second entry should fail with missing sample size: %+v", entries[1])
	}
}

func TestHandlePreview_ReturnsHTML(t *testing.T) {
	server := newTestServer()

	items := []app.RenderItem{
		{
			Source: "study 1",
			Result: apa.TestResult{
				Statistic:  apa.Statistic{Name: "t", Value: 1.324},
				Parameters: []apa.Parameter{{Name: "df", Value: 18}},
				PValue:     0.199,
			},
		},
	}

	rec := postJSON(t, server, "/api/preview", items)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected HTML content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "study 1") {
		t.Errorf("preview should include the record label, got %q", body)
	}
	if !strings.Contains(body, "t(18) = 1.32") {
		t.Errorf("preview should include the rendered clause, got %q", body)
	}
}

func TestHandleReports_NotConfigured(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when storage is absent, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
