package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/karupanerura/rpn2tex/internal/server"
)

type conversionRes struct {
	Name       string         `json:"name"`
	State      string         `json:"state"`
	Expression string         `json:"expression"`
	LaTeX      string         `json:"latex"`
	Error      map[string]any `json:"error"`
}

func postConversion(t *testing.T, handler http.Handler, body string) (*httptest.ResponseRecorder, conversionRes) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/conversions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var res conversionRes
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return rec, res
}

func TestCreateConversion(t *testing.T) {
	t.Parallel()

	handler := server.NewHTTPHandler()
	rec, res := postConversion(t, handler, `{"expression": "5 3 + 2 *"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if res.State != "DONE" {
		t.Errorf("unexpected state: %s", res.State)
	}
	if expected := `$( 5 + 3 ) \times 2$`; res.LaTeX != expected {
		t.Errorf("unexpected latex: %q (expected %q)", res.LaTeX, expected)
	}
	if !strings.HasPrefix(res.Name, "/v1/conversions/") {
		t.Errorf("unexpected name: %q", res.Name)
	}
}

func TestCreateConversionSyntaxError(t *testing.T) {
	t.Parallel()

	handler := server.NewHTTPHandler()
	rec, res := postConversion(t, handler, `{"expression": "2 3 ^"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if res.State != "FAILED" {
		t.Errorf("unexpected state: %s", res.State)
	}
	if res.Error == nil {
		t.Fatal("expected error detail, got none")
	}
	if got := res.Error["message"]; got != "Unexpected character '^'" {
		t.Errorf("unexpected message: %v", got)
	}
	if got := res.Error["line"]; got != float64(1) {
		t.Errorf("unexpected line: %v", got)
	}
	if got := res.Error["column"]; got != float64(5) {
		t.Errorf("unexpected column: %v", got)
	}
}

func TestCreateConversionBadRequest(t *testing.T) {
	t.Parallel()

	handler := server.NewHTTPHandler()
	for _, body := range []string{``, `{}`, `{"expression": ""}`, `not json`} {
		rec, _ := postConversion(t, handler, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("unexpected status for %q: %d", body, rec.Code)
		}
	}
}

func TestListConversions(t *testing.T) {
	t.Parallel()

	handler := server.NewHTTPHandler()
	postConversion(t, handler, `{"expression": "5 3 +"}`)
	postConversion(t, handler, `{"expression": "4 7 *"}`)

	req := httptest.NewRequest(http.MethodGet, "/v1/conversions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var res map[string][]conversionRes
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(res["conversions"]) != 2 {
		t.Fatalf("unexpected number of conversions: %d", len(res["conversions"]))
	}
	if res["conversions"][0].Expression != "5 3 +" {
		t.Errorf("unexpected order: %q first", res["conversions"][0].Expression)
	}
}

func TestGetConversion(t *testing.T) {
	t.Parallel()

	handler := server.NewHTTPHandler()
	_, created := postConversion(t, handler, `{"expression": "5 3 +"}`)

	req := httptest.NewRequest(http.MethodGet, created.Name, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var res conversionRes
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.LaTeX != "$5 + 3$" {
		t.Errorf("unexpected latex: %q", res.LaTeX)
	}
}

func TestGetConversionNotFound(t *testing.T) {
	t.Parallel()

	handler := server.NewHTTPHandler()
	req := httptest.NewRequest(http.MethodGet, "/v1/conversions/ffffffffffff", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unexpected status: %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	handler := server.NewHTTPHandler()
	req := httptest.NewRequest(http.MethodDelete, "/v1/conversions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("unexpected status: %d", rec.Code)
	}
}
