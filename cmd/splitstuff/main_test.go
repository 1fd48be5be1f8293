package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/splitstuff/splitstuff/internal/config"
	"github.com/splitstuff/splitstuff/internal/storage/sqlite"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, ShutdownTimeout: time.Second, AllowedOrigin: "*"},
		Storage:  config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "test.db")},
		Auth:     config.AuthConfig{JWTSecret: "test-secret"},
		Currency: "INR",
	}
}

func TestHandler_HealthAndMetrics(t *testing.T) {
	cfg := testConfig(t)
	store, err := sqlite.New(cfg.Storage.SQLitePath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	server := httptest.NewServer(newHandler(cfg, store, prometheus.NewRegistry()))
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected CORS header, got %q", got)
	}

	// An unauthenticated RPC is rejected and counted.
	rpc, err := http.Post(server.URL+"/splitstuff.v1.GroupService/ListGroups", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("rpc failed: %v", err)
	}
	rpc.Body.Close()
	if rpc.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rpc.StatusCode)
	}

	resp, err = http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `splitstuff_rpc_requests_total{code="unauthenticated",procedure="/splitstuff.v1.GroupService/ListGroups"} 1`) {
		t.Errorf("expected rejected call in metrics, got:\n%s", body)
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := corsMiddleware("https://app.example", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/splitstuff.v1.LedgerService/GetGroupBalances", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if called {
		t.Error("preflight should not reach the handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("unexpected origin header %q", got)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
		t.Error("expected Authorization in allowed headers")
	}
}

func TestSettleCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "trip.json")
	doc := `{
  "members": [
    {"id": "a", "name": "Asha", "upi_id": "asha@okbank"},
    {"id": "r", "name": "Ravi"}
  ],
  "expenses": [{"description": "Lunch", "amount": 120, "paid_by": "a"}]
}`
	if err := os.WriteFile(input, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	qrDir := filepath.Join(dir, "qr")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"settle", input, "--qr-dir", qrDir})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagQRDir = ""
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("settle failed: %v\n%s", err, out.String())
	}

	text := out.String()
	for _, want := range []string{"Asha", "Ravi", "60.00", "QR code:"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}

	if _, err := os.Stat(filepath.Join(qrDir, "01_r_to_a.jpg")); err != nil {
		t.Errorf("expected QR code file: %v", err)
	}
}
