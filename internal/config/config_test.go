package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Currency != "INR" {
		t.Errorf("expected INR, got %q", cfg.Currency)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Addr())
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "splitstuff.yaml")
	content := `
server:
  port: 9090
  shutdown_timeout: 3s
storage:
  driver: postgres
  postgres_url: postgres://localhost/splitstuff
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SPLITSTUFF_SERVER_PORT", "7070")
	t.Setenv("SPLITSTUFF_AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("env should override file: expected 7070, got %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Storage.Driver != DriverPostgres || cfg.Storage.PostgresURL != "postgres://localhost/splitstuff" {
		t.Errorf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("expected secret from env, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug, got %q", cfg.Log.Level)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SPLITSTUFF_CURRENCY=USD\n"), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	// godotenv sets real environment variables; register cleanup through t.Setenv.
	t.Setenv("SPLITSTUFF_CURRENCY", "")
	os.Unsetenv("SPLITSTUFF_CURRENCY")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Currency != "USD" {
		t.Errorf("expected USD from .env, got %q", cfg.Currency)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "sqlite ok",
			cfg:  Config{Server: ServerConfig{Port: 80}, Storage: StorageConfig{Driver: DriverSQLite, SQLitePath: "x.db"}},
		},
		{
			name:    "postgres without url",
			cfg:     Config{Server: ServerConfig{Port: 80}, Storage: StorageConfig{Driver: DriverPostgres}},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     Config{Server: ServerConfig{Port: 80}, Storage: StorageConfig{Driver: "mysql"}},
			wantErr: true,
		},
		{
			name:    "bad port",
			cfg:     Config{Server: ServerConfig{Port: 0}, Storage: StorageConfig{Driver: DriverSQLite, SQLitePath: "x.db"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
