package config

import (
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				App:   AppConfig{Name: "test-service"},
				Solve: SolveConfig{TimeLimit: time.Minute, NodeLimit: 100},
				Log:   LogConfig{Level: "info"},
			},
			wantErr: false,
		},
		{
			name: "missing app name",
			cfg: Config{
				Solve: SolveConfig{TimeLimit: time.Minute, NodeLimit: 100},
				Log:   LogConfig{Level: "info"},
			},
			wantErr: true,
		},
		{
			name: "invalid time limit - zero",
			cfg: Config{
				App:   AppConfig{Name: "test"},
				Solve: SolveConfig{TimeLimit: 0, NodeLimit: 100},
			},
			wantErr: true,
		},
		{
			name: "invalid node limit - zero",
			cfg: Config{
				App:   AppConfig{Name: "test"},
				Solve: SolveConfig{TimeLimit: time.Minute, NodeLimit: 0},
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			cfg: Config{
				App:   AppConfig{Name: "test"},
				Solve: SolveConfig{TimeLimit: time.Minute, NodeLimit: 100},
				Log:   LogConfig{Level: "invalid"},
			},
			wantErr: true,
		},
		{
			name: "valid debug level",
			cfg: Config{
				App:   AppConfig{Name: "test"},
				Solve: SolveConfig{TimeLimit: time.Minute, NodeLimit: 100},
				Log:   LogConfig{Level: "debug"},
			},
			wantErr: false,
		},
		{
			name: "invalid report theme",
			cfg: Config{
				App:    AppConfig{Name: "test"},
				Solve:  SolveConfig{TimeLimit: time.Minute, NodeLimit: 100},
				Log:    LogConfig{Level: "info"},
				Report: ReportConfig{DefaultTheme: "invalid-theme"},
			},
			wantErr: true,
		},
		{
			name: "valid report config",
			cfg: Config{
				App:   AppConfig{Name: "test"},
				Solve: SolveConfig{TimeLimit: time.Minute, NodeLimit: 100},
				Log:   LogConfig{Level: "info"},
				Report: ReportConfig{
					DefaultTheme: "dark",
					PDF:          PDFConfig{PageSize: "A4", Orientation: "landscape"},
				},
			},
			wantErr: false,
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

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"dev", true},
		{"production", false},
		{"staging", false},
	}

	for _, tt := range tests {
		cfg := &Config{App: AppConfig{Environment: tt.env}}
		if got := cfg.IsDevelopment(); got != tt.want {
			t.Errorf("IsDevelopment() for %s = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"prod", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		cfg := &Config{App: AppConfig{Environment: tt.env}}
		if got := cfg.IsProduction(); got != tt.want {
			t.Errorf("IsProduction() for %s = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Driver:   "postgres",
		Host:     "localhost",
		Port:     5432,
		Database: "testdb",
		Username: "user",
		Password: "pass",
		SSLMode:  "disable",
	}

	expect := "host=localhost port=5432 user=user password=pass dbname=testdb sslmode=disable"
	if dsn := cfg.DSN(); dsn != expect {
		t.Errorf("expected DSN %s, got %s", expect, dsn)
	}
}

func TestCacheConfig_Address(t *testing.T) {
	cfg := CacheConfig{
		Host: "redis.local",
		Port: 6379,
	}

	addr := cfg.Address()
	if addr != "redis.local:6379" {
		t.Errorf("expected 'redis.local:6379', got %s", addr)
	}
}

func TestPDFConfig_Defaults(t *testing.T) {
	cfg := PDFConfig{
		PageSize:    "A4",
		Orientation: "portrait",
		MarginTop:   15.0,
		FontFamily:  "Arial",
		FontSize:    10.0,
	}

	if cfg.PageSize != "A4" {
		t.Errorf("expected page size A4, got %s", cfg.PageSize)
	}
	if cfg.MarginTop != 15.0 {
		t.Errorf("expected margin 15.0, got %f", cfg.MarginTop)
	}
}
