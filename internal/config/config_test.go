package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/deskrota/pkg/core/scheduler"
)

const minimalYAML = `
windows:
  - {label: Early, start: "07:30", end: "09:00"}
  - {label: Core, start: "09:00", end: "13:00"}
  - {label: Afternoon, start: "13:00", end: "18:00"}
  - {label: Evening, start: "18:00", end: "21:00"}
`

func validConfig() *Config {
	return &Config{
		Roster: []WorkerConfig{
			{Name: "Alice", Start: "07:30", End: "16:30"},
			{Name: "Bob", Start: "09:00", End: "18:00"},
		},
		Windows: []WindowConfig{
			{Label: "Core", Start: "09:00", End: "13:00"},
			{Label: "Afternoon", Start: "13:00", End: "18:00"},
		},
		Policy:   DefaultPolicy(),
		Strategy: "fair",
		Ordering: "rotate",
		Storage:  StorageConfig{Driver: DriverSQLite, DSN: "test.db"},
		Server:   ServerConfig{Port: 8080},
	}
}

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Len(t, cfg.Roster, 11)
	assert.Equal(t, "Anish", cfg.Roster[0].Name)
	assert.Equal(t, DefaultPolicy(), cfg.Policy)
	assert.Equal(t, "fair", cfg.Strategy)
	assert.Equal(t, "rotate", cfg.Ordering)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "deskrota.db", cfg.Storage.DSN)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestParse_DSNFromEnvironment(t *testing.T) {
	t.Setenv(DSNEnvVar, "postgres://desk@localhost/desk")

	cfg, err := Parse([]byte(minimalYAML + "storage:\n  driver: postgres\n"))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://desk@localhost/desk", cfg.Storage.DSN)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("windows: [unclosed"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Throttle = ThrottleConfig{ExclusiveWindow: "Afternoon", ThrottledWindows: []string{"Core"}}
	cfg.Overrides = []DayOverride{
		{RRule: "FREQ=WEEKLY;BYDAY=SA", Absent: []string{"Bob"}},
		{RRule: "FREQ=MONTHLY;BYMONTHDAY=1", Windows: []WindowConfig{{Label: "Core", Start: "10:00", End: "12:00"}}},
	}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		contains string
		is       error
	}{
		{
			name:     "bad clock",
			mutate:   func(cfg *Config) { cfg.Roster[0].Start = "7.30" },
			contains: "validation failed",
		},
		{
			name:   "worker ends before start",
			mutate: func(cfg *Config) { cfg.Roster[0].End = "07:00" },
			is:     scheduler.ErrInvalidInterval,
		},
		{
			name:   "duplicate worker",
			mutate: func(cfg *Config) { cfg.Roster[1].Name = "Alice" },
			is:     scheduler.ErrDuplicateName,
		},
		{
			name:   "overlapping windows",
			mutate: func(cfg *Config) { cfg.Windows[1].Start = "12:00" },
			is:     scheduler.ErrOverlappingWindows,
		},
		{
			name:     "no windows",
			mutate:   func(cfg *Config) { cfg.Windows = nil },
			contains: "validation failed",
		},
		{
			name:     "ideal max below ideal min",
			mutate:   func(cfg *Config) { cfg.Policy.IdealMax = 2 },
			contains: "validation failed",
		},
		{
			name:     "tolerance above one",
			mutate:   func(cfg *Config) { cfg.Policy.Tolerance = 1.5 },
			contains: "validation failed",
		},
		{
			name:     "unknown strategy",
			mutate:   func(cfg *Config) { cfg.Strategy = "lottery" },
			contains: "validation failed",
		},
		{
			name:     "unknown ordering",
			mutate:   func(cfg *Config) { cfg.Ordering = "alphabetical" },
			contains: "validation failed",
		},
		{
			name:     "postgres without dsn",
			mutate:   func(cfg *Config) { cfg.Storage = StorageConfig{Driver: DriverPostgres} },
			contains: "validation failed",
		},
		{
			name:     "invalid rrule",
			mutate:   func(cfg *Config) { cfg.Overrides = []DayOverride{{RRule: "INVALID_RRULE_SYNTAX"}} },
			contains: "invalid rrule",
		},
		{
			name:     "empty rrule",
			mutate:   func(cfg *Config) { cfg.Overrides = []DayOverride{{RRule: ""}} },
			contains: "validation failed",
		},
		{
			name: "overlapping override windows",
			mutate: func(cfg *Config) {
				cfg.Overrides = []DayOverride{{
					RRule: "FREQ=WEEKLY;BYDAY=SU",
					Windows: []WindowConfig{
						{Label: "A", Start: "09:00", End: "11:00"},
						{Label: "B", Start: "10:00", End: "12:00"},
					},
				}}
			},
			is: scheduler.ErrOverlappingWindows,
		},
		{
			name:     "throttle on unknown window",
			mutate:   func(cfg *Config) { cfg.Throttle = ThrottleConfig{ExclusiveWindow: "Night"} },
			contains: "unknown window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestLoadWithEnv_FindsFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deskrota_config.test.yaml"), []byte(minimalYAML+"strategy: round\n"), 0644))
	t.Chdir(dir)

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "round", cfg.Strategy)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestDayOverride_AppliesTo(t *testing.T) {
	saturdays := DayOverride{RRule: "FREQ=WEEKLY;BYDAY=SA"}
	firstOfMonth := DayOverride{RRule: "FREQ=MONTHLY;BYMONTHDAY=1"}

	tests := []struct {
		name     string
		override DayOverride
		date     string
		expected bool
	}{
		{"saturday", saturdays, "2026-10-17", true},
		{"friday", saturdays, "2026-10-16", false},
		{"next saturday", saturdays, "2026-10-24", true},
		{"first of month", firstOfMonth, "2026-11-01", true},
		{"second of month", firstOfMonth, "2026-11-02", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := time.Parse(DateLayout, tt.date)
			require.NoError(t, err)

			applies, err := tt.override.AppliesTo(date)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, applies)
		})
	}
}

func TestOverridesFor(t *testing.T) {
	cfg := validConfig()
	cfg.Overrides = []DayOverride{
		{RRule: "FREQ=WEEKLY;BYDAY=SA", Absent: []string{"Bob"}},
		{RRule: "FREQ=WEEKLY;BYDAY=SU", Absent: []string{"Alice"}},
		{RRule: "FREQ=DAILY", Strategy: "round"},
	}

	saturday := time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)
	matched, err := cfg.OverridesFor(saturday)
	require.NoError(t, err)

	require.Len(t, matched, 2)
	assert.Equal(t, []string{"Bob"}, matched[0].Absent)
	assert.Equal(t, "round", matched[1].Strategy)
}

func TestToWorkers_RoundTrip(t *testing.T) {
	workers, err := ToWorkers(DefaultRoster())
	require.NoError(t, err)

	require.Len(t, workers, 11)
	assert.Equal(t, scheduler.Worker{Name: "Ashish", Start: 450, End: 990}, workers[1])
	assert.Equal(t, DefaultRoster(), FromWorkers(workers))
}

func TestToWindows_BadClock(t *testing.T) {
	_, err := ToWindows([]WindowConfig{{Label: "Core", Start: "nine", End: "13:00"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `window "Core"`)
}

func TestLoadOAuthClientFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oauth.json")
	content := `{"installed":{
		"client_id":"id.apps.googleusercontent.com",
		"project_id":"deskrota",
		"auth_uri":"https://accounts.google.com/o/oauth2/auth",
		"token_uri":"https://oauth2.googleapis.com/token",
		"client_secret":"secret",
		"redirect_uris":["http://localhost"]
	}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	oauthCfg, err := LoadOAuthClientFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "deskrota", oauthCfg.Installed.ProjectID)
}

func TestLoadOAuthClientFromPath_MissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oauth.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"installed":{"client_id":"id"}}`), 0600))

	_, err := LoadOAuthClientFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "oauth client validation failed")
}
