package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, JobSemigroups, cfg.Job.Kind)
	assert.Equal(t, 3, cfg.Job.Size)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"unknown job", func(c *Config) { c.Job.Kind = "groups" }, false},
		{"empty monoid", func(c *Config) { c.Job.Kind = JobMonoids; c.Job.Size = 0 }, false},
		{"acts", func(c *Config) { c.Job.Kind = JobActs; c.Job.Size = 2; c.Job.Sections = 3 }, true},
		{"negative sections", func(c *Config) { c.Job.Kind = JobActs; c.Job.Sections = -1 }, false},
		{"arrow category", func(c *Config) {
			c.Job = JobConfig{Kind: JobCategories, Objects: 2, Source: []int{0}, Target: []int{1}}
		}, true},
		{"endpoint out of range", func(c *Config) {
			c.Job = JobConfig{Kind: JobCategories, Objects: 1, Source: []int{0}, Target: []int{1}}
		}, false},
		{"ragged skeleton", func(c *Config) {
			c.Job = JobConfig{Kind: JobCategories, Objects: 2, Source: []int{0, 1}, Target: []int{1}}
		}, false},
		{"too many fibers", func(c *Config) {
			c.Job = JobConfig{Kind: JobCategories, Objects: 1, Fibers: []int{1, 1}}
		}, false},
		{"triples", func(c *Config) { c.Job = JobConfig{Kind: JobTriples, Size: 3, Objects: 2} }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"metrics without addr", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Addr = "" }, false},
		{"negative limit", func(c *Config) { c.Output.Limit = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, lawerrors.ErrInvalidConfig))
		})
	}
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pshcalc.yaml")
	data := `
job:
  kind: categories
  objects: 2
  source: [0]
  target: [1]
  fibers: [1, 2]
log:
  format: json
output:
  list: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, JobCategories, cfg.Job.Kind)
	assert.Equal(t, []int{0}, cfg.Job.Source)
	assert.Equal(t, []int{1, 2}, cfg.Job.Fibers)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level, "unset fields keep their defaults")
	assert.True(t, cfg.Output.List)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pshcalc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"job": {"kind": "acts", "size": 2, "sections": 2}}`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, JobActs, cfg.Job.Kind)
	assert.Equal(t, 2, cfg.Job.Sections)
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	toml := filepath.Join(dir, "pshcalc.toml")
	require.NoError(t, os.WriteFile(toml, []byte("x = 1"), 0644))
	_, err = LoadFromFile(toml)
	assert.ErrorContains(t, err, "unsupported config file format")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("job: [unclosed"), 0644))
	_, err = LoadFromFile(broken)
	assert.ErrorContains(t, err, "failed to parse YAML config")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PSHCALC_JOB", "categories")
	t.Setenv("PSHCALC_OBJECTS", "2")
	t.Setenv("PSHCALC_SOURCE", "0, 1")
	t.Setenv("PSHCALC_TARGET", "1,1")
	t.Setenv("PSHCALC_PROGRESS_INTERVAL", "250ms")
	t.Setenv("PSHCALC_METRICS_ADDR", "127.0.0.1:9100")
	t.Setenv("PSHCALC_LOG_LEVEL", "DEBUG")
	t.Setenv("PSHCALC_LIST", "1")
	t.Setenv("PSHCALC_LIMIT", "5")

	cfg := DefaultConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, JobCategories, cfg.Job.Kind)
	assert.Equal(t, 2, cfg.Job.Objects)
	assert.Equal(t, []int{0, 1}, cfg.Job.Source)
	assert.Equal(t, []int{1, 1}, cfg.Job.Target)
	assert.Equal(t, 250*time.Millisecond, cfg.Progress.Interval)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Output.List)
	assert.Equal(t, 5, cfg.Output.Limit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_Malformed(t *testing.T) {
	t.Setenv("PSHCALC_SIZE", "three")
	assert.ErrorContains(t, LoadFromEnv(DefaultConfig()), "PSHCALC_SIZE")
}

func TestParseInts(t *testing.T) {
	ns, err := ParseInts("0,1, 2,")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ns)

	ns, err = ParseInts("")
	require.NoError(t, err)
	assert.Empty(t, ns)

	_, err = ParseInts("0,x")
	assert.Error(t, err)
}
