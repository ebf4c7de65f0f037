// Package config provides configuration for pshcalc enumeration runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	lawerrors "github.com/pshcalc/pshcalc/internal/errors"
)

// JobKind selects the enumeration to run.
type JobKind string

const (
	JobSemigroups JobKind = "semigroups"
	JobMonoids    JobKind = "monoids"
	JobCategories JobKind = "categories"
	JobActs       JobKind = "acts"
	JobTriples    JobKind = "triples"
)

// Jobs lists every supported job kind.
var Jobs = []JobKind{JobSemigroups, JobMonoids, JobCategories, JobActs, JobTriples}

// Config holds the configuration of a single run.
type Config struct {
	// Job describes what to enumerate
	Job JobConfig `json:"job" yaml:"job"`

	// Progress reporting
	Progress ProgressConfig `json:"progress" yaml:"progress"`

	// Metrics endpoint
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Log output
	Log LogConfig `json:"log" yaml:"log"`

	// Output controls what is printed after the run
	Output OutputConfig `json:"output" yaml:"output"`
}

// JobConfig holds the parameters of the enumeration. Which fields apply
// depends on Kind.
type JobConfig struct {
	// Kind is one of semigroups, monoids, categories, acts, triples
	Kind JobKind `json:"kind" yaml:"kind"`

	// Size is the carrier size for semigroups, monoids and acts, and the
	// morphism count for triples
	Size int `json:"size" yaml:"size"`

	// Objects is the object count for categories and triples
	Objects int `json:"objects" yaml:"objects"`

	// Source and Target give the endpoints of the non-identity morphisms
	// for categories
	Source []int `json:"source" yaml:"source"`
	Target []int `json:"target" yaml:"target"`

	// Sections is the size of the acted-on set for acts
	Sections int `json:"sections" yaml:"sections"`

	// Fibers, when set for categories, also counts the presheaves with
	// these fiber sizes over every category found
	Fibers []int `json:"fibers" yaml:"fibers"`
}

// ProgressConfig holds progress logging configuration.
type ProgressConfig struct {
	// Interval is the minimum time between progress log lines; zero disables them
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// MetricsConfig holds the Prometheus endpoint configuration.
type MetricsConfig struct {
	// Enabled controls whether the /metrics listener is started
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Addr is the listen address of the /metrics endpoint
	Addr string `json:"addr" yaml:"addr"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `json:"level" yaml:"level"`

	// Format is text or json
	Format string `json:"format" yaml:"format"`
}

// OutputConfig holds result printing configuration.
type OutputConfig struct {
	// List prints every structure found, not just the summary
	List bool `json:"list" yaml:"list"`

	// Limit caps the number of listed structures; zero means no cap
	Limit int `json:"limit" yaml:"limit"`
}

// DefaultConfig returns the default configuration: semigroups on three
// elements, info logging in text, no metrics endpoint.
func DefaultConfig() *Config {
	return &Config{
		Job: JobConfig{
			Kind: JobSemigroups,
			Size: 3,
		},
		Progress: ProgressConfig{
			Interval: 5 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9464",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			List:  false,
			Limit: 20,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	j := c.Job
	switch j.Kind {
	case JobSemigroups, JobMonoids:
		if j.Size < 1 {
			return invalid("job.size must be at least 1, got %d", j.Size)
		}
	case JobActs:
		if j.Size < 1 {
			return invalid("job.size must be at least 1, got %d", j.Size)
		}
		if j.Sections < 0 {
			return invalid("job.sections must not be negative, got %d", j.Sections)
		}
	case JobCategories:
		if err := validateSkeleton(j); err != nil {
			return err
		}
	case JobTriples:
		if j.Size < 0 || j.Objects < 0 {
			return invalid("job.size and job.objects must not be negative")
		}
	default:
		return invalid("invalid job kind: %q (must be one of %s)", j.Kind, jobNames())
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("invalid log level: %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("invalid log format: %q (must be text or json)", c.Log.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return invalid("metrics.addr is required when metrics are enabled")
	}
	if c.Progress.Interval < 0 {
		return invalid("progress.interval must not be negative")
	}
	if c.Output.Limit < 0 {
		return invalid("output.limit must not be negative, got %d", c.Output.Limit)
	}

	return nil
}

func validateSkeleton(j JobConfig) error {
	if j.Objects < 0 {
		return invalid("job.objects must not be negative, got %d", j.Objects)
	}
	if len(j.Source) != len(j.Target) {
		return invalid("job.source and job.target differ in length: %d vs %d", len(j.Source), len(j.Target))
	}
	for i := range j.Source {
		if j.Source[i] < 0 || j.Source[i] >= j.Objects || j.Target[i] < 0 || j.Target[i] >= j.Objects {
			return invalid("morphism %d: endpoints %d→%d outside %d objects", j.Objects+i, j.Source[i], j.Target[i], j.Objects)
		}
	}
	for i, n := range j.Fibers {
		if n < 0 {
			return invalid("job.fibers[%d] must not be negative, got %d", i, n)
		}
	}
	if len(j.Fibers) > j.Objects {
		return invalid("job.fibers has %d entries for %d objects", len(j.Fibers), j.Objects)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return lawerrors.NewConfigError(fmt.Sprintf(format, args...))
}

func jobNames() string {
	names := make([]string, len(Jobs))
	for i, j := range Jobs {
		names[i] = string(j)
	}
	return strings.Join(names, ", ")
}

// LoadFromFile loads configuration from a YAML or JSON file on top of the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv applies environment variables with the PSHCALC_ prefix.
// Malformed values are reported rather than ignored.
func LoadFromEnv(cfg *Config) error {
	if v := os.Getenv("PSHCALC_JOB"); v != "" {
		cfg.Job.Kind = JobKind(v)
	}
	if err := envInt("PSHCALC_SIZE", &cfg.Job.Size); err != nil {
		return err
	}
	if err := envInt("PSHCALC_OBJECTS", &cfg.Job.Objects); err != nil {
		return err
	}
	if err := envInt("PSHCALC_SECTIONS", &cfg.Job.Sections); err != nil {
		return err
	}
	if err := envInts("PSHCALC_SOURCE", &cfg.Job.Source); err != nil {
		return err
	}
	if err := envInts("PSHCALC_TARGET", &cfg.Job.Target); err != nil {
		return err
	}
	if err := envInts("PSHCALC_FIBERS", &cfg.Job.Fibers); err != nil {
		return err
	}

	if v := os.Getenv("PSHCALC_PROGRESS_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PSHCALC_PROGRESS_INTERVAL: %w", err)
		}
		cfg.Progress.Interval = d
	}

	if v := os.Getenv("PSHCALC_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
		cfg.Metrics.Enabled = true
	}
	if v := os.Getenv("PSHCALC_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = v == "true" || v == "1"
	}

	if v := os.Getenv("PSHCALC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("PSHCALC_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}

	if v := os.Getenv("PSHCALC_LIST"); v != "" {
		cfg.Output.List = v == "true" || v == "1"
	}
	return envInt("PSHCALC_LIMIT", &cfg.Output.Limit)
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envInts(key string, dst *[]int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	ns, err := ParseInts(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = ns
	return nil
}

// ParseInts parses a comma-separated list such as "0,1,1".
func ParseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	ns := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		ns = append(ns, n)
	}
	return ns, nil
}
