package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alreinhart/TXSemiModel/internal/extract"
)

// Platform names accepted in company entries.
const (
	PlatformWorkday     = "workday"
	PlatformOracleCloud = "oraclecloud"
)

// Config is the root configuration for the scraper.
type Config struct {
	Companies  []CompanyConfig
	HTTP       HTTPConfig
	RateLimit  RateLimitConfig
	Retry      RetryConfig
	Database   DatabaseConfig
	Export     ExportConfig
	Extraction extract.Config
}

// CompanyConfig describes a single career site to scrape.
type CompanyConfig struct {
	Name       string `yaml:"name"`
	Platform   string `yaml:"platform"`    // "workday" or "oraclecloud"
	WorkdayURL string `yaml:"workday_url"` // tenant CXS base URL, workday only
	SiteURL    string `yaml:"site_url"`    // hcmRestApi base URL, oraclecloud only
	SiteNumber string `yaml:"site_number"` // CX site number, oraclecloud only
	Keywords   string `yaml:"keywords"`    // search text forwarded to the site
	Enabled    bool   `yaml:"enabled"`
}

// HTTPConfig controls the shared HTTP client.
type HTTPConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// RateLimitConfig controls platform-level politeness delays.
type RateLimitConfig struct {
	MinDelay          time.Duration            // minimum gap between requests to the same platform
	PlatformOverrides map[string]time.Duration // per-platform overrides
}

// MinDelayFor returns the configured delay for the given platform, falling
// back to MinDelay.
func (r RateLimitConfig) MinDelayFor(platform string) time.Duration {
	if d, ok := r.PlatformOverrides[platform]; ok {
		return d
	}
	return r.MinDelay
}

// RetryConfig controls transient-failure retries per company fetch.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig controls CSV export output.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

const (
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	defaultTimeout   = 30 * time.Second
	defaultMinDelay  = 2 * time.Second
	defaultRetries   = 3
	defaultBaseDelay = 2 * time.Second
	defaultDBPath    = "jobs.db"
	defaultExportDir = "exports"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	Companies  []CompanyConfig     `yaml:"companies"`
	HTTP       rawHTTPConfig       `yaml:"http"`
	RateLimit  rawRateLimitConfig  `yaml:"rate_limit"`
	Retry      rawRetryConfig      `yaml:"retry"`
	Database   DatabaseConfig      `yaml:"database"`
	Export     ExportConfig        `yaml:"export"`
	Extraction rawExtractionConfig `yaml:"extraction"`
}

type rawHTTPConfig struct {
	UserAgent string `yaml:"user_agent"`
	Timeout   string `yaml:"timeout"`
}

type rawRateLimitConfig struct {
	MinDelay          string            `yaml:"min_delay"`
	PlatformOverrides map[string]string `yaml:"platform_overrides"`
}

type rawRetryConfig struct {
	MaxRetries *int   `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

// rawExtractionConfig holds optional pattern overrides, keyed by field name.
// A field present here replaces the stock list for that field only.
type rawExtractionConfig struct {
	Sections              map[string][]string `yaml:"sections"`
	Headings              map[string][]string `yaml:"headings"`
	LooseHeadings         map[string][]string `yaml:"loose_headings"`
	BoilerplatePhrases    []string            `yaml:"boilerplate_phrases"`
	BoilerplateParagraphs []string            `yaml:"boilerplate_paragraphs"`
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	timeout := defaultTimeout
	if raw.HTTP.Timeout != "" {
		timeout, err = time.ParseDuration(raw.HTTP.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse http.timeout %q: %w", raw.HTTP.Timeout, err)
		}
	}

	userAgent := raw.HTTP.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	minDelay := defaultMinDelay
	if raw.RateLimit.MinDelay != "" {
		minDelay, err = time.ParseDuration(raw.RateLimit.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.min_delay %q: %w", raw.RateLimit.MinDelay, err)
		}
	}

	overrides := make(map[string]time.Duration)
	for platform, s := range raw.RateLimit.PlatformOverrides {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.platform_overrides[%q]: %w", platform, err)
		}
		overrides[platform] = d
	}

	maxRetries := defaultRetries
	if raw.Retry.MaxRetries != nil {
		maxRetries = *raw.Retry.MaxRetries
	}
	baseDelay := defaultBaseDelay
	if raw.Retry.BaseDelay != "" {
		baseDelay, err = time.ParseDuration(raw.Retry.BaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse retry.base_delay %q: %w", raw.Retry.BaseDelay, err)
		}
	}

	extraction, err := buildExtraction(raw.Extraction)
	if err != nil {
		return nil, err
	}

	dbPath := raw.Database.Path
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportDir := raw.Export.Dir
	if exportDir == "" {
		exportDir = defaultExportDir
	}

	cfg := &Config{
		Companies: raw.Companies,
		HTTP: HTTPConfig{
			UserAgent: userAgent,
			Timeout:   timeout,
		},
		RateLimit: RateLimitConfig{
			MinDelay:          minDelay,
			PlatformOverrides: overrides,
		},
		Retry: RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  baseDelay,
		},
		Database:   DatabaseConfig{Path: dbPath},
		Export:     ExportConfig{Dir: exportDir},
		Extraction: extraction,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildExtraction starts from the stock pattern tables and swaps in any
// per-field lists the config provides.
func buildExtraction(raw rawExtractionConfig) (extract.Config, error) {
	cfg := extract.DefaultConfig()

	sections, err := mergeFieldPatterns(cfg.Sections, raw.Sections, "extraction.sections")
	if err != nil {
		return extract.Config{}, err
	}
	cfg.Sections = sections

	headings, err := mergeFieldPatterns(cfg.Headings, raw.Headings, "extraction.headings")
	if err != nil {
		return extract.Config{}, err
	}
	cfg.Headings = headings

	loose, err := mergeFieldPatterns(cfg.LooseHeadings, raw.LooseHeadings, "extraction.loose_headings")
	if err != nil {
		return extract.Config{}, err
	}
	cfg.LooseHeadings = loose

	if raw.BoilerplatePhrases != nil {
		cfg.BoilerplatePhrases, err = compileList(raw.BoilerplatePhrases, "extraction.boilerplate_phrases")
		if err != nil {
			return extract.Config{}, err
		}
	}
	if raw.BoilerplateParagraphs != nil {
		cfg.BoilerplateParagraphs, err = compileList(raw.BoilerplateParagraphs, "extraction.boilerplate_paragraphs")
		if err != nil {
			return extract.Config{}, err
		}
	}

	return cfg, nil
}

func mergeFieldPatterns(defaults map[extract.Field][]extract.Pattern, raw map[string][]string, key string) (map[extract.Field][]extract.Pattern, error) {
	if len(raw) == 0 {
		return defaults, nil
	}
	merged := make(map[extract.Field][]extract.Pattern, len(defaults))
	for f, ps := range defaults {
		merged[f] = ps
	}
	for name, exprs := range raw {
		field, ok := knownField(name)
		if !ok {
			return nil, fmt.Errorf("%s: unknown field %q", key, name)
		}
		patterns, err := compileList(exprs, fmt.Sprintf("%s.%s", key, name))
		if err != nil {
			return nil, err
		}
		merged[field] = patterns
	}
	return merged, nil
}

func compileList(exprs []string, key string) ([]extract.Pattern, error) {
	patterns := make([]extract.Pattern, 0, len(exprs))
	for i, expr := range exprs {
		p, err := extract.CompilePattern(expr)
		if err != nil {
			return nil, fmt.Errorf("compile %s[%d]: %w", key, i, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func knownField(name string) (extract.Field, bool) {
	for _, f := range extract.Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

func validate(cfg *Config) error {
	enabled := 0
	for i, c := range cfg.Companies {
		if c.Name == "" {
			return fmt.Errorf("companies[%d]: name is required", i)
		}
		switch c.Platform {
		case PlatformWorkday:
			if c.WorkdayURL == "" {
				return fmt.Errorf("companies[%d] (%s): workday_url is required for workday", i, c.Name)
			}
		case PlatformOracleCloud:
			if c.SiteURL == "" {
				return fmt.Errorf("companies[%d] (%s): site_url is required for oraclecloud", i, c.Name)
			}
			if c.SiteNumber == "" {
				return fmt.Errorf("companies[%d] (%s): site_number is required for oraclecloud", i, c.Name)
			}
		default:
			return fmt.Errorf("companies[%d] (%s): unknown platform %q", i, c.Name, c.Platform)
		}
		if c.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one company must be enabled")
	}

	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %v", cfg.HTTP.Timeout)
	}
	if cfg.RateLimit.MinDelay < 0 {
		return fmt.Errorf("rate_limit.min_delay must not be negative, got %v", cfg.RateLimit.MinDelay)
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}

	return nil
}
