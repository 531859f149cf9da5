// Package config loads and validates crawler configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/leadgenjp/bizlead-crawler/internal/extractor"
)

// DefaultWebhookEndpoint is the deployed export script the results feed into
// when output.webhook.endpoint is left unset.
const DefaultWebhookEndpoint = "https://script.google.com/macros/s/AKfycbz39IOKmJgBdt4ZL2wW2eljPtdxeSrd52q0DJrXfgGnlaLQb5izqupTqSRwx1XvgqdM/exec"

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	Input     InputConfig     `mapstructure:"input"`
	Output    OutputConfig    `mapstructure:"output"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
}

// CrawlerConfig governs fetch and batch pipeline behavior.
type CrawlerConfig struct {
	UserAgent       string   `mapstructure:"user_agent"`
	RobotsPolicy    string   `mapstructure:"robots_policy"`
	Concurrency     int      `mapstructure:"concurrency"`
	TimeoutSeconds  int      `mapstructure:"timeout_seconds"`
	MaxRedirects    int      `mapstructure:"max_redirects"`
	MaxTargets      int      `mapstructure:"max_targets"`
	ExcludePatterns []string `mapstructure:"exclude_patterns"`
}

// InputConfig points at the target list.
type InputConfig struct {
	Path string `mapstructure:"path"`
}

// OutputConfig selects and configures the result sinks. NDJSONPath is always
// written; every other sink is additive.
type OutputConfig struct {
	NDJSONPath string         `mapstructure:"ndjson_path"`
	LogResults bool           `mapstructure:"log_results"`
	Webhook    WebhookConfig  `mapstructure:"webhook"`
	Postgres   PostgresConfig `mapstructure:"postgres"`
	PubSub     PubSubConfig   `mapstructure:"pubsub"`
}

// WebhookConfig configures the spreadsheet export endpoint.
type WebhookConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	// BatchMode posts the whole run as one array after completion instead of
	// streaming one record per result.
	BatchMode bool `mapstructure:"batch_mode"`
}

// PostgresConfig enables row-per-result persistence when DSN is set.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// PubSubConfig enables per-result publishing when both fields are set.
type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicID   string `mapstructure:"topic_id"`
}

// ServerConfig controls the ops HTTP server (health and metrics).
type ServerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// ExtractorConfig optionally overrides the built-in heuristic tables. Empty
// lists keep the defaults.
type ExtractorConfig struct {
	FreeMailDomains    []string           `mapstructure:"free_mail_domains"`
	BotEmailMarkers    []string           `mapstructure:"bot_email_markers"`
	PriorityLocalParts []string           `mapstructure:"priority_local_parts"`
	FormKeywords       []string           `mapstructure:"form_keywords"`
	TitleSeparators    []string           `mapstructure:"title_separators"`
	BoilerplateTokens  []string           `mapstructure:"boilerplate_tokens"`
	Industries         []IndustryCategory `mapstructure:"industries"`
}

// IndustryCategory mirrors one taxonomy entry for config overrides.
type IndustryCategory struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEADCRAWLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawler.user_agent", "bizlead-crawler/1.0 (+https://github.com/leadgenjp/bizlead-crawler)")
	v.SetDefault("crawler.robots_policy", "respect")
	v.SetDefault("crawler.concurrency", 5)
	v.SetDefault("crawler.timeout_seconds", 10)
	v.SetDefault("crawler.max_redirects", 10)
	v.SetDefault("crawler.max_targets", 0)
	v.SetDefault("output.ndjson_path", "crawl_results.ndjson")
	v.SetDefault("output.log_results", false)
	v.SetDefault("output.webhook.enabled", false)
	v.SetDefault("output.webhook.endpoint", DefaultWebhookEndpoint)
	v.SetDefault("output.webhook.batch_mode", false)
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Crawler.UserAgent == "" {
		return fmt.Errorf("crawler.user_agent must be set")
	}
	if c.Crawler.RobotsPolicy != "respect" && c.Crawler.RobotsPolicy != "ignore" {
		return fmt.Errorf("crawler.robots_policy must be %q or %q", "respect", "ignore")
	}
	if c.Crawler.Concurrency <= 0 {
		return fmt.Errorf("crawler.concurrency must be > 0")
	}
	if c.Crawler.TimeoutSeconds <= 0 {
		return fmt.Errorf("crawler.timeout_seconds must be > 0")
	}
	if c.Crawler.MaxTargets < 0 {
		return fmt.Errorf("crawler.max_targets must be >= 0")
	}
	if c.Output.NDJSONPath == "" {
		return fmt.Errorf("output.ndjson_path must be set")
	}
	if c.Output.Webhook.Enabled && c.Output.Webhook.Endpoint == "" {
		return fmt.Errorf("output.webhook.endpoint must be set when the webhook is enabled")
	}
	if (c.Output.PubSub.ProjectID == "") != (c.Output.PubSub.TopicID == "") {
		return fmt.Errorf("output.pubsub requires both project_id and topic_id")
	}
	if c.Server.Enabled && c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0 when the server is enabled")
	}
	return nil
}

// RespectRobots reports whether robots.txt rules apply.
func (c Config) RespectRobots() bool {
	return c.Crawler.RobotsPolicy == "respect"
}

// FetchTimeout converts the configured timeout into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Crawler.TimeoutSeconds) * time.Second
}

// Tables maps the extractor overrides onto heuristic tables; empty override
// lists fall back to the built-in defaults downstream.
func (c Config) Tables() extractor.Tables {
	tables := extractor.Tables{
		FreeMailDomains:    c.Extractor.FreeMailDomains,
		BotEmailMarkers:    c.Extractor.BotEmailMarkers,
		PriorityLocalParts: c.Extractor.PriorityLocalParts,
		FormKeywords:       c.Extractor.FormKeywords,
		TitleSeparators:    c.Extractor.TitleSeparators,
		BoilerplateTokens:  c.Extractor.BoilerplateTokens,
	}
	for _, category := range c.Extractor.Industries {
		tables.Industries = append(tables.Industries, extractor.IndustryCategory{
			Name:     category.Name,
			Keywords: category.Keywords,
		})
	}
	return tables
}
