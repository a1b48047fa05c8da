package cfg

import (
	"errors"
	"flag"
	"fmt"
)

// Config adds service-specific configuration fields to the
// common cfg.Registerable and cfg.Validatable interfaces
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int
	APIToken              string
	ClaudeAPIKey          string
	ClaudeModel           string
	SentimentEndpoint     string
	DatabaseURL           string
	QueueSize             int
	Workers               int
	StepMaxAttempts       int
	DashboardLimit        int
	TierCriticalBelow     float64
	SummaryCriticalBelow  float64
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 60, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 90, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.APIToken, "api-token", "", "bearer token guarding the runs API (empty = no auth)")
	fs.StringVar(&c.ClaudeAPIKey, "claude-api-key", "", "API key for accessing the Claude LLM provider")
	fs.StringVar(&c.ClaudeModel, "claude-model", "claude-sonnet-4-20250514", "Claude model used for category classification")
	fs.StringVar(&c.SentimentEndpoint, "sentiment-endpoint", "", "HTTP endpoint of the sentiment scoring backend")
	fs.StringVar(&c.DatabaseURL, "database-url", "", "PostgreSQL connection URL (empty = in-memory store)")
	fs.IntVar(&c.QueueSize, "queue-size", 64, "capacity of the analysis run queue (1..10000)")
	fs.IntVar(&c.Workers, "workers", 4, "number of analysis workers draining the queue (1..64)")
	fs.IntVar(&c.StepMaxAttempts, "step-max-attempts", 3, "attempts per pipeline step before a run fails (1..10)")
	fs.IntVar(&c.DashboardLimit, "dashboard-limit", 50, "maximum records shown on the dashboard (1..1000)")
	fs.Float64Var(&c.TierCriticalBelow, "tier-critical-below", 0.4, "sentiment threshold below which Bugs and Billing feedback is CRITICAL")
	fs.Float64Var(&c.SummaryCriticalBelow, "summary-critical-below", 0.3, "sentiment threshold below which a record counts as a critical incident")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	// Claude API key is required for LLM access
	if c.ClaudeAPIKey == "" {
		errs = append(errs, errors.New("CLAUDE_API_KEY is required"))
	}

	// Claude model is required for LLM access
	if c.ClaudeModel == "" {
		errs = append(errs, errors.New("CLAUDE_MODEL is required"))
	}

	// Sentiment backend is required for scoring
	if c.SentimentEndpoint == "" {
		errs = append(errs, errors.New("SENTIMENT_ENDPOINT is required"))
	}

	if c.QueueSize <= 0 || c.QueueSize > 10000 {
		errs = append(errs, fmt.Errorf("invalid QUEUE_SIZE %d (must be 1..10000)", c.QueueSize))
	}
	if c.Workers <= 0 || c.Workers > 64 {
		errs = append(errs, fmt.Errorf("invalid WORKERS %d (must be 1..64)", c.Workers))
	}
	if c.StepMaxAttempts <= 0 || c.StepMaxAttempts > 10 {
		errs = append(errs, fmt.Errorf("invalid STEP_MAX_ATTEMPTS %d (must be 1..10)", c.StepMaxAttempts))
	}
	if c.DashboardLimit <= 0 || c.DashboardLimit > 1000 {
		errs = append(errs, fmt.Errorf("invalid DASHBOARD_LIMIT %d (must be 1..1000)", c.DashboardLimit))
	}

	if c.TierCriticalBelow < 0 || c.TierCriticalBelow > 1 {
		errs = append(errs, fmt.Errorf("invalid TIER_CRITICAL_BELOW %v (must be 0..1)", c.TierCriticalBelow))
	}
	if c.SummaryCriticalBelow < 0 || c.SummaryCriticalBelow > 1 {
		errs = append(errs, fmt.Errorf("invalid SUMMARY_CRITICAL_BELOW %v (must be 0..1)", c.SummaryCriticalBelow))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
