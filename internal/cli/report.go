package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wallscreet/us-debt/internal/model"
	"github.com/wallscreet/us-debt/internal/pipeline"
)

var (
	feedURL       string
	itemCount     int
	httpTimeout   time.Duration
	userAgent     string
	noCache       bool
	noClear       bool
	respectRobots bool
	localZone     string
	llmEnabled    bool
	llmModel      string
)

// reportCmd is the explicit form of the default action.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch the two most recent snapshots and print the delta report",
	Long: `Report fetches the most recent "Debt to the Penny" items, extracts the
three debt figures from each, and prints:
- one block per snapshot (date, figures, published timestamp)
- the signed change between the two most recent snapshots
- the hourly debt accumulation rate

Example:
  usdebt report
  usdebt report --no-clear --timeout 10s
  usdebt report --llm --llm-model gpt-4o-mini`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addReportFlags(reportCmd)
	addReportFlags(rootCmd)
}

// addReportFlags registers the report flag set; the same set backs the
// bare root command and the watch command.
func addReportFlags(cmd *cobra.Command) {
	defaults := model.DefaultConfig()

	cmd.Flags().StringVar(&feedURL, "feed-url", defaults.Feed.URL, "syndication feed URL")
	cmd.Flags().IntVar(&itemCount, "items", defaults.Feed.Items, "recent snapshots to display (the delta always covers the newest two)")
	cmd.Flags().DurationVar(&httpTimeout, "timeout", defaults.Feed.Timeout, "HTTP timeout")
	cmd.Flags().StringVar(&userAgent, "ua", defaults.Feed.UserAgent, "HTTP User-Agent")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the feed cache (force fresh fetch)")
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "do not clear the screen before rendering")
	cmd.Flags().BoolVar(&respectRobots, "respect-robots", defaults.Feed.RespectRobots, "check robots.txt before fetching")
	cmd.Flags().StringVar(&localZone, "tz", defaults.Output.LocalZone, "local timezone for the run timestamp")
	cmd.Flags().BoolVar(&llmEnabled, "llm", false, "append an LLM-generated commentary note")
	cmd.Flags().StringVar(&llmModel, "llm-model", defaults.LLM.Model, "LLM model name")
}

// buildConfig layers defaults, config file / env values, then flags the
// user actually set.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("feed-url") {
		cfg.Feed.URL = feedURL
	}
	if flags.Changed("items") {
		cfg.Feed.Items = itemCount
	}
	if flags.Changed("timeout") {
		cfg.Feed.Timeout = httpTimeout
	}
	if flags.Changed("ua") {
		cfg.Feed.UserAgent = userAgent
	}
	if flags.Changed("respect-robots") {
		cfg.Feed.RespectRobots = respectRobots
	}
	if flags.Changed("tz") {
		cfg.Output.LocalZone = localZone
	}
	if noCache {
		cfg.Feed.CacheEnabled = false
	}
	if noClear {
		cfg.Output.ClearScreen = false
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	if cfg.Feed.Items < 2 {
		return nil, fmt.Errorf("need at least two snapshots for a delta, got %d", cfg.Feed.Items)
	}

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		if flags.Changed("llm-model") {
			cfg.LLM.Model = llmModel
		}
	}

	// The env fallback applies however the provider was enabled, flag
	// or config file.
	if cfg.LLM.Provider != "" {
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Fetching: %s\n", cfg.Feed.URL)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", cfg.Feed.Timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Feed.CacheEnabled)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if err := p.Run(cmd.Context(), os.Stdout); err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	return nil
}
