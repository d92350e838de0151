package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/wallscreet/us-debt/internal/pipeline"
)

var every time.Duration

// watchCmd re-renders the report on a schedule, debt-clock style.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the report on a schedule until interrupted",
	Long: `Watch renders the report immediately and then refreshes it on the given
interval. The feed cache keeps refreshes inside the cache TTL from
hitting the endpoint again.

Example:
  usdebt watch --every 1h
  usdebt watch --every 15m --no-cache`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&every, "every", time.Hour, "refresh interval")
	addReportFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() {
		if err := p.Run(ctx, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	run()

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", every), run); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}
	c.Start()
	defer c.Stop()

	<-ctx.Done()
	return nil
}
