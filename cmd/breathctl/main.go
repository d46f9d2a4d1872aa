package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-breath/internal/adapters/llm"
	sqlitestore "github.com/PabloGalante/farum-breath/internal/adapters/storage/sqlite"
	"github.com/PabloGalante/farum-breath/internal/app/journal"
	"github.com/PabloGalante/farum-breath/internal/app/recommendation"
	"github.com/PabloGalante/farum-breath/internal/domain"
)

type rootOptions struct {
	dbPath   string
	timezone string
	output   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "breathctl",
		Short:         "Inspect breathing practice history and get recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "data/breath.db", "SQLite database path")
	root.PersistentFlags().StringVar(&opts.timezone, "tz", "Local", "IANA timezone for day boundaries")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format: json|yaml")

	root.AddCommand(newRecommendCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newInsightsCmd(opts))
	root.AddCommand(newJournalStatsCmd(opts))
	return root
}

func (o *rootOptions) open(ctx context.Context) (*sqlitestore.Store, *time.Location, error) {
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("timezone %q: %w", o.timezone, err)
	}
	store, err := sqlitestore.Open(ctx, o.dbPath)
	if err != nil {
		return nil, nil, err
	}
	return store, loc, nil
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var useAI bool

	cmd := &cobra.Command{
		Use:   "recommend <emotion> <intensity>",
		Short: "Recommend a breathing technique for the current mood",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			intensity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("intensity must be a number: %w", err)
			}

			ctx := cmd.Context()
			store, loc, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var client domain.LLMClient
			if useAI {
				client = llm.NewAnthropicClient(llm.AnthropicConfig{APIKey: os.Getenv("ANTHROPIC_API_KEY")})
			}

			engine := recommendation.NewEngine(store, client, recommendation.WithLocation(loc))
			rec, err := engine.Recommend(ctx, &domain.MoodSample{
				Emotion:   domain.Emotion(args[0]),
				Intensity: intensity,
				Timestamp: time.Now(),
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, rec)
		},
	}
	cmd.Flags().BoolVar(&useAI, "ai", false, "ask the model first (needs ANTHROPIC_API_KEY)")
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streaks and totals for practice sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, loc, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			engine := recommendation.NewEngine(store, nil, recommendation.WithLocation(loc))
			return render(cmd.OutOrStdout(), opts.output, engine.Stats(cmd.Context()))
		},
	}
}

func newInsightsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show technique effectiveness and mined patterns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, loc, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			engine := recommendation.NewEngine(store, nil, recommendation.WithLocation(loc))
			return render(cmd.OutOrStdout(), opts.output, engine.Insights(cmd.Context()))
		},
	}
}

func newJournalStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "journal-stats",
		Short: "Show streaks and the most common emotion for journal entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, loc, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			return render(cmd.OutOrStdout(), opts.output, journal.NewService(store, loc).Stats(cmd.Context()))
		},
	}
}
