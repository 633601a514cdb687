// Package commands implements the registry administration CLI.
package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/pet-registry/internal/app"
	platformobservability "github.com/Apurer/pet-registry/internal/platform/observability"
	platformpostgres "github.com/Apurer/pet-registry/internal/platform/postgres"
)

var (
	registry *app.Registry
	cleanup  []func()

	actor   int64
	verbose bool
)

// Execute runs the root command.
func Execute() error {
	return execute(newRoot(setup))
}

// execute runs root and releases whatever setup acquired, including after a failed command.
func execute(root *cobra.Command) error {
	defer runCleanup()
	return root.ExecuteContext(context.Background())
}

func runCleanup() {
	for i := len(cleanup) - 1; i >= 0; i-- {
		cleanup[i]()
	}
	cleanup = nil
}

// newRoot builds the command tree. prepare runs before every subcommand and must set registry.
func newRoot(prepare func(ctx context.Context) error) *cobra.Command {
	root := &cobra.Command{
		Use:           "registry",
		Short:         "Administer the pet registry: pets, adoptions and vaccinations",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepare(cmd.Context())
		},
	}
	root.PersistentFlags().Int64Var(&actor, "as", 0, "id of the acting user")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(breedsCmd(), userCmd(), petCmd(), doseCmd())
	return root
}

func setup(ctx context.Context) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	// stdout carries command output.
	instruments, shutdown, err := platformobservability.Init(ctx, "pet-registry-cli",
		platformobservability.WithOutput(os.Stderr),
		platformobservability.WithLevel(level),
	)
	if err != nil {
		return err
	}
	cleanup = append(cleanup, func() {
		if err := shutdown(context.Background()); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	})
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, instruments.Logger)
	cleanup = append(cleanup, closeDB)

	var temporalClient client.Client
	if c, err := app.ConnectTemporal(cfg, instruments); err != nil {
		instruments.Logger.Warn("Temporal unavailable, notifying inline", slog.String("error", err.Error()))
	} else {
		temporalClient = c
		cleanup = append(cleanup, c.Close)
	}

	registry, err = app.Build(cfg, app.Dependencies{DB: db, Temporal: temporalClient, Instruments: instruments})
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
