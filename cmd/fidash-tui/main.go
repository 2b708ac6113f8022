package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fidash/internal/config"
	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/logging"
	"github.com/rgehrsitz/fidash/internal/output"
	"github.com/rgehrsitz/fidash/internal/state"
	"github.com/rgehrsitz/fidash/internal/storage"
	"github.com/rgehrsitz/fidash/internal/tui"
	"github.com/rgehrsitz/fidash/internal/tui/tuistyles"
)

const debugLogFile = "fidash-tui.log"

func newRootCmd() *cobra.Command {
	var (
		debug    bool
		currency string
	)
	cmd := &cobra.Command{
		Use:   "fidash-tui [state-file]",
		Short: "Interactive financial independence dashboard",
		Long: `Open the dashboard for a state file (fidash.yaml by default).

Every change is written back to the file. Set FIDASH_MONGO_URI and
FIDASH_USER_ID to load from and mirror to MongoDB.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := "fidash.yaml"
			if len(args) == 1 {
				file = args[0]
			}
			tuistyles.Currency = currency

			// the alternate screen owns the terminal, so debug logs go to a file
			var logOut io.Writer = io.Discard
			if debug {
				f, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", debugLogFile, err)
				}
				defer f.Close()
				logOut = f
			}
			log := logging.New(logOut, debug)
			return run(cmd.Context(), file, log)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "Write debug logs to "+debugLogFile)
	cmd.Flags().StringVar(&currency, "currency", output.DefaultCurrency, "ISO currency code used to display amounts")
	return cmd
}

func run(ctx context.Context, file string, log *logging.Logger) error {
	parser := config.NewInputParser()
	p, err := parser.LoadOrDefault(file)
	if err != nil {
		return err
	}

	store := state.NewStore(*p)
	store.SetLogger(log.With("store"))

	if uri, userID := os.Getenv("FIDASH_MONGO_URI"), os.Getenv("FIDASH_USER_ID"); uri != "" && userID != "" {
		database := os.Getenv("FIDASH_MONGO_DB")
		if database == "" {
			database = "fidash"
		}
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err := storage.ConnectToMongoDB(connectCtx, uri, log.With("mongo"))
		cancel()
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		syncer := state.NewSyncer(store, storage.NewMongoRepository(storage.NewMongoProvider(client, database)), userID, 0)
		syncer.SetLogger(log.With("sync"))
		if _, err := syncer.Hydrate(ctx); err != nil {
			return err
		}
		syncer.Start(ctx)
		defer syncer.Stop()
	}

	model := tui.NewModel(store, tui.WithPersist(func(p domain.Portfolio) error {
		return parser.SaveToFile(file, &p)
	}))

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
