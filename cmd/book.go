package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"moviehub-cli/store"
	"moviehub-cli/telemetry"
	"moviehub-cli/tui"
)

func newBookCmd(env *runtimeEnv) *cobra.Command {
	var showID int
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Pick seats and book a show",
		Long:  `Opens the seat map for a show. Without --show the last show you opened is used, or a list of shows when there is none.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBook(cmd, env, showID)
		},
	}
	cmd.Flags().IntVar(&showID, "show", 0, "show id to book")
	return cmd
}

func runBook(cmd *cobra.Command, env *runtimeEnv, showID int) error {
	logger, closeLog, err := telemetry.OpenLogger(env.cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	if showID <= 0 {
		if last, ok, err := store.LastShow(); err != nil {
			logger.Warn("load recent shows failed", "error", err)
		} else if ok {
			showID = last.ID
		}
	}
	customer, _, err := store.LoadCustomer()
	if err != nil {
		logger.Warn("load customer failed", "error", err)
	}

	client, closeClient := newClient(cmd.Context(), env.cfg, logger)
	defer closeClient()

	model := tui.New(tui.Options{
		Client:   client,
		Logger:   logger,
		ShowID:   showID,
		Customer: customer,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		return errors.Wrap(err, "run booking ui")
	}
	return nil
}
