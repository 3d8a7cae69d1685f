package cli

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vendorstack/agendaq/internal/agenda"
	"github.com/vendorstack/agendaq/internal/config"
)

var queueLimit int

var queueCmd = &cobra.Command{
	Use:   "queue <vendor>",
	Short: "Work a vendor's agenda interactively",
	Long: `Open the interactive escalation queue for one vendor.

The queue shows the ranked agenda and applies every action to the local
order immediately; persistence writes run in the background and are never
waited on.

Keys:
  up/k, down/j   move selection
  K or +         escalate (swap up, adopt higher bracket, count +1)
  J or -         de-escalate (swap down, may lower bracket)
  r              resolve        d d    delete (press twice)
  a              add topic      e      edit item
  x              export table   g      refresh from store
  q              quit`,
	Args: cobra.ExactArgs(1),
	RunE: runQueue,
}

func init() {
	queueCmd.Flags().IntVarP(&queueLimit, "limit", "n", 0, "max items (default 20)")
}

func runQueue(cmd *cobra.Command, args []string) error {
	vendorID := args[0]

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("queue needs a terminal; use 'agendaq agenda %s' for plain output", vendorID)
	}

	// File-only logger: the TUI owns the screen.
	logger, cleanup := config.SetupFileLogger(cfg.LogFile, cfg.LogLevel)
	defer func() { _ = cleanup() }()

	if queueLimit <= 0 {
		queueLimit = cfg.AgendaLimit
	}

	// Prime the queue with a fresh ranked fetch before entering the UI.
	assembler := agenda.NewAssembler(dbClient)
	items, err := assembler.Rank(context.Background(), vendorID, queueLimit)
	if err != nil {
		return fmt.Errorf("rank agenda: %w", err)
	}

	model := newQueueModel(dbClient, assembler, vendorID, queueLimit, items, logger)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("queue UI error: %w", err)
	}
	return nil
}
