package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vendorstack/agendaq/internal/agenda"
)

var agendaLimit int

var agendaCmd = &cobra.Command{
	Use:   "agenda <vendor>",
	Short: "Print the ranked agenda for a vendor",
	Long: `Print the prioritized meeting agenda for one vendor.

Open blockers, action items, and discussion topics are merged, scored, and
ranked. This is a read-only view; use 'agendaq queue' to work the list.

Examples:
  agendaq agenda acme
  agendaq agenda acme --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: runAgenda,
}

func init() {
	agendaCmd.Flags().IntVarP(&agendaLimit, "limit", "n", 0, "max items (default 20)")
}

func runAgenda(cmd *cobra.Command, args []string) error {
	vendorID := args[0]
	ctx := context.Background()

	if agendaLimit <= 0 {
		agendaLimit = cfg.AgendaLimit
	}

	assembler := agenda.NewAssembler(dbClient)
	items, err := assembler.Rank(ctx, vendorID, agendaLimit)
	if err != nil {
		return fmt.Errorf("rank agenda: %w", err)
	}

	if len(items) == 0 {
		fmt.Printf("No open items for %s.\n", vendorID)
		return nil
	}

	fmt.Printf("Agenda for %s (%d items):\n\n", vendorID, len(items))
	for _, item := range items {
		severity := "-"
		if item.Severity != "" {
			severity = strings.ToUpper(string(item.Severity))
		}
		fmt.Printf("%3d. [%6.1f] %-8s %-16s %s\n",
			item.Rank, item.Score, item.Priority, item.EntityType, item.Title)
		if verbose {
			fmt.Printf("       severity=%s age=%dd escalations=%d\n",
				severity, item.AgeDays, item.EscalationCount)
			if item.Context != nil && *item.Context != "" {
				fmt.Printf("       %s\n", *item.Context)
			}
		}
	}

	if verbose {
		fmt.Println("\nStore timings:")
		for _, snap := range dbClient.Stats().Snapshot() {
			fmt.Printf("  %-18s %3d calls  avg %6.1fms  max %4dms\n",
				snap.Op, snap.Count, snap.AvgTimeMs, snap.MaxTimeMs)
		}
	}

	return nil
}
