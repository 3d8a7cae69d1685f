package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vendorstack/agendaq/internal/agenda"
	"github.com/vendorstack/agendaq/internal/queue"
)

var (
	exportLimit int
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export <vendor>",
	Short: "Export the ranked agenda as a shareable table",
	Long: `Export the vendor's current ranked agenda as comma-separated lines
suitable for pasting into a meeting doc. Missing optional fields render
as an em dash.

Examples:
  agendaq export acme
  agendaq export acme --out acme-agenda.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", 0, "max items (default 20)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	vendorID := args[0]

	if exportLimit <= 0 {
		exportLimit = cfg.AgendaLimit
	}

	items, err := agenda.NewAssembler(dbClient).Rank(context.Background(), vendorID, exportLimit)
	if err != nil {
		return fmt.Errorf("rank agenda: %w", err)
	}

	table := queue.RenderTable(items)

	if exportOut == "" {
		fmt.Print(table)
		return nil
	}

	if err := os.WriteFile(exportOut, []byte(table), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Exported %d items to %s\n", len(items), exportOut)
	return nil
}
