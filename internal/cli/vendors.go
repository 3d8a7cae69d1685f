package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vendorstack/agendaq/internal/models"
)

var vendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List known vendors",
	Args:  cobra.NoArgs,
	RunE:  runVendors,
}

var vendorsAddCmd = &cobra.Command{
	Use:   "add <id> <name>",
	Short: "Register or rename a vendor",
	Args:  cobra.ExactArgs(2),
	RunE:  runVendorsAdd,
}

func init() {
	vendorsCmd.AddCommand(vendorsAddCmd)
}

func runVendors(cmd *cobra.Command, args []string) error {
	vendors, err := dbClient.QueryListVendors(context.Background())
	if err != nil {
		return err
	}

	if len(vendors) == 0 {
		fmt.Println("No vendors yet. Use 'agendaq vendors add <id> <name>'.")
		return nil
	}

	for _, v := range vendors {
		fmt.Printf("%-20s %s\n", models.MustRecordIDString(v.ID), v.Name)
	}
	return nil
}

func runVendorsAdd(cmd *cobra.Command, args []string) error {
	id, name := args[0], args[1]
	if err := dbClient.QueryUpsertVendor(context.Background(), id, name); err != nil {
		return err
	}
	fmt.Printf("Vendor %s (%s) saved.\n", id, name)
	return nil
}
