package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vendorstack/agendaq/internal/models"
)

var (
	addType     string
	addTitle    string
	addContext  string
	addAsk      string
	addPriority string
	addOwner    string
	addProject  string
	addDue      string
)

var addCmd = &cobra.Command{
	Use:   "add <vendor>",
	Short: "Add a work item for a vendor",
	Long: `Add a blocker, action item, or discussion topic for one vendor.

New items start open; unrecognized or missing priorities become medium.

Examples:
  agendaq add acme --title "Renewal terms"
  agendaq add acme --type blocker --title "Prod API 500s" --priority critical
  agendaq add acme --type action --title "Send usage report" --due 2026-09-15`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addType, "type", "t", "topic", "item type: blocker, action, or topic")
	addCmd.Flags().StringVar(&addTitle, "title", "", "item title (required)")
	addCmd.Flags().StringVar(&addContext, "context", "", "background context (impact for blockers)")
	addCmd.Flags().StringVar(&addAsk, "ask", "", "what we need from the vendor")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "priority: critical, high, medium, low")
	addCmd.Flags().StringVar(&addOwner, "owner", "", "owning person")
	addCmd.Flags().StringVar(&addProject, "project", "", "related project")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date for action items (YYYY-MM-DD)")
	_ = addCmd.MarkFlagRequired("title")
}

func runAdd(cmd *cobra.Command, args []string) error {
	vendorID := args[0]
	ctx := context.Background()

	var due *time.Time
	if addDue != "" {
		t, err := time.Parse("2006-01-02", addDue)
		if err != nil {
			return fmt.Errorf("invalid --due %q: %w", addDue, err)
		}
		due = &t
	}

	switch addType {
	case "blocker":
		b, err := dbClient.CreateBlocker(ctx, models.BlockerInput{
			Vendor:   vendorID,
			Title:    addTitle,
			Impact:   optional(addContext),
			Ask:      optional(addAsk),
			Priority: addPriority,
			Owner:    optional(addOwner),
			Project:  optional(addProject),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added blocker %s for %s\n", models.MustRecordIDString(b.ID), vendorID)

	case "action", "action_item":
		a, err := dbClient.CreateActionItem(ctx, models.ActionItemInput{
			Vendor:   vendorID,
			Title:    addTitle,
			Context:  optional(addContext),
			Ask:      optional(addAsk),
			Priority: addPriority,
			Owner:    optional(addOwner),
			Project:  optional(addProject),
			DueDate:  due,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added action item %s for %s\n", models.MustRecordIDString(a.ID), vendorID)

	case "topic", "discussion_topic":
		if due != nil {
			return fmt.Errorf("--due only applies to action items")
		}
		t, err := dbClient.CreateTopic(ctx, models.TopicInput{
			Vendor:   vendorID,
			Title:    addTitle,
			Context:  optional(addContext),
			Ask:      optional(addAsk),
			Priority: addPriority,
			Owner:    optional(addOwner),
			Project:  optional(addProject),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added topic %s for %s\n", models.MustRecordIDString(t.ID), vendorID)

	default:
		return fmt.Errorf("unknown --type %q (want blocker, action, or topic)", addType)
	}

	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
