package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vendorstack/agendaq/internal/models"
	"github.com/vendorstack/agendaq/internal/parser"
)

var seedCmd = &cobra.Command{
	Use:   "seed <dir>",
	Short: "Import work items from Markdown files",
	Long: `Walk a directory of Markdown files and create one work item per file.

Each file carries YAML frontmatter and optional "Context"/"Impact" and "Ask"
sections:

  ---
  kind: blocker          # blocker | action_item | discussion_topic
  vendor: acme
  priority: high
  raised: 2026-07-01     # optional, defaults to now
  due: 2026-09-15        # action items only
  owner: sam
  escalations: 2
  ---
  # Prod API returns 500s under load

  ## Impact
  Checkout intermittently fails during peak hours.

  ## Ask
  Dedicated capacity or a fix timeline.

Vendors referenced by seed files are registered automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx := context.Background()

	seenVendors := make(map[string]bool)
	var created, skipped int

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		if err := seedFile(ctx, path, seenVendors); err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", path, err)
			skipped++
			return nil
		}
		created++
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}

	fmt.Printf("Seeded %d items (%d skipped) across %d vendors.\n", created, skipped, len(seenVendors))
	return nil
}

func seedFile(ctx context.Context, path string, seenVendors map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc, err := parser.ParseMarkdown(string(data))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	vendor := doc.GetFrontmatterString("vendor")
	if vendor == "" {
		return fmt.Errorf("missing vendor in frontmatter")
	}
	if doc.Title == "" {
		return fmt.Errorf("missing title")
	}

	if !seenVendors[vendor] {
		name := doc.GetFrontmatterString("vendor_name")
		if name == "" {
			name = vendor
		}
		if err := dbClient.QueryUpsertVendor(ctx, vendor, name); err != nil {
			return fmt.Errorf("upsert vendor: %w", err)
		}
		seenVendors[vendor] = true
	}

	raisedAt, err := frontmatterDate(doc, "raised")
	if err != nil {
		return err
	}

	ask := sectionPtr(doc, "Ask")
	owner := optional(doc.GetFrontmatterString("owner"))
	project := optional(doc.GetFrontmatterString("project"))
	priority := doc.GetFrontmatterString("priority")
	escalations := doc.GetFrontmatterInt("escalations")

	kind := doc.GetFrontmatterString("kind")
	switch kind {
	case "blocker":
		impact := sectionPtr(doc, "Impact")
		if impact == nil {
			impact = sectionPtr(doc, "Context")
		}
		_, err = dbClient.CreateBlocker(ctx, models.BlockerInput{
			Vendor:          vendor,
			Title:           doc.Title,
			Impact:          impact,
			Ask:             ask,
			Priority:        priority,
			RaisedAt:        raisedAt,
			EscalationCount: escalations,
			Owner:           owner,
			Project:         project,
		})

	case "action_item", "action":
		due, derr := frontmatterDate(doc, "due")
		if derr != nil {
			return derr
		}
		_, err = dbClient.CreateActionItem(ctx, models.ActionItemInput{
			Vendor:          vendor,
			Title:           doc.Title,
			Context:         sectionPtr(doc, "Context"),
			Ask:             ask,
			Priority:        priority,
			RaisedAt:        raisedAt,
			EscalationCount: escalations,
			Owner:           owner,
			Project:         project,
			DueDate:         due,
		})

	case "discussion_topic", "topic", "":
		_, err = dbClient.CreateTopic(ctx, models.TopicInput{
			Vendor:          vendor,
			Title:           doc.Title,
			Context:         sectionPtr(doc, "Context"),
			Ask:             ask,
			Priority:        priority,
			RaisedAt:        raisedAt,
			EscalationCount: escalations,
			Owner:           owner,
			Project:         project,
			Severity:        doc.GetFrontmatterString("severity"),
		})

	default:
		return fmt.Errorf("unknown kind %q", kind)
	}

	return err
}

// frontmatterDate reads a date value. yaml.v3 decodes unquoted dates into
// time.Time already; quoted ones arrive as strings.
func frontmatterDate(doc *parser.MarkdownDoc, key string) (*time.Time, error) {
	switch v := doc.Frontmatter[key].(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s date %q: %w", key, v, err)
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("invalid %s date %v", key, v)
	}
}

func sectionPtr(doc *parser.MarkdownDoc, heading string) *string {
	return optional(doc.SectionContent(heading))
}
