package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ppiankov/claimguard/internal/pipeline"
	"github.com/spf13/cobra"
)

var validateTimeout time.Duration

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that each verification component is operational",
	Long: `Validate probes every component of the verification core and reports
its status: claim extractor, query builder, search providers, scorer,
and an end-to-end smoke verification.

A missing Serper API key reports the provider as unavailable; the
DuckDuckGo fallback keeps the pipeline usable without it.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().DurationVar(&validateTimeout, "timeout", 30*time.Second, "validation timeout")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()

	cfg := buildConfig()
	p := pipeline.New(cfg)

	status := p.Validate(ctx)

	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := false
	for _, name := range names {
		mark := "✓"
		if !status[name] {
			mark = "✗"
			if name != "serper" {
				failed = true
			}
		}
		fmt.Printf("  %s %s\n", mark, name)
	}

	if failed {
		return fmt.Errorf("one or more components failed validation")
	}
	return nil
}
