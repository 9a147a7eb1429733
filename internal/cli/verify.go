package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/claimguard/internal/agent"
	"github.com/ppiankov/claimguard/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	noReflect        bool
	noCache          bool
	verifyTimeout    time.Duration
	maxAttempts      int
	confidenceTarget float64
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <text>",
	Short: "Verify a single claim against web search evidence",
	Long: `Verify extracts the core claim from a text, searches the web for
evidence, scores the retrieved snippets against the claim, and emits
a verdict with a confidence score.

By default the bounded reflection loop retries with refined queries
when evidence is sparse or confidence stays below the target.

Example:
  claimguard verify "The volcano erupted in Iceland yesterday."
  claimguard verify --no-reflect "NASA confirmed water on the moon."
  claimguard verify --max-attempts 5 --confidence-target 0.8 "..."`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().BoolVar(&noReflect, "no-reflect", false, "single pass, skip the reflection loop")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the query cache (force fresh searches)")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 60*time.Second, "overall verification timeout")
	verifyCmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "reflection attempt budget (0 uses config)")
	verifyCmd.Flags().Float64Var(&confidenceTarget, "confidence-target", 0, "confidence threshold that ends reflection (0 uses config)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	text := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	if maxAttempts > 0 {
		cfg.Reflection.MaxAttempts = maxAttempts
	}
	if confidenceTarget > 0 {
		cfg.Reflection.ConfidenceTarget = confidenceTarget
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", text)
		fmt.Fprintf(os.Stderr, "Reflection: %v (max %d attempts, target %.2f)\n",
			!noReflect, cfg.Reflection.MaxAttempts, cfg.Reflection.ConfidenceTarget)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.New(cfg)

	var out any
	if noReflect {
		out = p.Run(ctx, text)
	} else {
		controller := agent.NewController(p.Searcher(), cfg.Reflection)
		out = controller.Run(ctx, text)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	return nil
}
