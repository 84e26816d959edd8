package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hearsay-live/hearsay/internal/llm"
	"github.com/hearsay-live/hearsay/internal/source"
	"github.com/hearsay-live/hearsay/internal/verify"
)

var checkFresh bool

// checkCmd verifies a single claim from the command line
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Verify a single claim",
	Long: `Check runs one claim through the verifier and prints the verdict.

Useful for trying out a model configuration before pointing a live
transcript at it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "model name")
	checkCmd.Flags().BoolVar(&checkFresh, "fresh", true, "bypass any cached verdict")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if cfg.LLM.Provider == "" {
		return fmt.Errorf("verification needs an LLM provider; set --llm-provider or llm.provider in the config")
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	checker := verify.NewLLMChecker(client, cfg.LLM)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout)
	defer cancel()

	claim := strings.Join(args, " ")
	result, err := checker.Check(ctx, verify.CheckRequest{Claim: claim, Fresh: checkFresh})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	fmt.Printf("Claim:      %s\n", claim)
	fmt.Printf("Verdict:    %s\n", result.Verdict)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	if len(result.EvidenceFor) > 0 {
		fmt.Println("\nEvidence for:")
		for _, e := range result.EvidenceFor {
			fmt.Printf("  - %s\n", e)
		}
	}
	if len(result.EvidenceAgainst) > 0 {
		fmt.Println("\nEvidence against:")
		for _, e := range result.EvidenceAgainst {
			fmt.Printf("  - %s\n", e)
		}
	}
	if len(result.Sources) > 0 {
		classifier := source.NewClassifier(nil)
		fmt.Println("\nSources:")
		for _, s := range result.Sources {
			fmt.Printf("  - %s (%s)\n", s, classifier.Classify(s))
		}
	}
	return nil
}
