package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hearsay-live/hearsay/internal/cache"
	"github.com/hearsay-live/hearsay/internal/extract"
	"github.com/hearsay-live/hearsay/internal/llm"
	"github.com/hearsay-live/hearsay/internal/pipeline"
	"github.com/hearsay-live/hearsay/internal/server"
	"github.com/hearsay-live/hearsay/internal/verify"
)

var (
	listenAddr          string
	llmProvider         string
	llmModel            string
	heuristicExtraction bool
	noCache             bool
)

// listenCmd runs the websocket session server
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Run the live fact-checking session server",
	Long: `Listen serves the websocket session endpoint. Clients stream finalized
transcript text in and receive claim-state updates out; each connection
gets its own pipeline, queue, and claim registry.

Requires an LLM provider for verification. Extraction uses the same
provider unless --heuristic-extraction is set.`,
	RunE: runListen,
}

func init() {
	listenCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (default :8787)")
	listenCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai)")
	listenCmd.Flags().StringVar(&llmModel, "llm-model", "", "model name")
	listenCmd.Flags().BoolVar(&heuristicExtraction, "heuristic-extraction", false, "use keyword heuristics instead of the LLM for claim extraction")
	listenCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the verdict cache")
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if listenAddr != "" {
		cfg.Server.Addr = listenAddr
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if cfg.LLM.Provider == "" {
		return fmt.Errorf("verification needs an LLM provider; set --llm-provider or llm.provider in the config")
	}

	log, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	var extractor extract.Extractor
	if heuristicExtraction {
		extractor = extract.NewHeuristicExtractor(cfg.Pipeline.MinClaimLength)
	} else {
		extractor = extract.NewLLMExtractor(client, cfg.LLM)
	}

	var checker verify.Checker = verify.NewLLMChecker(client, cfg.LLM)
	if cfg.Cache.Enabled {
		store := cache.NewMemory(cfg.Cache.TTL, cfg.Cache.TTL)
		checker = verify.NewCachedChecker(checker, store, cfg.Cache.TTL)
	}

	factory := func() *pipeline.Pipeline {
		return pipeline.New(cfg, extractor, checker, log)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, factory, log)
	return srv.Run(ctx)
}
