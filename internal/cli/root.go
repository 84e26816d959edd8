package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hearsay-live/hearsay/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hearsay",
	Short: "Hearsay - live fact-checking for streaming speech",
	Long: `Hearsay listens to a live speech transcript, extracts checkable factual
claims as they are spoken, and verifies them incrementally.

Claims are de-duplicated across restatements, disputed claims jump the
verification queue, and every claim keeps its best-known verdict as the
conversation moves on.

Hearsay orchestrates the checking; the verdicts come from the configured
verification model and should be read accordingly.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hearsay v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.hearsay/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.hearsay")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match HEARSAY_*
	viper.SetEnvPrefix("HEARSAY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, overlaid with
// whatever the config file / environment provide.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetString("llm.api_key"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := viper.GetDuration("llm.timeout"); v > 0 {
		cfg.LLM.Timeout = v
	}
	if viper.IsSet("llm.max_tokens") {
		cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	}
	if viper.IsSet("llm.requests_per_second") {
		cfg.LLM.RequestsPerSecond = viper.GetFloat64("llm.requests_per_second")
	}
	if viper.IsSet("llm.burst") {
		cfg.LLM.Burst = viper.GetInt("llm.burst")
	}

	if viper.IsSet("pipeline.match_threshold") {
		cfg.Pipeline.MatchThreshold = viper.GetFloat64("pipeline.match_threshold")
	}
	if viper.IsSet("pipeline.duplicate_threshold") {
		cfg.Pipeline.DuplicateThreshold = viper.GetFloat64("pipeline.duplicate_threshold")
	}
	if v := viper.GetDuration("pipeline.freshness_ttl"); v > 0 {
		cfg.Pipeline.FreshnessTTL = v
	}
	if v := viper.GetDuration("pipeline.context_window"); v > 0 {
		cfg.Pipeline.ContextWindow = v
	}
	if viper.IsSet("pipeline.min_claim_length") {
		cfg.Pipeline.MinClaimLength = viper.GetInt("pipeline.min_claim_length")
	}
	if v := viper.GetDuration("pipeline.base_delay"); v > 0 {
		cfg.Pipeline.BaseDelay = v
	}
	if v := viper.GetDuration("pipeline.sentence_end_delay"); v > 0 {
		cfg.Pipeline.SentenceEndDelay = v
	}
	if v := viper.GetDuration("pipeline.trailing_num_delay"); v > 0 {
		cfg.Pipeline.TrailingNumDelay = v
	}
	if v := viper.GetDuration("pipeline.continuation_delay"); v > 0 {
		cfg.Pipeline.ContinuationDelay = v
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}

	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}
	if viper.IsSet("server.max_message_bytes") {
		cfg.Server.MaxMessageBytes = viper.GetInt64("server.max_message_bytes")
	}
	if viper.IsSet("server.fragments_per_second") {
		cfg.Server.FragmentsPerSecond = viper.GetFloat64("server.fragments_per_second")
	}

	cfg.Output.Verbose = viper.GetBool("output.verbose") || verbose

	// API key falls back to the conventional env var.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg
}

// newLogger builds the process logger.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger.Sugar(), nil
}
