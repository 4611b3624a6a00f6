package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/company-profiler/internal/cache"
	"github.com/jonathan/company-profiler/internal/config"
	"github.com/jonathan/company-profiler/internal/llm"
	"github.com/jonathan/company-profiler/internal/logos"
	"github.com/jonathan/company-profiler/internal/observability"
	"github.com/jonathan/company-profiler/internal/pipeline"
)

var researchCmd = &cobra.Command{
	Use:   "research [url]",
	Short: "Research a company from its website",
	Long: `Researches a company end-to-end: site mapping, page selection, scraping,
logo search, and structured extraction. Prints the profile when done.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResearchCmd,
}

var (
	researchConfigPath string
	researchMaxPages   int
	researchAPIKey     string
	researchUseBrowser bool
	researchVerbose    bool
	researchRefresh    bool
	researchMore       bool
	researchJSON       bool
)

func init() {
	researchCmd.Flags().StringVar(&researchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	researchCmd.Flags().IntVar(&researchMaxPages, "max-pages", 0, "Maximum candidate pages fetched per run")
	researchCmd.Flags().StringVar(&researchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	researchCmd.Flags().BoolVar(&researchUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	researchCmd.Flags().BoolVarP(&researchVerbose, "verbose", "v", false, "Print detailed debug information")
	researchCmd.Flags().BoolVar(&researchRefresh, "refresh", false, "Ignore the cached result and research again")
	researchCmd.Flags().BoolVar(&researchMore, "more", false, "Continue a previous run from its remaining links")
	researchCmd.Flags().BoolVar(&researchJSON, "json", false, "Print the profile as JSON instead of formatted output")

	rootCmd.AddCommand(researchCmd)
}

func runResearchCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Target = args[0]
	}

	if cfg.Target == "" {
		return fmt.Errorf("a target URL is required (argument, --config, or config file)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	runner, _, client, err := buildRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	printer := observability.NewPrinter(os.Stdout)
	opts := pipeline.RunOptions{
		TargetURL:  cfg.Target,
		MaxPages:   cfg.MaxPages,
		Refresh:    researchRefresh,
		Verbose:    cfg.Verbose,
		OnProgress: printer.PrintEvent,
	}

	run := runner.Run
	if researchMore {
		run = runner.ScanMore
	}
	profile, err := run(ctx, opts)
	if err != nil {
		return err
	}

	if researchJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(profile)
	}

	printer.PrintCompanyProfile(profile)
	printer.PrintDescription(profile)
	return nil
}

// loadMergedConfig builds the effective configuration: config file, then
// explicit CLI flags, then environment for credentials.
func loadMergedConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if researchConfigPath != "" {
		loaded, err := config.LoadConfig(researchConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if researchVerbose {
			log.Printf("Loaded config from: %s", researchConfigPath)
		}
	}

	if cmd.Flags().Changed("max-pages") {
		cfg.MaxPages = researchMaxPages
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = researchAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = researchUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = researchVerbose
	}

	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildRunner wires the production pipeline from configuration. The image
// searcher is optional; without search credentials logo search is skipped.
func buildRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, *cache.Store, llm.Client, error) {
	client, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var searcher logos.Searcher
	if cfg.SearchAPIKey != "" && cfg.SearchCX != "" {
		google, err := logos.NewGoogleSearcher(ctx, cfg.SearchAPIKey, cfg.SearchCX)
		if err != nil {
			client.Close()
			return nil, nil, nil, err
		}
		searcher = google
	} else if cfg.Verbose {
		log.Printf("[CLI] No search credentials, logo search disabled")
	}

	store := cache.NewStore(time.Duration(cfg.TTLHours) * time.Hour)
	services := pipeline.DefaultServices(client, searcher, store, cfg.UseBrowser, cfg.Verbose)
	return pipeline.NewRunner(services), store, client, nil
}
