// tickersense is a stock news sentiment analysis tool.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/tickersense/api"
	"github.com/seenimoa/tickersense/internal/analyzer"
	"github.com/seenimoa/tickersense/internal/common"
	"github.com/seenimoa/tickersense/internal/config"
	"github.com/seenimoa/tickersense/internal/datasource"
	"github.com/seenimoa/tickersense/internal/llm"
	"github.com/seenimoa/tickersense/internal/orchestrator"
	"github.com/seenimoa/tickersense/internal/sentiment"
	"github.com/seenimoa/tickersense/internal/ticker"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tickersense",
	Short: "tickersense analyzes stock news sentiment",
	Long: `tickersense resolves a stock ticker to its company and aliases,
fetches recent news across multiple sources with prioritized queries,
filters for relevance, and computes a weighted sentiment assessment.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		common.InitLogger(cfg.Logging.Level, cfg.Logging.Outputs, cfg.Logging.File)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	analyzeCmd.Flags().Bool("json", false, "output as JSON")
	fetchCmd.Flags().Bool("json", false, "output as JSON")
	resolveCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(serveCmd)
}

// buildPipeline assembles the analyzer stack from the loaded config.
func buildPipeline() (*ticker.Resolver, *orchestrator.Orchestrator, *analyzer.Analyzer) {
	yahoo := datasource.NewYahoo()

	var sources []datasource.ArticleSource
	sources = append(sources, yahoo)
	if len(cfg.News.RSSFeeds) > 0 {
		feeds := make([]datasource.RSSFeed, len(cfg.News.RSSFeeds))
		for i, f := range cfg.News.RSSFeeds {
			feeds[i] = datasource.RSSFeed{Name: f.Name, URL: f.URL}
		}
		sources = append(sources, datasource.NewRSSWithFeeds(feeds))
	} else {
		sources = append(sources, datasource.NewRSS())
	}

	resolver := ticker.NewResolver(yahoo)
	orch := orchestrator.New(resolver, datasource.NewMultiSource(sources...))

	var scorer sentiment.SemanticScorer
	if cfg.Scorer.APIKey != "" || cfg.Scorer.Provider == llm.ProviderOllama {
		provider, err := llm.New(llm.Config{
			Provider:    cfg.Scorer.Provider,
			APIKey:      cfg.Scorer.APIKey,
			BaseURL:     cfg.Scorer.BaseURL,
			Model:       cfg.Scorer.Model,
			Temperature: cfg.Scorer.Temperature,
			Timeout:     time.Duration(cfg.Scorer.TimeoutSec) * time.Second,
		})
		if err != nil {
			common.GetLogger().Warn().Err(err).Msg("scorer setup failed, using lexicon fallback")
		} else {
			scorer = sentiment.NewLLMScorer(provider, time.Duration(cfg.Scorer.TimeoutSec)*time.Second)
		}
	}

	a := analyzer.New(resolver, orch, sentiment.NewEngine(scorer), cfg.Analysis.MinRelevance, cfg.Analysis.RelevanceSchedule)
	return resolver, orch, a
}

func fetchOptions() orchestrator.Options {
	return orchestrator.Options{
		MinArticles:    cfg.Analysis.MinArticles,
		TargetArticles: cfg.Analysis.TargetArticles,
		MinRelevance:   cfg.Analysis.MinRelevance,
	}
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tickersense %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "Fetch news and compute sentiment for a ticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, a := buildPipeline()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		result, err := a.FetchAndAnalyze(ctx, args[0], fetchOptions())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(result)
		}

		fmt.Printf("Sentiment for %s\n", result.Symbol)
		fmt.Printf("  %s\n\n", result.Fetch.Message)
		s := result.Sentiment
		fmt.Printf("  Label:      %s\n", s.SentimentLabel)
		fmt.Printf("  Score:      %+.2f\n", s.SentimentScore)
		fmt.Printf("  Confidence: %.0f%%\n", s.Confidence*100)
		fmt.Printf("  Quality:    %s (%d articles)\n", s.DataQuality, s.ArticlesAnalyzed)
		if len(s.PositiveIndicators) > 0 {
			fmt.Printf("  Positive:   %s\n", strings.Join(s.PositiveIndicators, ", "))
		}
		if len(s.NegativeIndicators) > 0 {
			fmt.Printf("  Negative:   %s\n", strings.Join(s.NegativeIndicators, ", "))
		}
		fmt.Printf("\n  %s\n", s.Analysis)
		return nil
	},
}

// --- Fetch Command ---

var fetchCmd = &cobra.Command{
	Use:   "fetch [ticker]",
	Short: "Fetch relevant news articles for a ticker without sentiment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, orch, _ := buildPipeline()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		result, err := orch.FetchWithEscalation(ctx, args[0], fetchOptions(), cfg.Analysis.RelevanceSchedule)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(result)
		}

		fmt.Printf("%s\n\n", result.Message)
		for i, a := range result.Articles {
			fmt.Printf("%2d. %s\n", i+1, a.Title)
			if a.Source != "" {
				fmt.Printf("    %s", a.Source)
				if !a.PublishedAt.IsZero() {
					fmt.Printf(" (%s)", a.PublishedAt.Format("2006-01-02 15:04"))
				}
				fmt.Println()
			}
			if a.URL != "" {
				fmt.Printf("    %s\n", a.URL)
			}
		}
		return nil
	},
}

// --- Resolve Command ---

var resolveCmd = &cobra.Command{
	Use:   "resolve [ticker]",
	Short: "Resolve a ticker to its company record and aliases",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, _, _ := buildPipeline()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		rec, err := resolver.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(rec)
		}

		fmt.Printf("Symbol:  %s\n", rec.Symbol)
		fmt.Printf("Name:    %s\n", rec.DisplayName())
		fmt.Printf("Aliases: %s\n", strings.Join(rec.Aliases, ", "))
		return nil
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		return srv.ListenAndServe(addr)
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
