// Package cli implements the docquery command line interface.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docquery/docquery/internal/adapters/driven/ai"
	"github.com/docquery/docquery/internal/adapters/driven/cache/sqlite"
	"github.com/docquery/docquery/internal/adapters/driven/config/file"
	"github.com/docquery/docquery/internal/core/ports/driving"
	"github.com/docquery/docquery/internal/core/services"
	"github.com/docquery/docquery/internal/logger"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

// Persistent flags.
var (
	verbose        bool
	configDir      string
	storageDirFlag string
)

// Wired application state, populated by initApp before any command that
// needs the corpus runs.
var (
	queryService driving.QueryService
	loadStats    services.LoadStats
)

var rootCmd = &cobra.Command{
	Use:   "docquery",
	Short: "Semantic search over local markdown documentation",
	Long: `docquery indexes a directory of markdown documentation into
heading-scoped chunks, embeds them, and answers semantic search
queries from the command line, a TUI, or an MCP server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initApp(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.docquery)")
	rootCmd.PersistentFlags().StringVar(&storageDirFlag, "storage-dir", "", "markdown storage directory")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initApp wires config, embedding provider, cache, and corpus into the
// query service. Startup never fails on a missing or unreachable
// embedding provider; listing operations keep working.
func initApp(ctx context.Context) error {
	if queryService != nil {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	storageDir := storageDirFlag
	if storageDir == "" {
		storageDir = file.ResolveStorageDir(store)
	}

	settings := file.ResolveEmbeddingSettings(store)
	embedder, err := ai.CreateAndValidateEmbeddingService(settings)
	if err != nil {
		logger.Warn("Embedding provider unavailable: %v", err)
		logger.Warn("Search will return no results; document listings still work")
		embedder = nil
	}

	cachePath := filepath.Join(filepath.Dir(store.Path()), "cache.db")
	cacheStore := sqlite.NewStore(cachePath)

	loader := services.NewCorpusLoader(services.LoaderConfig{StorageDir: storageDir}, cacheStore, embedder)
	corpus := loader.Load(ctx)
	loadStats = loader.Stats()

	if loadStats.Degraded {
		logger.Warn("Corpus loaded without embeddings (%d chunks)", loadStats.Chunks)
	}

	search := services.NewSearchService(corpus, embedder)
	queryService = services.NewQueryService(corpus, search)
	return nil
}
