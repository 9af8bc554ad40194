package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/strideware/fitmatch/internal/ai"
	"github.com/strideware/fitmatch/internal/catalog"
	"github.com/strideware/fitmatch/internal/logger"
	"github.com/strideware/fitmatch/internal/recommend"
	"github.com/strideware/fitmatch/internal/scoring"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Score the catalog against a quiz answers file and print the ranked short-list",
	Run: func(cmd *cobra.Command, _ []string) {
		runRecommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("answers", "a", "", "JSON file with the raw quiz answers")
	recommendCmd.Flags().StringP("category", "c", "running", "product category (running or basketball)")
	recommendCmd.Flags().StringP("out", "o", "", "write the result JSON to a file instead of stdout")
	recommendCmd.Flags().Bool("no-persist", false, "skip writing the recommendation audit record")

	viper.BindPFlag("answers-file", recommendCmd.Flags().Lookup("answers"))
	viper.BindPFlag("category", recommendCmd.Flags().Lookup("category"))
}

func runRecommend(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting fitmatch", zap.String("version", version))

	answersFile := config.AnswersFile
	if answersFile == "" {
		zlog.Fatal("answers file is required",
			zap.String("hint", "pass --answers or set answers-file in the configuration file"),
		)
	}

	answers, err := readAnswers(answersFile)
	if err != nil {
		zlog.Fatal("reading quiz answers", zap.Error(err))
	}

	store, err := catalog.OpenSQLite(config.CatalogPath)
	if err != nil {
		zlog.Fatal("opening catalog store", zap.Error(err), zap.String("path", config.CatalogPath))
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		zlog.Fatal("ensuring catalog schema", zap.Error(err))
	}

	snapshot, err := store.ListShoes(ctx, config.Category)
	if err != nil {
		zlog.Fatal("loading catalog snapshot", zap.Error(err))
	}

	zlog.Info("catalog snapshot loaded",
		zap.String("category", config.Category),
		zap.Int("count", snapshot.Len()),
	)

	weights, err := getWeights()
	if err != nil {
		zlog.Fatal("building weight table", zap.Error(err))
	}

	generator, err := ai.New(ctx, config.AI, zlog)
	if err != nil {
		zlog.Warn("building ai provider; refinement disabled", zap.Error(err))
		generator = ai.Disabled{}
	}

	overlay := recommend.NewOverlay(generator, overlayTimeout(config.AI), maxLogLength(config.AI), zlog)
	selector := scoring.NewSelector(weights, zlog)

	var auditStore recommend.Store = store
	if noPersist, _ := cmd.Flags().GetBool("no-persist"); noPersist {
		auditStore = nil
	}

	engine := recommend.NewEngine(selector, overlay, auditStore, zlog)

	result, outcome, err := engine.Recommend(ctx, config.Category, answers, snapshot)
	if err != nil {
		zlog.Fatal("recommendation failed", zap.Error(err))
	}

	if outcome.Applied {
		zlog.Info("ranking refined by provider", zap.String("provider", generator.Name()))
	} else {
		zlog.Info("heuristic ranking used", zap.String("reason", outcome.FallbackReason))
	}

	if err := writeResult(cmd, result); err != nil {
		zlog.Fatal("writing result", zap.Error(err))
	}
}

func readAnswers(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}

	var answers map[string]any
	if err := json.Unmarshal(b, &answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers file: %w", err)
	}
	return answers, nil
}

func writeResult(cmd *cobra.Command, result *recommend.Result) error {
	out := os.Stdout
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func overlayTimeout(cfg *ai.Config) time.Duration {
	if cfg != nil && cfg.TimeoutSeconds > 0 {
		return time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return recommend.DefaultOverlayTimeout
}

func maxLogLength(cfg *ai.Config) int {
	if cfg != nil && cfg.Gemini != nil {
		return cfg.Gemini.MaxLogLength
	}
	return 0
}
