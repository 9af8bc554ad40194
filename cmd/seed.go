package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/strideware/fitmatch/internal/catalog"
	"github.com/strideware/fitmatch/internal/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a catalog seed file (JSON array of shoes) into the catalog store",
	Run: func(cmd *cobra.Command, _ []string) {
		runSeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringP("file", "f", "", "path to the seed JSON file")
	seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	path, _ := cmd.Flags().GetString("file")

	shoes, err := catalog.LoadSeed(path)
	if err != nil {
		zlog.Fatal("loading seed file", zap.Error(err), zap.String("path", path))
	}

	store, err := catalog.OpenSQLite(config.CatalogPath)
	if err != nil {
		zlog.Fatal("opening catalog store", zap.Error(err), zap.String("path", config.CatalogPath))
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		zlog.Fatal("ensuring catalog schema", zap.Error(err))
	}

	if err := store.UpsertMany(ctx, shoes); err != nil {
		zlog.Fatal("inserting seed entries", zap.Error(err))
	}

	total, err := store.CountShoes(ctx)
	if err != nil {
		zlog.Fatal("counting catalog entries", zap.Error(err))
	}

	zlog.Info("catalog seeded",
		zap.Int("inserted", len(shoes)),
		zap.Int("total", total),
		zap.String("store", config.CatalogPath),
	)
}
