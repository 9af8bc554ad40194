package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/strideware/fitmatch/internal/ai"
	"github.com/strideware/fitmatch/internal/scoring"
)

const (
	app = "fitmatch"
)

type Config struct {
	CatalogPath string     `mapstructure:"catalog-path"`
	Category    string     `mapstructure:"category"`
	AnswersFile string     `mapstructure:"answers-file"`
	AI          *ai.Config `mapstructure:"ai"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "fitmatch matches a quiz-derived runner profile against a shoe catalog and returns a ranked, explained short-list",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is fitmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// We can't proceed if an explicitly named config file parsed with error.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")
	viper.SetConfigType("yaml")

	// The default config file is optional: every setting has a flag or default.
	_ = viper.ReadInConfig()
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.CatalogPath == "" {
		config.CatalogPath = "fitmatch.db"
	}
	return config, nil
}

// getWeights starts from the default weight table and merges any overrides
// from the weights config section on top.
func getWeights() (scoring.Weights, error) {
	weights := scoring.DefaultWeights()
	if viper.IsSet("weights") {
		if err := viper.UnmarshalKey("weights", &weights); err != nil {
			return weights, err
		}
	}
	return weights, nil
}
