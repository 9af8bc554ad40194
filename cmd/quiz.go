package cmd

import (
	"encoding/json"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/strideware/fitmatch/internal/logger"
)

const promptDone = "done"

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Answer the fit quiz interactively and save the answers file for recommend",
	Run: func(cmd *cobra.Command, _ []string) {
		runQuiz(cmd)
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)

	quizCmd.Flags().StringP("out", "o", "fitmatch-answers.json", "file to write the raw answers to")
}

func runQuiz(cmd *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	answers := map[string]any{}

	single := func(key, label string, items []string) {
		prompt := promptui.Select{Label: label, Items: items}
		_, value, err := prompt.Run()
		if err != nil {
			zlog.Fatal("quiz aborted", zap.Error(err))
		}
		if value != "skip" {
			answers[key] = value
		}
	}

	multi := func(key, label string, items []string, limit int) {
		var picked []string
		for len(picked) < limit {
			remaining := []string{promptDone}
			for _, item := range items {
				if !containsString(picked, item) {
					remaining = append(remaining, item)
				}
			}
			prompt := promptui.Select{Label: label, Items: remaining}
			_, value, err := prompt.Run()
			if err != nil {
				zlog.Fatal("quiz aborted", zap.Error(err))
			}
			if value == promptDone {
				break
			}
			picked = append(picked, value)
		}
		if len(picked) > 0 {
			answers[key] = picked
		}
	}

	single("gender", "Which catalog do you shop?", []string{"men", "women", "skip"})
	single("terrain", "Where do you mostly run?", []string{"road", "trail", "track", "treadmill", "mixed"})
	single("distance", "What distances are you training for?", []string{"short", "mid", "long", "skip"})
	single("budget", "What is your budget?", []string{"under_100", "100_150", "150_200", "150_plus", "any"})
	single("experience", "How experienced a runner are you?", []string{"beginner", "intermediate", "advanced", "skip"})
	multi("issues", "Any foot issues? (pick all that apply)", []string{
		"wide_feet", "narrow_feet", "flat_feet", "high_arches",
		"overpronation", "underpronation", "plantar_fasciitis",
		"shin_splints", "knee_pain", "achilles_tendinitis",
	}, 5)
	multi("priorities", "What matters most? (up to 3)", []string{
		"speed", "cushion", "stability", "durability", "value", "long_runs",
	}, 3)

	out, _ := cmd.Flags().GetString("out")
	if err := writeAnswers(out, answers); err != nil {
		zlog.Fatal("writing answers file", zap.Error(err))
	}

	zlog.Info("answers saved",
		zap.String("file", out),
		zap.Int("answered", len(answers)),
		zap.String("next", "run 'fitmatch recommend --answers "+out+"'"),
	)
}

func writeAnswers(path string, answers map[string]any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(answers)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
