package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/priyad/mathventure/internal/adaptive"
	"github.com/priyad/mathventure/internal/config"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Retrain the difficulty model and save it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = config.DefaultModelPath()
		}

		tcfg := trainerConfig(cfg)
		fmt.Printf("Training on synthetic cohorts (seed %d, %d epochs)...\n", tcfg.Seed, tcfg.Epochs)

		result := adaptive.Train(tcfg)
		if err := adaptive.SaveModel(output, result.Model, result.Scaler); err != nil {
			return fmt.Errorf("save model: %w", err)
		}

		fmt.Printf("Trained on %d samples, accuracy %.1f%%\n", result.Samples, result.TrainAccuracy*100)
		for class, name := range []string{"decrease", "stay", "increase"} {
			fmt.Printf("  %-8s bias %+.4f  weights %v\n", name, result.Model.Bias[class], result.Model.Weights[class])
		}
		fmt.Println("Saved to", output)
		return nil
	},
}

func init() {
	trainCmd.Flags().StringP("output", "o", "", "Destination for the model file (default: XDG data dir)")
}
