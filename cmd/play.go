package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/priyad/mathventure/internal/adaptive"
	"github.com/priyad/mathventure/internal/app"
	"github.com/priyad/mathventure/internal/config"
	"github.com/priyad/mathventure/internal/llm"
	"github.com/priyad/mathventure/internal/problemgen"
	"github.com/priyad/mathventure/internal/screen"
	sessionscreen "github.com/priyad/mathventure/internal/screens/session"
	"github.com/priyad/mathventure/internal/screens/welcome"
	"github.com/priyad/mathventure/internal/session"
	"github.com/priyad/mathventure/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the store, prepares the difficulty engine and problem
// generator, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(resolveDBPath(cmd))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	model, scaler, err := loadOrTrainModel(cfg)
	if err != nil {
		return fmt.Errorf("prepare model: %w", err)
	}
	engine := adaptive.NewEngine(&model, scaler, adaptive.Config{
		ConfidenceThreshold: cfg.Adaptive.ConfidenceThreshold,
	})

	// Story framing is optional. Without a provider the game falls back
	// to bare expressions.
	var gen problemgen.Generator = problemgen.NewLocal()
	if cfg.LLM.Enabled {
		provider, err := buildProvider(cmd, cfg, st)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Word problems will be unavailable.")
		} else {
			pcfg := problemgen.DefaultConfig()
			if len(cfg.LLM.Themes) > 0 {
				pcfg.Themes = cfg.LLM.Themes
			}
			gen = problemgen.NewWordProblem(problemgen.NewLocal(), provider, pcfg)
		}
	}

	factory := welcome.SessionFactory(func(player string, difficulty int) screen.Screen {
		game := session.New(session.Config{
			Player:          player,
			Problems:        cfg.Session.Problems,
			AdaptAfter:      cfg.Session.AdaptAfter,
			Window:          cfg.Session.Window,
			StartDifficulty: difficulty,
		}, engine, gen, st)
		return sessionscreen.New(game)
	})

	return app.Run(welcome.New(cfg.Session.Player, factory))
}

// loadOrTrainModel reads persisted parameters, training and saving a fresh
// set when no valid model file exists.
func loadOrTrainModel(cfg config.Config) (adaptive.Model, adaptive.Scaler, error) {
	path := config.DefaultModelPath()

	model, scaler, err := adaptive.LoadModel(path)
	if err == nil {
		return model, scaler, nil
	}

	tcfg := trainerConfig(cfg)
	result := adaptive.Train(tcfg)

	// Persisting is best effort; the in-memory parameters still work.
	if err := adaptive.SaveModel(path, result.Model, result.Scaler); err != nil {
		fmt.Fprintln(os.Stderr, "could not save model:", err)
	}
	return result.Model, result.Scaler, nil
}

// trainerConfig maps the app configuration onto the trainer.
func trainerConfig(cfg config.Config) adaptive.TrainerConfig {
	tcfg := adaptive.DefaultTrainerConfig()
	tcfg.WindowSize = cfg.Session.Window
	tcfg.LearningRate = cfg.Adaptive.LearningRate
	tcfg.Epochs = cfg.Adaptive.Epochs
	tcfg.Seed = cfg.Adaptive.Seed
	return tcfg
}

// buildProvider constructs the LLM provider, letting the config file pick
// the backend and the environment supply credentials.
func buildProvider(cmd *cobra.Command, cfg config.Config, logger llm.RequestLogger) (llm.Provider, error) {
	ctx := cmd.Context()

	if cfg.LLM.Provider != "" {
		lcfg := llm.ConfigFromEnv()
		lcfg.Provider = cfg.LLM.Provider
		if err := lcfg.Validate(); err != nil {
			return nil, err
		}
		return llm.NewProvider(ctx, lcfg, logger)
	}

	return llm.NewProviderFromEnv(ctx, logger)
}
