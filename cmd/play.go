package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gridpilot/internal/agent"
	"github.com/xkilldash9x/gridpilot/internal/config"
	"github.com/xkilldash9x/gridpilot/internal/harness"
	"github.com/xkilldash9x/gridpilot/internal/observability"
	"github.com/xkilldash9x/gridpilot/internal/recorder"
	"github.com/xkilldash9x/gridpilot/internal/sim"
)

// newPlayCmd creates and configures the `play` command.
func newPlayCmd() *cobra.Command {
	playCmd := &cobra.Command{
		Use:   "play [game-id]",
		Short: "Plays one game session against the built-in backend",
		Long: `Runs the decision loop for a single session: the agent observes each
frame, decides an action, submits it, and repeats until the game is won,
the action budget runs out, or the process is interrupted. Every received
frame is recorded as a JSON file under the frames directory.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their corresponding Viper keys so command-line
			// flags correctly override values from the config file and
			// environment variables.
			bindings := map[string]string{
				"agent.max_actions":        "max-actions",
				"agent.seed":               "seed",
				"agent.done_on_game_over":  "done-on-game-over",
				"agent.actions_per_second": "rate",
				"recorder.enabled":         "record",
				"recorder.dir":             "frames-dir",
			}
			for key, flag := range bindings {
				if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Use the context passed from Execute (signal-aware).
			ctx := cmd.Context()
			logger := observability.GetLogger()

			// Re-resolve the config now that flags are bound, so overrides
			// apply with the right precedence.
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}

			gameID := uuid.NewString()
			if len(args) > 0 {
				gameID = args[0]
			}

			a, err := agent.New(gameID, agent.NewRandomPolicy(cfg.Agent.Seed),
				agent.WithDoneOnGameOver(cfg.Agent.DoneOnGameOver),
				agent.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			opts := []harness.Option{
				harness.WithMaxActions(cfg.Agent.MaxActions),
				harness.WithActionRate(cfg.Agent.ActionsPerSecond),
				harness.WithLogger(logger),
			}
			if cfg.Recorder.Enabled {
				opts = append(opts, harness.WithObservers(
					recorder.New(cfg.Recorder.Dir, gameID, logger),
				))
			}

			h, err := harness.New(a, sim.New(gameID), opts...)
			if err != nil {
				return err
			}

			logger.Info("Playing session",
				zap.String("game_id", gameID),
				zap.Int("max_actions", cfg.Agent.MaxActions),
				zap.Bool("recording", cfg.Recorder.Enabled),
			)

			result, err := h.Run(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Warn("Session aborted by signal", zap.String("game_id", gameID))
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "game %s finished: state=%s score=%d actions=%d won=%v\n",
				gameID, result.FinalState, result.FinalScore, result.Actions, result.Won)
			return nil
		},
	}

	playCmd.Flags().Int("max-actions", 80, "maximum number of actions to submit")
	playCmd.Flags().Int64("seed", 0, "random policy seed (0 = derive from clock)")
	playCmd.Flags().Bool("done-on-game-over", false, "stop on GAME_OVER instead of resetting and retrying")
	playCmd.Flags().Float64("rate", 0, "maximum actions per second (0 = unpaced)")
	playCmd.Flags().Bool("record", true, "persist received frames to disk")
	playCmd.Flags().String("frames-dir", "frames", "base directory for per-game frame records")

	return playCmd
}
