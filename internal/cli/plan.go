package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/sant0-9/todoai/internal/assist"
	"github.com/sant0-9/todoai/internal/llm"
	"github.com/sant0-9/todoai/internal/logger"
	"github.com/sant0-9/todoai/internal/steps"
)

type planOutput struct {
	Explanation string     `json:"explanation"`
	Steps       steps.List `json:"steps"`
}

// PlanCmd returns the plan command
func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <task...>",
		Short: "Ask the AI backend for the steps to accomplish a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := setupLogger(cmd, os.Stderr)

			provider, err := llm.NewProvider(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
			defer cancel()
			ctx = logger.ContextWithLogger(ctx, log)

			plan, err := assist.NewHelper(provider, cfg.Model).Plan(ctx, strings.Join(args, " "))
			if err != nil {
				// The backend body is logged, never printed.
				return errors.New(assist.UserMessage(err))
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				out := planOutput{Explanation: plan.Text, Steps: plan.Steps}
				if out.Steps == nil {
					out.Steps = steps.List{}
				}
				b, err := json.Marshal(out)
				if err != nil {
					return fmt.Errorf("encode plan: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(pretty.Pretty(b))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), plan.Text)
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the plan as JSON")

	return cmd
}
