package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"model-registry-ops/internal/core/domain"
	ports "model-registry-ops/internal/core/ports/output"
)

func newPromoteCmd(rt *state) *cobra.Command {
	return &cobra.Command{
		Use:   "promote",
		Short: "Promote the current candidate version to Production and archive the previous one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := rt.app.Promotion.Promote(cmd.Context(), rt.model())
			if err != nil {
				return err
			}
			for _, f := range result.ArchiveFailures {
				rt.printf("warning: version %d was not archived: %s\n", f.Version, f.Error)
			}
			rt.printf("Model version %d promoted to Production\n", result.Version)
			return nil
		},
	}
}

func newRegisterCmd(rt *state) *cobra.Command {
	var info domain.ModelInfo
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a trained run artifact and move the new version to Staging",
		Long: `Register a trained model. Without --run-id and --model-path the model
info file written by training (MODEL_INFO_PATH) is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				version *domain.ModelVersion
				err     error
			)
			if info.RunID == "" && info.ModelPath == "" {
				version, err = rt.app.Registration.RegisterFromArtifact(cmd.Context(), rt.model())
			} else {
				version, err = rt.app.Registration.Register(cmd.Context(), rt.model(), info)
			}
			if err != nil {
				return err
			}
			rt.printf("Model %s version %d registered and transitioned to Staging\n", version.Name, version.Version)
			return nil
		},
	}
	cmd.Flags().StringVar(&info.RunID, "run-id", "", "Tracking run id holding the model artifact")
	cmd.Flags().StringVar(&info.ModelPath, "model-path", "", "Artifact path of the model inside the run")
	return cmd
}

func newEvaluateCmd(rt *state) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Check that the current model loads, accepts vectorizer output and meets the metric thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := rt.app.Evaluation.Evaluate(cmd.Context(), rt.model())
			if err != nil {
				return err
			}
			rt.printf("%s\n", report.Summary())
			return report.Err()
		},
	}
}

func newResolveCmd(rt *state) *cobra.Command {
	var raw string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the version the stage priority selects as current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			priority, err := rt.priority(raw)
			if err != nil {
				return err
			}
			v, err := rt.app.Resolver.Resolve(cmd.Context(), rt.model(), priority)
			if err != nil {
				return err
			}
			rt.printf("%s (stage %s, status %s)\n", v.URI(), v.CurrentStage, v.Status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&raw, "priority", "p", "promotion", `Stage order: "promotion", "evaluation" or a comma separated list`)
	return cmd
}

func newHistoryCmd(rt *state) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded stage transitions of the model, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, total, err := rt.app.Transitions.List(cmd.Context(), ports.TransitionListFilter{
				ModelName: rt.model(),
				Limit:     limit,
				Offset:    offset,
			})
			if err != nil {
				return err
			}
			for _, t := range items {
				rt.printf("%s  v%-4d %-8s %s -> %s\n",
					t.CreatedAt.Format("2006-01-02 15:04:05"), t.Version, t.Action, t.FromStage, t.ToStage)
			}
			rt.printf("%d of %d transitions\n", len(items), total)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of transitions to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transitions to skip")
	return cmd
}

func (rt *state) priority(raw string) (domain.StagePriority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "promotion":
		return rt.app.Config.Registry.PromotionPriority, nil
	case "evaluation":
		return rt.app.Config.Registry.EvaluationPriority, nil
	}
	p, err := domain.ParseStagePriority(raw)
	if err != nil {
		return nil, fmt.Errorf("--priority: %w", err)
	}
	return p, nil
}
