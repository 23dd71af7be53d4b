package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/giulialestini/PopED/adapters/designfile"
	"github.com/giulialestini/PopED/adapters/excel"
	"github.com/giulialestini/PopED/adapters/postgres"
	"github.com/giulialestini/PopED/adapters/rse"
	"github.com/giulialestini/PopED/adapters/scaling"
	"github.com/giulialestini/PopED/app"
	"github.com/giulialestini/PopED/domain/design"
	"github.com/giulialestini/PopED/domain/power"
	"github.com/giulialestini/PopED/internal/config"
	"github.com/giulialestini/PopED/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "poweval",
		Short: "Evaluate the power of a pharmacometric study design",
	}

	rootCmd.AddCommand(newEvaluateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fileFIM serves a FIM loaded from the design document as the
// FIM-computation collaborator.
type fileFIM struct {
	fim *mat.SymDense
}

func (f *fileFIM) ComputeFIM(ctx context.Context, db *design.Database, extra map[string]any) (*mat.SymDense, error) {
	if f.fim == nil {
		return nil, fmt.Errorf("design file carries no FIM; run the FIM engine first")
	}
	return f.fim, nil
}

func newEvaluateCmd() *cobra.Command {
	var (
		designPath string
		paramsArg  string
		alpha      float64
		target     float64
		oneSided   bool
		noMinN     bool
		xlsxPath   string
		store      bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate --design design.yaml --params 0,1",
		Short: "Evaluate Wald-test power for selected population parameters",
		Long: `Evaluate, for each selected population parameter, the power to detect
that the parameter is non-zero, the RSE required to reach the target power,
and the minimum subject count achieving it.

Example: poweval evaluate --design onecomp.yaml --params 0,2 --power 90 --xlsx report.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level: logLevel(cfg.Logging.Level),
			}))

			indices, err := parseIndices(paramsArg)
			if err != nil {
				return err
			}

			db, fim, err := designfile.Load(designPath)
			if err != nil {
				return err
			}
			logger.Info("design loaded", "name", db.Name,
				"parameters", len(db.Bpop), "free", db.FreeCount(),
				"subjects", db.TotalSubjects())

			opts := power.DefaultOptions()
			opts.FIM = fim
			opts.TwoSided = !oneSided
			opts.FindMinN = !noMinN
			opts.Alpha = cfg.Defaults.Alpha
			opts.TargetPower = cfg.Defaults.TargetPower
			if cmd.Flags().Changed("alpha") {
				opts.Alpha = alpha
			}
			if cmd.Flags().Changed("power") {
				opts.TargetPower = target
			}

			computer := &fileFIM{fim: fim}
			deriver := rse.NewDeriver()
			searcher := scaling.NewSearcher(computer, deriver)
			service := app.NewPowerService(computer, deriver, searcher)

			ctx := cmd.Context()
			eval, err := service.EvaluatePower(ctx, db, indices, opts)
			if err != nil {
				return err
			}

			fmt.Print(eval.String())
			summary := eval.PowerSummary()
			logger.Info("evaluation complete", "id", eval.ID,
				"rows", len(eval.Rows),
				"mean_power", summary.Mean, "min_power", summary.Min)

			if xlsxPath != "" {
				writer := excel.NewReportWriter()
				if err := writer.WritePowerTable(ctx, eval, xlsxPath); err != nil {
					return err
				}
				logger.Info("report written", "path", xlsxPath)
			}

			if store {
				if err := storeEvaluation(ctx, cfg, eval); err != nil {
					return err
				}
				logger.Info("evaluation stored", "id", eval.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&designPath, "design", "", "design file (.yaml or .json)")
	cmd.Flags().StringVar(&paramsArg, "params", "", "comma-separated bpop indices to evaluate")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level of the Wald test")
	cmd.Flags().Float64Var(&target, "power", 80, "target power in percent")
	cmd.Flags().BoolVar(&oneSided, "one-sided", false, "use a one-sided test")
	cmd.Flags().BoolVar(&noMinN, "no-min-n", false, "skip the minimum sample size search")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the power table to an xlsx file")
	cmd.Flags().BoolVar(&store, "store", false, "persist the evaluation (POPED_DATABASE_URL)")
	_ = cmd.MarkFlagRequired("design")
	_ = cmd.MarkFlagRequired("params")

	return cmd
}

func storeEvaluation(ctx context.Context, cfg *config.Config, eval *power.Evaluation) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("--store requires POPED_DATABASE_URL")
	}
	dbx, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connecting to evaluation store: %w", err)
	}
	defer dbx.Close()

	if err := postgres.Migrate(ctx, dbx); err != nil {
		return fmt.Errorf("migrating evaluation store: %w", err)
	}
	var repo ports.EvaluationRepository = postgres.NewEvaluationRepository(dbx)
	return repo.Save(ctx, eval)
}

func parseIndices(arg string) ([]int, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, nil
	}
	parts := strings.Split(arg, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid parameter index %q", p)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
