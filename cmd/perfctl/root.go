package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmsuite/perfmetrics/internal/utils"
	"github.com/pmsuite/perfmetrics/pkg/performance"
	"github.com/pmsuite/perfmetrics/pkg/project"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// options are the flags shared by every subcommand.
type options struct {
	file       string
	now        string
	ratio      float64
	precision  int
	mode       string
	jsonOutput bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "perfctl",
		Short: "Earned value metrics for a project file",
		Long: `perfctl computes earned value KPIs and the S-curve of a schedule and budget snapshot
stored in a YAML or JSON file, without a database.

The file holds two lists:
  tasks:        id, name, type (project|task|milestone), start, end (YYYY-MM-DD), progress (0-100)
  budgetItems:  category, laborCost, materialsCost, contingencyPercent

Use "-" as file name to read from standard input.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "", "project file (YAML or JSON), - for stdin")
	flags.StringVar(&opts.now, "now", "", "evaluate as of this date (YYYY-MM-DD), defaults to today")
	flags.Float64Var(&opts.ratio, "ratio", performance.DefaultActualCostRatio, "actual cost to earned value ratio")
	flags.IntVar(&opts.precision, "precision", performance.DefaultPrecision, "decimals of KPI figures")
	flags.StringVar(&opts.mode, "mode", string(performance.CurveModeSnapshot), "S-curve mode: snapshot or linear")
	flags.BoolVar(&opts.jsonOutput, "json", false, "output JSON instead of text")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(newKpiCmd(opts), newSCurveCmd(opts), newReportCmd(opts))
	return root
}

// loadSnapshot reads and validates the project file. JSON documents (by extension or leading brace) are decoded
// as JSON, anything else as YAML.
func loadSnapshot(path string, stdin io.Reader) ([]project.ScheduleTask, []project.BudgetItem, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	var snapshot project.SnapshotDTO
	if strings.EqualFold(filepath.Ext(path), ".json") || bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		err = json.Unmarshal(data, &snapshot)
	} else {
		err = yaml.Unmarshal(data, &snapshot)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	tasks, items, err := project.ParseSnapshot(snapshot)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("loaded %d tasks and %d budget items from %s", len(tasks), len(items), path)
	return tasks, items, nil
}

// projectName derives a display name from the file name.
func projectName(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (o *options) clock() (utils.Clock, error) {
	if o.now == "" {
		return utils.SystemClock{}, nil
	}
	now, err := utils.ParseDate(o.now)
	if err != nil {
		return nil, fmt.Errorf("--now: %w", err)
	}
	return utils.NewMockClock(now), nil
}

func (o *options) calculator() (*performance.Calculator, error) {
	clock, err := o.clock()
	if err != nil {
		return nil, err
	}
	return performance.NewCalculator(clock, performance.NewRatioCostProvider(o.ratio), o.precision), nil
}

func (o *options) builder() (*performance.Builder, error) {
	mode, err := performance.ParseCurveMode(o.mode)
	if err != nil {
		return nil, err
	}
	return performance.NewBuilder(mode), nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
