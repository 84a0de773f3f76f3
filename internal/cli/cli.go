package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/sweepgridgo/internal/app"
	"github.com/vk/sweepgridgo/internal/model"
	"github.com/vk/sweepgridgo/internal/sweep"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("sweepgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
sweepgridgo - a parameter-sweep dispatcher for the toy moisture model.

Usage:
  sweepgridgo [options]

Axis options take an HCL list literal and sweep the Cartesian product of
every supplied axis, e.g.:
  sweepgridgo --diffK='[10000, 37500]' --tau_sub='[4, 16]'

Options:
`)
		flagSet.PrintDefaults()
	}

	axisFlags := make(map[string]*string, len(model.AxisOrder))
	for _, name := range model.AxisOrder {
		axisFlags[name] = flagSet.String(name, "", "Candidate list for the "+name+" sweep axis.")
	}

	odirFlag := flagSet.String("odir", "", "Output directory for per-run artifacts.")
	nfigHrFlag := flagSet.Float64("nfig_hr", 0, "Hours between diagnostic samples.")
	ndayFlag := flagSet.Int("nday", 0, "Total simulated time in days.")
	dtFlag := flagSet.Float64("dt", 0, "Integration timestep in seconds.")

	serialFlag := flagSet.Bool("serial", false, "Run jobs sequentially instead of across a worker pool.")
	workersFlag := flagSet.Int("workers", 0, "Cap on pool size. 0 sizes the pool to min(jobs, processing units).")
	resultsFlag := flagSet.String("results", "diffusion_results.txt", "Path to the results file, truncated at the start of every run.")
	gridFlag := flagSet.String("grid", "", "Path to an HCL sweep file or a directory of them.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	axes := sweep.AxisSet{}
	for _, name := range model.AxisOrder {
		raw := *axisFlags[name]
		if raw == "" {
			continue
		}
		candidates, err := parseList(name, raw)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		axes[name] = candidates
	}

	var overrides model.Overrides
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "odir":
			overrides.OutDir = odirFlag
		case "nfig_hr":
			overrides.NFigHr = nfigHrFlag
		case "nday":
			overrides.NDay = ndayFlag
		case "dt":
			overrides.Dt = dtFlag
		}
	})

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		GridPath:    *gridFlag,
		ResultsPath: *resultsFlag,
		Serial:      *serialFlag,
		Workers:     *workersFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Axes:        axes,
		Overrides:   overrides,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}

// parseList evaluates an axis flag value as an HCL expression and flattens
// it into a candidate list. This is the typed replacement for evaluating
// arbitrary literals: only constant expressions resolve, there is no
// evaluation context.
func parseList(name, raw string) ([]cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(raw), name, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid %s list: %s", name, diags.Error())
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid %s list: %s", name, diags.Error())
	}
	candidates, err := sweep.Candidates(val)
	if err != nil {
		return nil, fmt.Errorf("invalid %s list: %w", name, err)
	}
	return candidates, nil
}
