package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/sweepgridgo/internal/app"
	"github.com/vk/sweepgridgo/internal/cli"
	"github.com/vk/sweepgridgo/internal/executor"
)

// HarnessResult holds the outcomes of a full sweep run.
type HarnessResult struct {
	LogOutput   string
	Err         error
	Runner      *RecordingRunner
	ResultsPath string
}

// RunSweep drives the whole stack, CLI parsing through dispatch, with a
// RecordingRunner substituted for the simulation. Passing a nil runner uses a
// fresh recorder; pass a configured one to inject failures or blocking. The
// results file is placed in a per-test temp directory unless args already
// name one. Usage errors from parsing are returned in Err.
func RunSweep(t *testing.T, args []string, runner *RecordingRunner) *HarnessResult {
	t.Helper()

	out := &SafeBuffer{}
	if runner == nil {
		runner = &RecordingRunner{}
	}
	resultsPath := filepath.Join(t.TempDir(), "diffusion_results.txt")

	hasResults := false
	for _, arg := range args {
		if arg == "--results" || strings.HasPrefix(arg, "--results=") {
			hasResults = true
		}
	}
	if !hasResults {
		args = append(args, "--results="+resultsPath)
	}

	cfg, shouldExit, err := cli.Parse(args, out)
	if err != nil || shouldExit {
		return &HarnessResult{LogOutput: out.String(), Err: err, Runner: runner, ResultsPath: resultsPath}
	}

	sweepApp, err := app.New(out, cfg, app.WithRunner(runner))
	if err != nil {
		return &HarnessResult{LogOutput: out.String(), Err: err, Runner: runner, ResultsPath: resultsPath}
	}

	runErr := sweepApp.Run(context.Background())
	return &HarnessResult{
		LogOutput:   out.String(),
		Err:         runErr,
		Runner:      runner,
		ResultsPath: resultsPath,
	}
}

// WriteSweepFile writes an HCL sweep definition into a temp directory and
// returns its path.
func WriteSweepFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sweep.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// compile-time check that the recorder satisfies the dispatch contract.
var _ executor.Runner = (*RecordingRunner)(nil)
