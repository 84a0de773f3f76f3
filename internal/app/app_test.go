package app_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/sweepgridgo/internal/app"
	"github.com/vk/sweepgridgo/internal/model"
	"github.com/vk/sweepgridgo/internal/testutil"
)

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	_, err := app.NewConfig(app.Config{ResultsPath: ""})
	require.ErrorContains(t, err, "results path")

	_, err = app.NewConfig(app.Config{ResultsPath: "r.txt", Workers: -1})
	require.ErrorContains(t, err, "workers")

	cfg, err := app.NewConfig(app.Config{ResultsPath: "r.txt"})
	require.NoError(t, err)
	require.Equal(t, "r.txt", cfg.ResultsPath)
}

func TestRun_ExpandsAndDispatchesInOrder(t *testing.T) {
	t.Parallel()

	res := testutil.RunSweep(t, []string{
		"--diffK=[10, 20]",
		"--tau_sub=[5, 15]",
		"--serial",
	}, nil)

	require.NoError(t, res.Err)

	runs := res.Runner.Runs()
	require.Len(t, runs, 4)
	for i, want := range [][2]float64{{10, 5}, {10, 15}, {20, 5}, {20, 15}} {
		require.Equal(t, want[0], runs[i].DiffK, "job %d", i)
		require.Equal(t, want[1], runs[i].TauSub, "job %d", i)
		// Non-swept fields come from the defaults.
		require.Equal(t, 14.72, runs[i].CrhAd)
	}
}

func TestRun_ParallelCompletesAllJobs(t *testing.T) {
	t.Parallel()

	res := testutil.RunSweep(t, []string{
		"--diffK=[1, 2, 3]",
		"--cin_radius=[-99, 10]",
	}, nil)

	require.NoError(t, res.Err)
	require.Len(t, res.Runner.Runs(), 6)
}

func TestRun_UnknownAxisFromGridFileAbortsBeforeDispatch(t *testing.T) {
	t.Parallel()

	grid := testutil.WriteSweepFile(t, `
axis "foo" {
  values = [1, 2]
}
`)

	res := testutil.RunSweep(t, []string{"--grid=" + grid}, nil)

	require.ErrorContains(t, res.Err, "sweep expansion failed")
	require.ErrorContains(t, res.Err, `"foo"`)
	require.Empty(t, res.Runner.Runs(), "no job may be dispatched for an invalid sweep")
}

func TestRun_GridFileMergesUnderFlags(t *testing.T) {
	t.Parallel()

	grid := testutil.WriteSweepFile(t, `
axis "diffK" {
  values = [1, 2, 3]
}

params {
  nday = 10
  dt   = 60
}
`)

	res := testutil.RunSweep(t, []string{
		"--grid=" + grid,
		"--diffK=[5]", // flag replaces the grid file's axis
		"--dt=15",     // flag replaces the grid file's override
	}, nil)

	require.NoError(t, res.Err)

	runs := res.Runner.Runs()
	require.Len(t, runs, 1)
	require.Equal(t, 5.0, runs[0].DiffK)
	require.Equal(t, 10, runs[0].NDay, "grid override survives where no flag was given")
	require.Equal(t, 15.0, runs[0].Dt)
}

func TestRun_TruncatesResultsFile(t *testing.T) {
	t.Parallel()

	res := testutil.RunSweep(t, []string{"--serial"}, nil)
	require.NoError(t, res.Err)

	data, err := os.ReadFile(res.ResultsPath)
	require.NoError(t, err)
	require.Empty(t, data, "results file is truncated before dispatch; the recorder writes nothing")
}

func TestRun_JobFailureSurfaces(t *testing.T) {
	t.Parallel()

	boom := errors.New("numerical instability")
	runner := &testutil.RecordingRunner{
		FailOn: func(p model.Params) error {
			if p.DiffK == 20 {
				return boom
			}
			return nil
		},
	}

	res := testutil.RunSweep(t, []string{"--diffK=[10, 20, 30]", "--serial"}, runner)

	require.ErrorIs(t, res.Err, boom)
	require.ErrorContains(t, res.Err, "execution failed")
	require.Len(t, res.Runner.Runs(), 2, "fail fast: the job after the failure is never attempted")
}

func TestRun_WorkerCapRespected(t *testing.T) {
	t.Parallel()

	res := testutil.RunSweep(t, []string{"--diffK=[1, 2, 3, 4, 5, 6]", "--workers=1"}, nil)

	require.NoError(t, res.Err)
	require.Len(t, res.Runner.Runs(), 6)
	require.Equal(t, 1, res.Runner.MaxActive())
}
