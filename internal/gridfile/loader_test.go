package gridfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/sweepgridgo/internal/gridfile"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AxesAndParams(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "sweep.hcl", `
axis "diffK" {
  values = [10000, 37500]
}

axis "tau_sub" {
  values = [4, 16, 44]
}

params {
  nday   = 10
  dt     = 60
  odir   = "./out"
}
`)

	sw, err := gridfile.Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, sw.Axes, 2)
	require.Len(t, sw.Axes["diffK"], 2)
	require.Len(t, sw.Axes["tau_sub"], 3)

	first, _ := sw.Axes["diffK"][0].AsBigFloat().Float64()
	require.Equal(t, 10000.0, first)

	require.Equal(t, 10, *sw.Overrides.NDay)
	require.Equal(t, 60.0, *sw.Overrides.Dt)
	require.Equal(t, "./out", *sw.Overrides.OutDir)
	require.Nil(t, sw.Overrides.NFigHr)
}

func TestLoad_ScalarAxisValue(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "sweep.hcl", `
axis "crh_ad" {
  values = 14.72
}
`)

	sw, err := gridfile.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, sw.Axes["crh_ad"], 1)
	v, _ := sw.Axes["crh_ad"][0].AsBigFloat().Float64()
	require.InDelta(t, 14.72, v, 1e-9)
}

func TestLoad_DirectoryMergesSortedLaterWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `
axis "diffK" {
  values = [1, 2, 3]
}

params {
  nday = 3
}
`)
	writeFile(t, dir, "b.hcl", `
axis "diffK" {
  values = [9]
}

params {
  dt = 15
}
`)

	sw, err := gridfile.Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, sw.Axes["diffK"], 1, "later file replaces the axis")
	require.Equal(t, 3, *sw.Overrides.NDay)
	require.Equal(t, 15.0, *sw.Overrides.Dt)
}

func TestLoad_UnsupportedParam(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "sweep.hcl", `
params {
  warp_speed = 9
}
`)

	_, err := gridfile.Load(context.Background(), path)
	require.ErrorContains(t, err, `unsupported parameter "warp_speed"`)
}

func TestLoad_MalformedHCL(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "sweep.hcl", `
axis "diffK" {
  values = [10000
`)

	_, err := gridfile.Load(context.Background(), path)
	require.ErrorContains(t, err, "failed to parse")
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := gridfile.Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.ErrorContains(t, err, "failed to locate sweep files")
}
