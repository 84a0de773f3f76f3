package sim

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/sweepgridgo/internal/ctxlog"
	"github.com/vk/sweepgridgo/internal/model"
	"github.com/vk/sweepgridgo/internal/results"
)

// Model runs one simulation per configuration and reports into the shared
// results file. It holds no per-run state, so a single Model is safe to
// invoke concurrently from pool workers with distinct configurations.
type Model struct {
	results *results.File
}

// New builds a Model reporting into res.
func New(res *results.File) *Model {
	return &Model{results: res}
}

// Run integrates the model for one configuration and appends its summary to
// the results file. The run is deterministic for identical parameters: the
// random sequence is seeded from the swept parameter values.
func (m *Model) Run(ctx context.Context, p model.Params) error {
	start := time.Now()
	logger := ctxlog.FromContext(ctx).With(
		"diffK", p.DiffK,
		"tau_sub", p.TauSub,
		"crh_ad", p.CrhAd,
		"cin_radius", p.CinRadius,
		"diurn_opt", p.DiurnOpt,
	)

	if err := validate(p); err != nil {
		return fmt.Errorf("invalid simulation configuration: %w", err)
	}

	s := newState(p, seed(p))
	nt := int(float64(p.NDay) * 86400 / p.Dt)
	sampleEvery := max(1, int(p.NFigHr*3600/p.Dt))
	logger.Debug("Simulation starting.", "grid", s.n, "steps", nt)

	series := make([]float64, 0, nt/sampleEvery+1)
	for t := 0; t < nt; t++ {
		if t%128 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		s.step(t)
		if t%sampleEvery == 0 {
			series = append(series, s.mean())
		}
	}

	mean := s.mean()
	variance := s.variance(mean)

	if err := m.writeArtifact(p, series); err != nil {
		return err
	}
	err := m.results.Appendf(
		"diffK=%g tau_sub=%g crh_ad=%g cin_radius=%g diurn_opt=%d nday=%d dt=%g crh_mean=%.6f crh_var=%.8f",
		p.DiffK, p.TauSub, p.CrhAd, p.CinRadius, p.DiurnOpt, p.NDay, p.Dt, mean, variance,
	)
	if err != nil {
		return err
	}

	logger.Info("Simulation completed.", "steps", nt, "crh_mean", mean, "elapsed", time.Since(start))
	return nil
}

func validate(p model.Params) error {
	switch {
	case p.Dt <= 0:
		return fmt.Errorf("dt must be positive, got %g", p.Dt)
	case p.NDay <= 0:
		return fmt.Errorf("nday must be positive, got %d", p.NDay)
	case p.Dxy <= 0:
		return fmt.Errorf("dxy must be positive, got %g", p.Dxy)
	case p.DomainXY < p.Dxy:
		return fmt.Errorf("domain_xy %g is smaller than dxy %g", p.DomainXY, p.Dxy)
	case p.TauSub <= 0:
		return fmt.Errorf("tau_sub must be positive, got %g", p.TauSub)
	case p.TauCnv <= 0:
		return fmt.Errorf("tau_cnv must be positive, got %g", p.TauCnv)
	case p.CnvLifetime <= 0:
		return fmt.Errorf("cnv_lifetime must be positive, got %g", p.CnvLifetime)
	}
	return nil
}

// ArtifactName derives the per-run artifact file name from the swept
// parameter values, which are distinct for every combination in a batch.
func ArtifactName(p model.Params) string {
	return fmt.Sprintf("crh_K%g_ts%g_ad%g_r%g_d%d.txt",
		p.DiffK, p.TauSub, p.CrhAd, p.CinRadius, p.DiurnOpt)
}

// writeArtifact records the sampled domain-mean CRH series under the
// configured output directory. An empty output directory disables artifacts.
func (m *Model) writeArtifact(p model.Params, series []float64) error {
	if p.OutDir == "" {
		return nil
	}
	if err := os.MkdirAll(p.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# diffK=%g tau_sub=%g crh_ad=%g cin_radius=%g diurn_opt=%d\n",
		p.DiffK, p.TauSub, p.CrhAd, p.CinRadius, p.DiurnOpt)
	for i, v := range series {
		fmt.Fprintf(&b, "%g %.6f\n", float64(i)*p.NFigHr, v)
	}

	path := filepath.Join(p.OutDir, ArtifactName(p))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// seed folds the swept parameter values into a stable 64-bit seed.
func seed(p model.Params) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%g|%g|%g|%g|%d|%d|%g",
		p.DiffK, p.TauSub, p.CrhAd, p.CinRadius, p.DiurnOpt, p.NDay, p.Dt)
	return h.Sum64()
}
