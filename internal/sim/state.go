package sim

import (
	"math"
	"math/rand/v2"

	"github.com/vk/sweepgridgo/internal/model"
)

// state is the working grid for one run: the CRH field, the convective
// indicator, and the precomputed step coefficients. Doubly periodic in both
// directions.
type state struct {
	p model.Params
	n int // points per edge

	crh       []float64
	scratch   []float64
	cnv       []bool
	inhibited []bool

	rng *rand.Rand

	alpha    float64 // diffusion number per substep
	nsub     int     // explicit substeps keeping alpha <= 1/4
	subRate  float64 // subsidence drying per step
	dtTauCnv float64 // convective relaxation per step
	cnvDeath float64 // probability a convective cell ceases per step
	cnvBirth float64 // base probability scale for new convection per step
	rcells   int     // cold-pool inhibition radius in cells, negative = off
}

func newState(p model.Params, seed uint64) *state {
	n := int(p.DomainXY/p.Dxy) + 1

	alpha := p.DiffK * p.Dt / (p.Dxy * p.Dxy)
	nsub := 1 + int(alpha/0.25)

	rcells := -1
	if p.CinRadius >= 0 {
		rcells = int(p.CinRadius * 1000 / p.Dxy)
	}

	s := &state{
		p:         p,
		n:         n,
		crh:       make([]float64, n*n),
		scratch:   make([]float64, n*n),
		cnv:       make([]bool, n*n),
		inhibited: make([]bool, n*n),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		alpha:     alpha / float64(nsub),
		nsub:      nsub,
		subRate:   p.Dt / (p.TauSub * 86400),
		dtTauCnv:  math.Min(p.Dt/p.TauCnv, 1),
		cnvDeath:  math.Min(p.Dt/p.CnvLifetime, 1),
		cnvBirth:  p.Dt / p.CnvLifetime,
		rcells:    rcells,
	}

	for i := range s.crh {
		s.crh[i] = p.CrhInitMean + p.CrhInitSD*s.rng.NormFloat64()
	}
	return s
}

// step advances the field by one timestep: convective death and birth,
// convective moistening, subsidence drying, then diffusion.
func (s *state) step(t int) {
	for i, active := range s.cnv {
		if active && s.rng.Float64() < s.cnvDeath {
			s.cnv[i] = false
		}
	}

	if s.rcells >= 0 {
		s.stampInhibition()
	}

	factor := s.diurnalFactor(t)
	for i, active := range s.cnv {
		if active || (s.rcells >= 0 && s.inhibited[i]) {
			continue
		}
		// CRH-dependent probability of convective initiation, after
		// Bretherton et al. (2004) as revised by Rushley et al. (2018).
		prob := s.cnvBirth * math.Exp(s.p.CrhAd*(s.crh[i]-1)) * factor
		if s.rng.Float64() < prob {
			s.cnv[i] = true
		}
	}

	for i, active := range s.cnv {
		if active {
			s.crh[i] += s.dtTauCnv * (s.p.CrhDet - s.crh[i])
		}
		s.crh[i] -= s.subRate * s.crh[i]
	}

	for k := 0; k < s.nsub; k++ {
		s.diffuse()
	}
}

// diffuse applies one explicit 5-point diffusion substep with periodic wrap.
func (s *state) diffuse() {
	n := s.n
	for i := 0; i < n; i++ {
		up := (i - 1 + n) % n
		down := (i + 1) % n
		for j := 0; j < n; j++ {
			left := (j - 1 + n) % n
			right := (j + 1) % n
			lap := s.crh[up*n+j] + s.crh[down*n+j] + s.crh[i*n+left] + s.crh[i*n+right] - 4*s.crh[i*n+j]
			s.scratch[i*n+j] = s.crh[i*n+j] + s.alpha*lap
		}
	}
	s.crh, s.scratch = s.scratch, s.crh
}

// stampInhibition marks every cell within the cold-pool radius of an active
// convective cell as inhibited for this step.
func (s *state) stampInhibition() {
	for i := range s.inhibited {
		s.inhibited[i] = false
	}
	n, r := s.n, s.rcells
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !s.cnv[i*n+j] {
				continue
			}
			for di := -r; di <= r; di++ {
				for dj := -r; dj <= r; dj++ {
					if di*di+dj*dj > r*r {
						continue
					}
					ii := (i + di + n) % n
					jj := (j + dj + n) % n
					s.inhibited[ii*n+jj] = true
				}
			}
		}
	}
}

// diurnalFactor modulates convective initiation over the day. Option 0
// leaves the probability flat.
func (s *state) diurnalFactor(t int) float64 {
	if s.p.DiurnOpt == 0 {
		return 1
	}
	tod := math.Mod(float64(t)*s.p.Dt, 86400)
	f := 1 + s.p.DiurnA*math.Sin(2*math.Pi*s.p.DiurnP*tod/86400)
	return math.Max(f, 0)
}

// mean returns the domain-mean CRH.
func (s *state) mean() float64 {
	var sum float64
	for _, v := range s.crh {
		sum += v
	}
	return sum / float64(len(s.crh))
}

// variance returns the spatial variance of the CRH field about mean.
func (s *state) variance(mean float64) float64 {
	var sum float64
	for _, v := range s.crh {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(s.crh))
}
