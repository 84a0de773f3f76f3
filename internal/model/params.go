package model

// Params is one complete, runnable simulation configuration. Values are
// copied by assignment; a job never shares a Params with another job.
type Params struct {
	// Horizontal moisture diffusion coefficient, identical in both
	// directions (m^2/s).
	DiffK float64

	// Steepness of the exponential governing the choice of convective
	// locations (Rushley et al. 2018 TRMM v7 fit).
	CrhAd float64

	// Subsidence drying timescale (days, not seconds).
	TauSub float64

	// Convective inhibition radius from cold pools (km). Negative
	// switches cold pools off.
	CinRadius float64

	// Diurnal cycle option; 0 disables the diurnal cycle.
	DiurnOpt int

	// Updraft vertical velocity (m/s) and convective moistening
	// timescale (s).
	WCnv   float64
	TauCnv float64

	// Convective detrained value: saturation plus detrained condensate.
	CrhDet float64

	// Average lifetime of a convective event (s).
	CnvLifetime float64

	// Cold pools: diffusion coefficient (m^2/s) and lifetime (s).
	DiffCIN float64
	TauCin  float64

	// Diurnal cycle shape, active only when DiurnOpt != 0.
	DiurnA float64
	DiurnP float64

	// Initial CRH field: mean and standard deviation.
	CrhInitMean float64
	CrhInitSD   float64

	// Total simulated time (days) and timestep (s).
	NDay int
	Dt   float64

	// Square domain edge length (m) and horizontal resolution (m).
	DomainXY float64
	Dxy      float64

	// One diagnostic sample every NFigHr hours.
	NFigHr float64

	// Directory for per-run artifacts.
	OutDir string
}

// Defaults returns the base configuration every sweep starts from.
func Defaults() Params {
	return Params{
		DiffK:       10000,
		CrhAd:       14.72,
		TauSub:      16,
		CinRadius:   -99,
		DiurnOpt:    0,
		WCnv:        10,
		TauCnv:      60,
		CrhDet:      1.05,
		CnvLifetime: 1800,
		DiffCIN:     0.25 * 10 * 50e3,
		TauCin:      3 * 3600,
		DiurnA:      0.6,
		DiurnP:      2.0,
		CrhInitMean: 0.8,
		CrhInitSD:   0.0,
		NDay:        5,
		Dt:          30,
		DomainXY:    300e3,
		Dxy:         2000,
		NFigHr:      6,
		OutDir:      "./",
	}
}
