package model

// Overrides holds the scalar base-configuration overrides recognized outside
// the sweep axes. Nil fields were not supplied and leave the default alone.
type Overrides struct {
	OutDir *string
	NFigHr *float64
	NDay   *int
	Dt     *float64
}

// Apply overlays the set fields onto p.
func (o Overrides) Apply(p *Params) {
	if o.OutDir != nil {
		p.OutDir = *o.OutDir
	}
	if o.NFigHr != nil {
		p.NFigHr = *o.NFigHr
	}
	if o.NDay != nil {
		p.NDay = *o.NDay
	}
	if o.Dt != nil {
		p.Dt = *o.Dt
	}
}

// Merge returns o with any unset field filled from other. Fields set in both
// keep o's value, so callers layer the higher-precedence source on top.
func (o Overrides) Merge(other Overrides) Overrides {
	if o.OutDir == nil {
		o.OutDir = other.OutDir
	}
	if o.NFigHr == nil {
		o.NFigHr = other.NFigHr
	}
	if o.NDay == nil {
		o.NDay = other.NDay
	}
	if o.Dt == nil {
		o.Dt = other.Dt
	}
	return o
}
