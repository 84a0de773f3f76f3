package model

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// AxisOrder is the declared expansion order of the sweepable axes. The
// outermost axis varies slowest in an expanded job list. Expansion iterates
// this slice, never a map, so two runs with identical inputs produce
// identically ordered job lists.
var AxisOrder = []string{"diffK", "tau_sub", "crh_ad", "cin_radius", "diurn_opt"}

// axisSetters maps each sweepable axis name to a typed overlay onto Params.
var axisSetters = map[string]func(*Params, cty.Value) error{
	"diffK":      func(p *Params, v cty.Value) error { return setFloat(&p.DiffK, v) },
	"tau_sub":    func(p *Params, v cty.Value) error { return setFloat(&p.TauSub, v) },
	"crh_ad":     func(p *Params, v cty.Value) error { return setFloat(&p.CrhAd, v) },
	"cin_radius": func(p *Params, v cty.Value) error { return setFloat(&p.CinRadius, v) },
	"diurn_opt":  func(p *Params, v cty.Value) error { return setInt(&p.DiurnOpt, v) },
}

// IsAxis reports whether name is a declared sweep axis.
func IsAxis(name string) bool {
	_, ok := axisSetters[name]
	return ok
}

// ApplyAxis overlays one candidate value onto p's field for the named axis.
// It returns an error for an unknown axis name or a value that cannot be
// converted to the field's type.
func ApplyAxis(p *Params, name string, v cty.Value) error {
	setter, ok := axisSetters[name]
	if !ok {
		return fmt.Errorf("unknown sweep axis %q", name)
	}
	return setter(p, v)
}

func setFloat(dst *float64, v cty.Value) error {
	conv, err := convert.Convert(v, cty.Number)
	if err != nil {
		return fmt.Errorf("value %s is not a number: %w", v.GoString(), err)
	}
	f, _ := conv.AsBigFloat().Float64()
	*dst = f
	return nil
}

func setInt(dst *int, v cty.Value) error {
	conv, err := convert.Convert(v, cty.Number)
	if err != nil {
		return fmt.Errorf("value %s is not a number: %w", v.GoString(), err)
	}
	f, _ := conv.AsBigFloat().Float64()
	n := int(f)
	if float64(n) != f {
		return fmt.Errorf("value %s is not an integer", v.GoString())
	}
	*dst = n
	return nil
}
