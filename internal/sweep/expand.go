package sweep

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/sweepgridgo/internal/model"
)

// AxisSet maps sweep axis names to their ordered, non-empty candidate lists.
// Axes absent from the set keep their single value from the base
// configuration.
type AxisSet map[string][]cty.Value

// ConfigurationError reports an invalid sweep definition: an axis name that
// is not a declared configuration key, an empty candidate list, or a
// candidate value of the wrong type. It is always raised before any job is
// materialized or dispatched.
type ConfigurationError struct {
	Axis string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid sweep axis %q: %v", e.Axis, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Expand materializes the full job list: one configuration per combination of
// candidate values across all axes, each equal to base with that
// combination's values overlaid. Axes expand in model.AxisOrder with the
// outermost axis varying slowest, so identical inputs always yield an
// identically ordered list. The result length is the product of the candidate
// list lengths; an empty axis set yields exactly [base].
//
// Expand is pure: it reads base and axes and touches nothing else.
func Expand(base model.Params, axes AxisSet) ([]model.Params, error) {
	if err := validate(base, axes); err != nil {
		return nil, err
	}

	jobs := []model.Params{base}
	for _, name := range model.AxisOrder {
		candidates, ok := axes[name]
		if !ok {
			continue
		}
		next := make([]model.Params, 0, len(jobs)*len(candidates))
		for _, job := range jobs {
			for _, v := range candidates {
				p := job
				if err := model.ApplyAxis(&p, name, v); err != nil {
					return nil, &ConfigurationError{Axis: name, Err: err}
				}
				next = append(next, p)
			}
		}
		jobs = next
	}
	return jobs, nil
}

// validate rejects the whole axis set before any combination is built, so a
// bad sweep never dispatches a partial batch.
func validate(base model.Params, axes AxisSet) error {
	for _, name := range model.AxisOrder {
		candidates, ok := axes[name]
		if !ok {
			continue
		}
		if len(candidates) == 0 {
			return &ConfigurationError{Axis: name, Err: fmt.Errorf("candidate list is empty")}
		}
		scratch := base
		for _, v := range candidates {
			if err := model.ApplyAxis(&scratch, name, v); err != nil {
				return &ConfigurationError{Axis: name, Err: err}
			}
		}
	}
	for name := range axes {
		if !model.IsAxis(name) {
			return &ConfigurationError{Axis: name, Err: fmt.Errorf("not a configuration key")}
		}
	}
	return nil
}
