package sweep

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Candidates flattens an evaluated HCL value into a candidate list. Lists,
// sets, and tuples contribute their elements in order; a lone scalar becomes
// a single-candidate list, which pins the axis without multiplying the sweep.
func Candidates(v cty.Value) ([]cty.Value, error) {
	if v.IsNull() {
		return nil, fmt.Errorf("candidate value is null")
	}
	if !v.Type().IsListType() && !v.Type().IsSetType() && !v.Type().IsTupleType() {
		return []cty.Value{v}, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("candidate list is not a known value")
	}

	var out []cty.Value
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() {
			return nil, fmt.Errorf("candidate list contains a null element")
		}
		out = append(out, elem)
	}
	return out, nil
}
