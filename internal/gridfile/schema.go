// Package gridfile loads sweep definitions from HCL files: per-axis
// candidate lists plus optional scalar overrides for the base configuration.
package gridfile

import (
	"github.com/hashicorp/hcl/v2"
)

// Axis represents an `axis "<name>" { values = [...] }` block declaring the
// candidate list for one sweep axis.
type Axis struct {
	Name   string         `hcl:"name,label"`
	Values hcl.Expression `hcl:"values"`
}

// BaseParams represents the content of the optional `params` block holding
// scalar overrides for the base configuration.
type BaseParams struct {
	Body hcl.Body `hcl:",remain"`
}

// SweepFile is the top-level structure of one sweep definition file.
type SweepFile struct {
	Axes   []*Axis     `hcl:"axis,block"`
	Params *BaseParams `hcl:"params,block"`
}
