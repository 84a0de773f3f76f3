package gridfile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/sweepgridgo/internal/ctxlog"
	"github.com/vk/sweepgridgo/internal/fsutil"
	"github.com/vk/sweepgridgo/internal/model"
	"github.com/vk/sweepgridgo/internal/sweep"
)

// Sweep is the merged result of loading one or more sweep definition files.
type Sweep struct {
	Axes      sweep.AxisSet
	Overrides model.Overrides
}

// Load reads the sweep definition at path, which may be a single .hcl file or
// a directory of them. Files load in sorted order; a later axis or override
// declaration replaces an earlier one. Axis names are not validated here —
// the expander rejects unknown axes against the full configuration key set.
func Load(ctx context.Context, path string) (*Sweep, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFiles(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to locate sweep files: %w", err)
	}
	logger.Debug("Sweep definition files located.", "count", len(files))

	parser := hclparse.NewParser()
	out := &Sweep{Axes: sweep.AxisSet{}}

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %s", file, diags.Error())
		}

		var sf SweepFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &sf); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %s", file, diags.Error())
		}

		for _, axis := range sf.Axes {
			val, diags := axis.Values.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to evaluate values for axis %q in %s: %s", axis.Name, file, diags.Error())
			}
			candidates, err := sweep.Candidates(val)
			if err != nil {
				return nil, fmt.Errorf("invalid values for axis %q in %s: %w", axis.Name, file, err)
			}
			out.Axes[axis.Name] = candidates
		}

		if sf.Params != nil {
			overrides, err := decodeOverrides(sf.Params)
			if err != nil {
				return nil, fmt.Errorf("invalid params block in %s: %w", file, err)
			}
			// Later files win for fields set in both.
			out.Overrides = overrides.Merge(out.Overrides)
		}

		logger.Debug("Sweep file loaded.", "file", file, "axes", len(sf.Axes))
	}

	return out, nil
}

// decodeOverrides reads the params block attributes into typed overrides.
// Unrecognized attribute names are rejected rather than silently ignored.
func decodeOverrides(block *BaseParams) (model.Overrides, error) {
	var o model.Overrides

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return o, fmt.Errorf("%s", diags.Error())
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return o, fmt.Errorf("failed to evaluate %q: %s", name, diags.Error())
		}

		switch name {
		case "odir":
			s, err := stringValue(val)
			if err != nil {
				return o, fmt.Errorf("odir: %w", err)
			}
			o.OutDir = &s
		case "nfig_hr":
			f, err := floatValue(val)
			if err != nil {
				return o, fmt.Errorf("nfig_hr: %w", err)
			}
			o.NFigHr = &f
		case "nday":
			n, err := intValue(val)
			if err != nil {
				return o, fmt.Errorf("nday: %w", err)
			}
			o.NDay = &n
		case "dt":
			f, err := floatValue(val)
			if err != nil {
				return o, fmt.Errorf("dt: %w", err)
			}
			o.Dt = &f
		default:
			return o, fmt.Errorf("unsupported parameter %q", name)
		}
	}
	return o, nil
}

func stringValue(v cty.Value) (string, error) {
	conv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("not a string: %w", err)
	}
	return conv.AsString(), nil
}

func floatValue(v cty.Value) (float64, error) {
	conv, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("not a number: %w", err)
	}
	f, _ := conv.AsBigFloat().Float64()
	return f, nil
}

func intValue(v cty.Value) (int, error) {
	f, err := floatValue(v)
	if err != nil {
		return 0, err
	}
	n := int(f)
	if float64(n) != f {
		return 0, fmt.Errorf("not an integer")
	}
	return n, nil
}
