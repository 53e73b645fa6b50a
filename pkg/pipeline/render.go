package pipeline

import (
	"github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/graph"
	"github.com/nfalab/machina/pkg/render/statechart"
)

// renderFormat produces one artifact. dot is the DOT rendering of g, which
// the SVG and PNG formats rasterize and the DOT format returns as-is.
func renderFormat(g graph.Graph, dot, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		data, err := statechart.RenderSVG(dot)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
		}
		return data, nil
	case FormatPNG:
		data, err := statechart.RenderPNG(dot)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render PNG")
		}
		return data, nil
	case FormatJSON:
		data, err := graph.MarshalGraph(g)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal graph")
		}
		return data, nil
	default:
		return nil, ValidateFormat(format)
	}
}
