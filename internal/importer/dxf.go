package importer

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/fenceworks/fencecalc/internal/model"
)

// ImportDXF imports a fence layout from a DXF file. LINE entities become
// individual fence segments; LWPOLYLINE entities become one segment per
// vertex pair. DXF carries no fence attributes, so every segment takes
// the supplied defaults. Coordinates are assumed to be in feet.
func ImportDXF(path string, defaults Defaults) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			result.Segments = append(result.Segments, model.Segment{
				Start:     model.Point{X: e.Start[0], Y: e.Start[1]},
				End:       model.Point{X: e.End[0], Y: e.End[1]},
				FenceType: defaults.FenceType,
				Height:    defaults.Height,
			})

		case *entity.LwPolyline:
			for i := 0; i+1 < len(e.Vertices); i++ {
				result.Segments = append(result.Segments, model.Segment{
					Start:     model.Point{X: e.Vertices[i][0], Y: e.Vertices[i][1]},
					End:       model.Point{X: e.Vertices[i+1][0], Y: e.Vertices[i+1][1]},
					FenceType: defaults.FenceType,
					Height:    defaults.Height,
				})
			}
			if e.Closed && len(e.Vertices) > 2 {
				last := len(e.Vertices) - 1
				result.Segments = append(result.Segments, model.Segment{
					Start:     model.Point{X: e.Vertices[last][0], Y: e.Vertices[last][1]},
					End:       model.Point{X: e.Vertices[0][0], Y: e.Vertices[0][1]},
					FenceType: defaults.FenceType,
					Height:    defaults.Height,
				})
			}

		default:
			skipped++
		}
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported DXF entities (only LINE and LWPOLYLINE are read)", skipped))
	}
	if len(result.Segments) == 0 {
		result.Errors = append(result.Errors, "No line segments found in DXF file")
	}
	return result
}
