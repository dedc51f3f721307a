package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fenceworks/fencecalc/internal/model"
)

// layoutFile is the calculator's native JSON layout format: either a bare
// segment array or an object with a "segments" key.
type layoutFile struct {
	Segments []model.Segment `json:"segments"`
}

// ImportJSON imports fence segments from a JSON layout file.
func ImportJSON(path string, defaults Defaults) ImportResult {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer f.Close()
	return ImportJSONFromReader(f, defaults)
}

// ImportJSONFromReader decodes segments from a JSON stream. Segments
// without a fence type or height pick up the defaults.
func ImportJSONFromReader(r io.Reader, defaults Defaults) ImportResult {
	result := ImportResult{}

	data, err := io.ReadAll(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read JSON: %v", err))
		return result
	}

	var segments []model.Segment
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal(data, &segments)
	} else {
		var lf layoutFile
		err = json.Unmarshal(data, &lf)
		segments = lf.Segments
	}
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot parse JSON: %v", err))
		return result
	}
	if len(segments) == 0 {
		result.Errors = append(result.Errors, "No segments found in JSON")
		return result
	}

	for i := range segments {
		if segments[i].FenceType == "" {
			segments[i].FenceType = defaults.FenceType
		} else {
			segments[i].FenceType = strings.ToLower(segments[i].FenceType)
		}
		if segments[i].Height == 0 {
			segments[i].Height = defaults.Height
		}
	}

	result.Segments = segments
	return result
}
