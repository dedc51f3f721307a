package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fenceworks/fencecalc/internal/model"
)

// WriteJSON writes the estimate as indented JSON.
func WriteJSON(w io.Writer, est model.Estimate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(est); err != nil {
		return fmt.Errorf("cannot encode estimate: %w", err)
	}
	return nil
}

// ExportJSON writes the estimate as indented JSON to a file.
func ExportJSON(path string, est model.Estimate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, est)
}
