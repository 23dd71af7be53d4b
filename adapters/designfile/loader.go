// Package designfile loads design databases from YAML or JSON files for the
// command line workflow. The core never touches files; this adapter is the
// bridge from disk to design.Database.
package designfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/giulialestini/PopED/domain/core"
	"github.com/giulialestini/PopED/domain/design"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk design description. The optional fim block carries
// a precomputed Fisher information matrix over the free parameters, row by
// row, for workflows where the FIM engine ran elsewhere.
type Document struct {
	ID        string      `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	Bpop      []float64   `json:"bpop" yaml:"bpop"`
	NotFixed  []bool      `json:"not_fixed" yaml:"not_fixed"`
	GroupSize []int       `json:"group_size" yaml:"group_size"`
	FIM       [][]float64 `json:"fim,omitempty" yaml:"fim,omitempty"`
}

// Load reads a design document from path, picking the codec from the file
// extension (.yaml/.yml or .json). The returned FIM is nil when the document
// carries none.
func Load(path string) (*design.Database, *mat.SymDense, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading design file: %w", err)
	}

	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, nil, fmt.Errorf("parsing YAML design: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, nil, fmt.Errorf("parsing JSON design: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported design file extension %q", filepath.Ext(path))
	}

	db := &design.Database{
		ID:        core.DesignID(doc.ID),
		Name:      doc.Name,
		Bpop:      doc.Bpop,
		NotFixed:  doc.NotFixed,
		GroupSize: doc.GroupSize,
	}
	if db.ID == "" {
		db.ID = core.DesignID(core.NewID())
	}
	if err := db.Validate(); err != nil {
		return nil, nil, err
	}

	if doc.FIM == nil {
		return db, nil, nil
	}
	fim, err := buildFIM(doc.FIM, db.FreeCount())
	if err != nil {
		return nil, nil, err
	}
	return db, fim, nil
}

func buildFIM(rows [][]float64, freeCount int) (*mat.SymDense, error) {
	n := len(rows)
	if n != freeCount {
		return nil, fmt.Errorf("fim has %d rows for %d free parameters", n, freeCount)
	}
	fim := mat.NewSymDense(n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("fim row %d has %d entries, want %d", i, len(row), n)
		}
		for j := i; j < n; j++ {
			if row[j] != rows[j][i] {
				return nil, fmt.Errorf("fim is not symmetric at (%d,%d)", i, j)
			}
			fim.SetSym(i, j, row[j])
		}
	}
	return fim, nil
}
