// Package ingest builds graphs from external descriptions: CSV node/link
// files and TOML graph manifests. All field trimming and validation happens
// here, so the graph core only ever sees clean string pairs.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"sccmap/pkg/digraph"
)

// ErrBadRow is returned when a CSV row does not reduce to exactly two
// non-empty fields after trimming.
var ErrBadRow = errors.New("row must have exactly two non-empty fields")

// Options control label handling during ingestion.
type Options struct {
	// AppendID renders non-empty labels as "label (id)". Auto-created and
	// empty labels stay empty.
	AppendID bool
}

// LoadCSV builds a graph from a nodes CSV (label, id rows) and a links CSV
// (tail, head rows). Either path may be empty to skip that file; a graph
// built from links alone consists entirely of auto-created nodes.
func LoadCSV(nodesPath, linksPath string, opts Options) (*digraph.Graph, error) {
	g := digraph.New()

	if nodesPath != "" {
		f, err := os.Open(nodesPath)
		if err != nil {
			return nil, fmt.Errorf("open nodes file: %w", err)
		}
		err = ReadNodes(g, f, nodesPath, opts)
		f.Close()
		if err != nil {
			return nil, err
		}
	}

	if linksPath != "" {
		f, err := os.Open(linksPath)
		if err != nil {
			return nil, fmt.Errorf("open links file: %w", err)
		}
		err = ReadLinks(g, f, linksPath)
		f.Close()
		if err != nil {
			return nil, err
		}
	}

	return g, nil
}

// ReadNodes adds one node per CSV row of (label, id). Fields are
// whitespace-trimmed, empty fields are dropped, and blank rows are skipped;
// anything else with a field count other than two fails with ErrBadRow and
// the offending location. name labels the source in error messages.
func ReadNodes(g *digraph.Graph, r io.Reader, name string, opts Options) error {
	return readPairs(r, name, func(label, id string) {
		if opts.AppendID && label != "" {
			label = fmt.Sprintf("%s (%s)", label, id)
		}
		g.AddNode(id, label)
	})
}

// ReadLinks adds one directed edge per CSV row of (tail, head), with the
// same trimming and filtering rules as ReadNodes. Endpoints that were never
// declared as nodes are auto-created by the graph.
func ReadLinks(g *digraph.Graph, r io.Reader, name string) error {
	return readPairs(r, name, g.AddEdge)
}

// readPairs applies fn to every valid (first, second) row of src.
func readPairs(src io.Reader, name string, fn func(first, second string)) error {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		fields := record[:0]
		for _, f := range record {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			line, _ := cr.FieldPos(0)
			return fmt.Errorf("%s:%d: %w (got %d)", name, line, ErrBadRow, len(fields))
		}
		fn(fields[0], fields[1])
	}
}
