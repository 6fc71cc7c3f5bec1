package pipeline

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"sccmap/pkg/apperr"
	"sccmap/pkg/digraph"
	"sccmap/pkg/ingest"
)

// inputData holds raw input file contents, read once so that cache key
// hashing and graph building share a single read. A nil slice means the
// input was not configured.
type inputData struct {
	nodes    []byte
	links    []byte
	manifest []byte
}

// readInputs loads every configured input file.
func readInputs(opts Options) (inputData, error) {
	var in inputData
	var err error

	if opts.Manifest != "" {
		if in.manifest, err = readInput(opts.Manifest, "manifest"); err != nil {
			return inputData{}, err
		}
		return in, nil
	}

	if opts.Nodes != "" {
		if in.nodes, err = readInput(opts.Nodes, "nodes file"); err != nil {
			return inputData{}, err
		}
	}
	if opts.Links != "" {
		if in.links, err = readInput(opts.Links, "links file"); err != nil {
			return inputData{}, err
		}
	}
	return in, nil
}

func readInput(path, what string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "%s not found: %s", what, path)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeIO, err, "read %s %s", what, path)
	}
	return data, nil
}

// build constructs the graph from the loaded inputs.
func (in inputData) build(opts Options) (*digraph.Graph, error) {
	iopts := ingest.Options{AppendID: opts.AppendID}

	if in.manifest != nil {
		g, err := ingest.ParseManifest(in.manifest, opts.Manifest, iopts)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidManifest, err, "parse manifest")
		}
		return g, nil
	}

	g := digraph.New()
	if in.nodes != nil {
		if err := ingest.ReadNodes(g, bytes.NewReader(in.nodes), opts.Nodes, iopts); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "parse nodes file")
		}
	}
	if in.links != nil {
		if err := ingest.ReadLinks(g, bytes.NewReader(in.links), opts.Links); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "parse links file")
		}
	}
	return g, nil
}

// Ingest builds the graph from the configured inputs without caching.
func Ingest(opts Options) (*digraph.Graph, error) {
	if err := opts.ValidateForIngest(); err != nil {
		return nil, err
	}
	in, err := readInputs(opts)
	if err != nil {
		return nil, err
	}
	return in.build(opts)
}
