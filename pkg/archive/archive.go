// Package archive provides durable storage for decomposition runs.
//
// The archive keeps one record per (graph, naming method) pair so repeated
// runs over the same input reuse the assigned component names instead of
// recomputing them. Unlike the cache, archive records are not content you
// can regenerate byte-for-byte: they carry the run identity (RunID,
// CreatedAt) of the first decomposition, which later runs inherit.
//
// Three backends are provided:
//   - file: JSON files in a local directory, for CLI usage
//   - mongo: a MongoDB collection, for shared server deployments
//   - null: no-op, archiving disabled
//
// # Usage
//
//	store, err := archive.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	key := archive.Key(graphHash, "string")
//	rec, err := store.Load(ctx, key)
//	if err != nil {
//	    return err
//	}
//	if rec == nil {
//	    // First run for this graph and naming method.
//	}
package archive

import (
	"context"
	"time"
)

// Record is one archived decomposition run.
type Record struct {
	// Key identifies the record, see [Key].
	Key string `json:"key" bson:"_id"`

	// RunID is the identifier of the run that produced this record.
	RunID string `json:"run_id" bson:"run_id"`

	// Naming is the naming method the component names were built with.
	Naming string `json:"naming" bson:"naming"`

	// Names lists the component names in emission order, smallest
	// dependency first.
	Names []string `json:"names" bson:"names"`

	// Tags maps each node ID to its component name.
	Tags map[string]string `json:"tags" bson:"tags"`

	// CreatedAt is when the decomposition first ran.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for archive backends.
type Store interface {
	// Load retrieves a record by key. Returns nil, nil if absent.
	Load(ctx context.Context, key string) (*Record, error)

	// Save stores a record, replacing any existing one with the same key.
	Save(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting an absent record is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key builds the archive key for a graph hash and naming method. The result
// is safe to use as a file name and as a document ID.
func Key(graphHash, naming string) string {
	return naming + "-" + graphHash
}
