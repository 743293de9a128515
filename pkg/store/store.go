// Package store persists analysis runs.
//
// A run records what an analysis looked at and what came out: the input
// matrix identity, the options used, the cluster assignments, and summary
// statistics for the thresholded network. Runs carry no rendered artifacts;
// those live in the pipeline cache and can be regenerated from the stored
// options.
//
// Two backends implement the Store interface:
//   - file: JSON files in a data directory, for CLI usage
//   - mongo: a MongoDB collection, for the API server
//
// # Usage
//
// Record a run after a pipeline execution:
//
//	run := store.NewRun(source, m, opts, result)
//	if err := st.Put(ctx, run); err != nil {
//	    return err
//	}
//
// Browse history:
//
//	runs, err := st.List(ctx)
//	for _, r := range runs {
//	    fmt.Println(r.ID, r.CreatedAt, r.Network.Edges)
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/pipeline"
)

// Run is one recorded analysis: identity, input, configuration, and the
// clustering and network outcomes.
type Run struct {
	ID        string    `json:"id" bson:"id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// Source names where the matrix came from: a file path, a URL, or
	// "stdin".
	Source string `json:"source,omitempty" bson:"source,omitempty"`

	Regions    []string `json:"regions" bson:"regions"`
	MatrixHash string   `json:"matrix_hash" bson:"matrix_hash"`

	Options  pipeline.Options  `json:"options" bson:"options"`
	Analysis pipeline.Analysis `json:"analysis" bson:"analysis"`
	Network  NetworkStats      `json:"network" bson:"network"`
}

// NetworkStats summarizes the thresholded network of a run.
type NetworkStats struct {
	Threshold float64 `json:"threshold" bson:"threshold"`
	Nodes     int     `json:"nodes" bson:"nodes"`
	Edges     int     `json:"edges" bson:"edges"`
	Density   float64 `json:"density" bson:"density"`
}

// NewRun builds a run record from a completed pipeline result.
func NewRun(source string, m connectivity.Matrix, opts pipeline.Options, result *pipeline.Result) *Run {
	g := result.Layout.Graph
	return &Run{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now().UTC(),
		Source:     source,
		Regions:    m.Regions,
		MatrixHash: result.MatrixHash,
		Options:    opts,
		Analysis:   result.Analysis,
		Network: NetworkStats{
			Threshold: g.Threshold,
			Nodes:     len(g.Nodes),
			Edges:     len(g.Edges),
			Density:   g.Density(),
		},
	}
}

// Store is the interface for run storage backends.
type Store interface {
	// Put stores a run, replacing any run with the same ID.
	Put(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Missing runs return an
	// ErrCodeRunNotFound error.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns all runs, newest first.
	List(ctx context.Context) ([]*Run, error)

	// Delete removes a run. Missing runs return an ErrCodeRunNotFound
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
