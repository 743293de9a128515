package store

import (
	"context"
	"testing"
	"time"

	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/graph"
	"github.com/siddlokray/cortica/pkg/pipeline"
)

func testResult() *pipeline.Result {
	return &pipeline.Result{
		MatrixHash: "0123456789abcdef",
		Analysis: pipeline.Analysis{
			Clusters:   2,
			Labels:     []int{1, 1, 2},
			Order:      []int{0, 1, 2},
			Boundaries: []int{2},
		},
		Layout: graph.Layout{
			Graph: graph.Graph{
				Threshold: 0.5,
				Nodes: []graph.Node{
					{ID: "lh_a", Cluster: 1},
					{ID: "lh_b", Cluster: 1},
					{ID: "rh_a", Cluster: 2},
				},
				Edges: []graph.Edge{
					{From: "lh_a", To: "lh_b", Weight: 0.8, Correlation: 0.8},
				},
				PossiblePairs: 3,
			},
		},
	}
}

func testRun() *Run {
	m := connectivity.Matrix{
		Regions: []string{"lh_a", "lh_b", "rh_a"},
		Data: [][]float64{
			{1.0, 0.8, 0.1},
			{0.8, 1.0, 0.2},
			{0.1, 0.2, 1.0},
		},
	}
	return NewRun("matrix.csv", m, pipeline.Options{Clusters: 2}, testResult())
}

func testStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewRun(t *testing.T) {
	run := testRun()

	if err := errors.ValidateRunID(run.ID); err != nil {
		t.Errorf("generated ID %q is not a valid run id: %v", run.ID, err)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if run.Source != "matrix.csv" {
		t.Errorf("Source = %q, want %q", run.Source, "matrix.csv")
	}
	if len(run.Regions) != 3 {
		t.Errorf("Regions length = %d, want 3", len(run.Regions))
	}
	if run.MatrixHash != "0123456789abcdef" {
		t.Errorf("MatrixHash = %q", run.MatrixHash)
	}
	if run.Network.Nodes != 3 || run.Network.Edges != 1 {
		t.Errorf("Network = %+v, want 3 nodes and 1 edge", run.Network)
	}
	if run.Network.Threshold != 0.5 {
		t.Errorf("Network.Threshold = %g, want 0.5", run.Network.Threshold)
	}
}

func TestFileStorePutGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	run := testRun()

	if err := s.Put(ctx, run); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("ID = %q, want %q", got.ID, run.ID)
	}
	if got.Analysis.Clusters != 2 {
		t.Errorf("Analysis.Clusters = %d, want 2", got.Analysis.Clusters)
	}
	if got.Options.Clusters != 2 {
		t.Errorf("Options.Clusters = %d, want 2", got.Options.Clusters)
	}
	if len(got.Analysis.Labels) != 3 {
		t.Errorf("Labels length = %d, want 3", len(got.Analysis.Labels))
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	s := testStore(t)

	_, err := s.Get(context.Background(), "00000000-0000-0000-0000-000000000000")
	if err == nil {
		t.Fatal("missing run should fail")
	}
	if !errors.Is(err, errors.ErrCodeRunNotFound) {
		t.Errorf("Error code = %v, want ErrCodeRunNotFound", errors.GetCode(err))
	}
}

func TestFileStoreList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	older := testRun()
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testRun()
	newer.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	if err := s.Put(ctx, older); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put(ctx, newer); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	runs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("List returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != newer.ID {
		t.Error("List should return newest first")
	}
}

func TestFileStoreListEmpty(t *testing.T) {
	s := testStore(t)

	runs, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("List returned %d runs, want 0", len(runs))
	}
}

func TestFileStoreDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	run := testRun()

	if err := s.Put(ctx, run); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Delete(ctx, run.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := s.Get(ctx, run.ID); !errors.Is(err, errors.ErrCodeRunNotFound) {
		t.Error("deleted run should be gone")
	}

	// Deleting again reports not found.
	if err := s.Delete(ctx, run.ID); !errors.Is(err, errors.ErrCodeRunNotFound) {
		t.Error("deleting a missing run should report not found")
	}
}

func TestFileStorePutInvalidID(t *testing.T) {
	s := testStore(t)
	run := testRun()
	run.ID = "not-a-uuid"

	err := s.Put(context.Background(), run)
	if err == nil {
		t.Fatal("invalid run id should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Error code = %v, want ErrCodeInvalidInput", errors.GetCode(err))
	}
}

func TestFileStoreReplace(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	run := testRun()

	if err := s.Put(ctx, run); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	run.Source = "updated.csv"
	if err := s.Put(ctx, run); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Source != "updated.csv" {
		t.Errorf("Source = %q, want replacement to win", got.Source)
	}

	runs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("List returned %d runs after replace, want 1", len(runs))
	}
}
