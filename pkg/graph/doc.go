// Package graph provides the thresholded connectivity network and its
// serialization types.
//
// This package defines the canonical wire format for Cortica's network data,
// used for JSON files, API responses, caching, and stored runs.
//
// # Core Types
//
//   - [Graph]: thresholded region network (nodes, weighted edges)
//   - [Node], [Edge]: structural types with cluster and correlation metadata
//   - [Layout]: a graph paired with computed node positions
//   - [Position]: a 2D layout coordinate
//
// # Constants
//
// This package is the single source of truth for network visualization
// constants:
//
//	graph.LayoutSpring       // "spring"
//	graph.LabelsSelective    // "selective"
//	graph.ColorByCluster     // "cluster"
//	graph.PresetMedium       // "medium"
//
// # Building
//
// A graph derives from a correlation matrix, a cluster label per region, and
// an edge threshold:
//
//	g, _ := graph.Build(matrix, labels, 0.5)
//	deg := g.Degrees()
//
// # Serialization
//
// Graphs and layouts use a simple JSON format:
//
//	g, _ := graph.ReadGraphFile("network.json")   // File → Graph
//	graph.WriteGraphFile(g, "network.json")       // Graph → File
//	data, _ := graph.MarshalGraph(g)              // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)       // []byte → Graph
//
// # Metrics
//
// Degree, density, average clustering coefficient, and betweenness
// centrality are computed directly on the Graph:
//
//	g.Density()
//	g.AvgClustering()
//	g.Betweenness()
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
