// Package pipeline provides the core analysis pipeline for Cortica.
//
// This package implements the complete cluster → layout → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Cluster: Ward-link the correlation matrix and cut it into region groups
//  2. Layout: Build the thresholded network and compute node positions
//  3. Render: Generate figures in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Clusters: 5,
//	    Preset:   "medium",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, m, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["network.svg"]
//
// Run individual stages:
//
//	// Cluster only
//	analysis, err := runner.Cluster(ctx, m, opts)
//
//	// Layout with existing assignments
//	layout, err := runner.GenerateLayout(ctx, m, analysis.Labels, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, m, analysis, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/siddlokray/cortica/pkg/cache"
	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/graph"
	"github.com/siddlokray/cortica/pkg/render/colormap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultThreshold is the minimum correlation magnitude for a network
	// edge. Presets override it.
	DefaultThreshold = 0.5

	// DefaultWidth is the default network canvas width in inches.
	DefaultWidth = 14.0

	// DefaultHeight is the default network canvas height in inches.
	DefaultHeight = 10.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultIterations is the default force solver pass cap.
	DefaultIterations = 100

	// Clustered heatmap canvas, wider than the unordered heatmap to make
	// room for the boundary structure.
	clusteredWidthIn  = 14.0
	clusteredHeightIn = 12.0
)

// DefaultLayout is the default layout algorithm.
const DefaultLayout = graph.LayoutSpring

// DefaultLabels is the default node label mode.
const DefaultLabels = graph.LabelsSelective

// DefaultColorBy is the default node coloring mode.
const DefaultColorBy = graph.ColorByCluster

// DefaultOrientation is the default figure orientation.
const DefaultOrientation = graph.OrientationHorizontal

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Kind constants for figure kinds.
const (
	KindHeatmap          = "heatmap"
	KindHeatmapClustered = "heatmap_clustered"
	KindSummary          = "summary"
	KindNetwork          = "network"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidKinds is the set of supported figure kinds.
var ValidKinds = map[string]bool{
	KindHeatmap:          true,
	KindHeatmapClustered: true,
	KindSummary:          true,
	KindNetwork:          true,
}

// ValidLayouts is the set of supported layout algorithms.
var ValidLayouts = map[string]bool{
	graph.LayoutSpring:      true,
	graph.LayoutCircular:    true,
	graph.LayoutKamadaKawai: true,
	graph.LayoutForceAtlas:  true,
}

// ValidLabelModes is the set of supported node label modes.
var ValidLabelModes = map[string]bool{
	graph.LabelsAll:       true,
	graph.LabelsSelective: true,
	graph.LabelsHubs:      true,
	graph.LabelsNone:      true,
}

// ValidColorModes is the set of supported node coloring modes.
var ValidColorModes = map[string]bool{
	graph.ColorByCluster:     true,
	graph.ColorByCustom:      true,
	graph.ColorByDegree:      true,
	graph.ColorByBetweenness: true,
}

// ValidOrientations is the set of supported figure orientations.
var ValidOrientations = map[string]bool{
	graph.OrientationHorizontal: true,
	graph.OrientationVertical:   true,
}

// ValidColorSchemes is the set of supported tick label color schemes.
var ValidColorSchemes = map[string]bool{
	colormap.SchemeNetwork:     true,
	colormap.SchemeRandom:      true,
	colormap.SchemeGradient:    true,
	colormap.SchemeCategorical: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the analysis pipeline.
// This struct supports JSON serialization for API requests and BSON for
// stored runs.
type Options struct {
	// Cluster options
	Clusters int  `json:"clusters,omitempty" bson:"clusters,omitempty"` // 0 picks automatically
	Refresh  bool `json:"refresh,omitempty" bson:"refresh,omitempty"`

	// Layout options
	Threshold   float64 `json:"threshold,omitempty" bson:"threshold,omitempty"`
	Preset      string  `json:"preset,omitempty" bson:"preset,omitempty"`
	Layout      string  `json:"layout,omitempty" bson:"layout,omitempty"`
	Orientation string  `json:"orientation,omitempty" bson:"orientation,omitempty"`
	Seed        uint64  `json:"seed,omitempty" bson:"seed,omitempty"`
	Iterations  int     `json:"iterations,omitempty" bson:"iterations,omitempty"`
	Width       float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height      float64 `json:"height,omitempty" bson:"height,omitempty"`

	// Render options
	Kinds         []string          `json:"kinds,omitempty" bson:"kinds,omitempty"`
	Formats       []string          `json:"formats,omitempty" bson:"formats,omitempty"`
	Labels        string            `json:"labels,omitempty" bson:"labels,omitempty"`
	ColorBy       string            `json:"color_by,omitempty" bson:"color_by,omitempty"`
	ColorScheme   string            `json:"color_scheme,omitempty" bson:"color_scheme,omitempty"`
	CustomColors  map[string]string `json:"custom_colors,omitempty" bson:"custom_colors,omitempty"`
	ColorbarLabel string            `json:"colorbar_label,omitempty" bson:"colorbar_label,omitempty"`
	HideLabels    bool              `json:"hide_labels,omitempty" bson:"hide_labels,omitempty"`
	LabelInterval int               `json:"label_interval,omitempty" bson:"label_interval,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" bson:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-" bson:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Analysis is the clustering stage output.
	Analysis Analysis

	// MatrixHash is the content hash of the input matrix.
	MatrixHash string

	// GraphHash is the content hash of the thresholded network.
	GraphHash string

	// Layout contains the positioned network.
	Layout graph.Layout

	// Artifacts contains rendered figures keyed by "<kind>.<format>".
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RegionCount  int
	EdgeCount    int
	ClusterCount int
	ClusterTime  time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ClusterHit bool // Whether the clustering result came from cache
	LayoutHit  bool // Whether the layout result came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// ArtifactName returns the artifact map key for a kind and format. The key
// doubles as a file name when artifacts are written to disk.
func ArtifactName(kind, format string) string {
	return kind + "." + format
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that a figure kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid figure kind: %q (must be one of: heatmap, heatmap_clustered, summary, network)", kind)
	}
	return nil
}

// ValidateKinds checks that all figure kinds are valid.
func ValidateKinds(kinds []string) error {
	for _, k := range kinds {
		if err := ValidateKind(k); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLayout checks that a layout algorithm is valid.
func ValidateLayout(layout string) error {
	if !ValidLayouts[layout] {
		return errors.New(errors.ErrCodeInvalidLayout,
			"invalid layout: %q (must be one of: spring, circular, kamada_kawai, force_atlas)", layout)
	}
	return nil
}

// ValidateLabelMode checks that a node label mode is valid.
func ValidateLabelMode(mode string) error {
	if !ValidLabelModes[mode] {
		return errors.New(errors.ErrCodeInvalidLabelMode,
			"invalid label mode: %q (must be one of: all, selective, hubs, none)", mode)
	}
	return nil
}

// ValidateColorMode checks that a node coloring mode is valid.
func ValidateColorMode(mode string) error {
	if !ValidColorModes[mode] {
		return errors.New(errors.ErrCodeInvalidColorMode,
			"invalid color mode: %q (must be one of: cluster, custom, degree, betweenness)", mode)
	}
	return nil
}

// ValidateOrientation checks that a figure orientation is valid.
func ValidateOrientation(orientation string) error {
	if !ValidOrientations[orientation] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid orientation: %q (must be horizontal or vertical)", orientation)
	}
	return nil
}

// ValidateColorScheme checks that a tick label color scheme is valid.
func ValidateColorScheme(scheme string) error {
	if !ValidColorSchemes[scheme] {
		return errors.New(errors.ErrCodeInvalidColorMode,
			"invalid color scheme: %q (must be one of: network, random, gradient, categorical)", scheme)
	}
	return nil
}

// ValidateThreshold checks that a correlation threshold is in [0, 1].
// A threshold of 1 is allowed and yields an edgeless network.
func ValidateThreshold(t float64) error {
	if t < 0 || t > 1 {
		return errors.New(errors.ErrCodeInvalidThreshold,
			"threshold must be in [0, 1], got %g", t)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCluster(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ApplyPreset overwrites threshold, label mode, and for some presets the
// canvas size with the values the named cleanliness preset bundles. The
// preset wins over explicitly set fields, matching the flag semantics of
// the CLI. An empty preset is a no-op.
func (o *Options) ApplyPreset() error {
	switch o.Preset {
	case "":
		return nil
	case graph.PresetLight:
		o.Threshold, o.Labels = 0.4, graph.LabelsSelective
	case graph.PresetMedium:
		o.Threshold, o.Labels = 0.5, graph.LabelsHubs
	case graph.PresetHeavy:
		o.Threshold, o.Labels = 0.6, graph.LabelsNone
	case graph.PresetMinimal:
		o.Threshold, o.Labels = 0.7, graph.LabelsNone
		o.Width, o.Height = 10, 8
	case graph.PresetLabeled:
		o.Threshold, o.Labels = 0.5, graph.LabelsAll
		o.Width, o.Height = 16, 12
	default:
		return errors.New(errors.ErrCodeInvalidPreset,
			"invalid preset: %q (must be one of: light, medium, heavy, minimal, labeled)", o.Preset)
	}
	return nil
}

// ValidateForCluster checks the fields the clustering stage reads.
// A zero cluster count selects the count heuristically from the region count.
func (o *Options) ValidateForCluster() error {
	if o.Clusters < 0 {
		return errors.New(errors.ErrCodeInvalidClusters,
			"cluster count must be >= 0, got %d", o.Clusters)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if err := o.ApplyPreset(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := ValidateThreshold(o.Threshold); err != nil {
		return err
	}
	if err := ValidateLayout(o.Layout); err != nil {
		return err
	}
	return ValidateOrientation(o.Orientation)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Kinds) == 0 {
		o.Kinds = []string{KindHeatmap, KindHeatmapClustered, KindSummary, KindNetwork}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Labels == "" {
		o.Labels = DefaultLabels
	}
	if o.ColorBy == "" {
		o.ColorBy = DefaultColorBy
	}
	if o.LabelInterval == 0 {
		o.LabelInterval = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ApplyPreset(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateKinds(o.Kinds); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateColorMode(o.ColorBy); err != nil {
		return err
	}
	if err := ValidateLabelMode(o.Labels); err != nil {
		return err
	}
	if o.ColorScheme != "" {
		return ValidateColorScheme(o.ColorScheme)
	}
	return nil
}

// ShowLabels reports whether heatmap tick labels should be drawn.
func (o *Options) ShowLabels() bool {
	return !o.HideLabels
}

// ClusterKeyOpts returns cache key options for the clustering stage.
func (o *Options) ClusterKeyOpts() cache.ClusterKeyOpts {
	return cache.ClusterKeyOpts{
		Clusters: o.Clusters,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm:   o.Layout,
		Orientation: o.Orientation,
		Seed:        o.Seed,
		Iterations:  o.Iterations,
		Width:       o.Width,
		Height:      o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered artifact.
func (o *Options) ArtifactKeyOpts(kind, format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Kind:          kind,
		Format:        format,
		ColorBy:       o.ColorBy,
		Labels:        o.Labels,
		ColorScheme:   o.ColorScheme,
		ColorbarLabel: o.ColorbarLabel,
		LabelInterval: o.LabelInterval,
		HideLabels:    o.HideLabels,
		CustomColors:  o.CustomColors,
	}
}
