package pipeline

import (
	"testing"

	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/graph"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateKind(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"heatmap", false},
		{"heatmap_clustered", false},
		{"summary", false},
		{"network", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateKind(tt.kind)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateKind(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
		}
	}
}

func TestValidateLayout(t *testing.T) {
	tests := []struct {
		layout  string
		wantErr bool
	}{
		{"spring", false},
		{"circular", false},
		{"kamada_kawai", false},
		{"force_atlas", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateLayout(tt.layout)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLayout(%q) error = %v, wantErr %v", tt.layout, err, tt.wantErr)
		}
	}
}

func TestValidateLabelMode(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"all", false},
		{"selective", false},
		{"hubs", false},
		{"none", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateLabelMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLabelMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
		}
	}
}

func TestValidateColorMode(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"cluster", false},
		{"custom", false},
		{"degree", false},
		{"betweenness", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateColorMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColorMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
		}
	}
}

func TestValidateOrientation(t *testing.T) {
	tests := []struct {
		orientation string
		wantErr     bool
	}{
		{"horizontal", false},
		{"vertical", false},
		{"diagonal", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateOrientation(tt.orientation)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOrientation(%q) error = %v, wantErr %v", tt.orientation, err, tt.wantErr)
		}
	}
}

func TestValidateColorScheme(t *testing.T) {
	tests := []struct {
		scheme  string
		wantErr bool
	}{
		{"network", false},
		{"random", false},
		{"gradient", false},
		{"categorical", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateColorScheme(tt.scheme)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColorScheme(%q) error = %v, wantErr %v", tt.scheme, err, tt.wantErr)
		}
	}
}

func TestValidateThreshold(t *testing.T) {
	tests := []struct {
		threshold float64
		wantErr   bool
	}{
		{0, false},
		{0.5, false},
		{1, false}, // edgeless network is allowed
		{-0.1, true},
		{1.1, true},
	}

	for _, tt := range tests {
		err := ValidateThreshold(tt.threshold)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateThreshold(%g) error = %v, wantErr %v", tt.threshold, err, tt.wantErr)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    string
		threshold float64
		labels    string
		width     float64 // 0 means untouched
		height    float64
	}{
		{"light", 0.4, graph.LabelsSelective, 0, 0},
		{"medium", 0.5, graph.LabelsHubs, 0, 0},
		{"heavy", 0.6, graph.LabelsNone, 0, 0},
		{"minimal", 0.7, graph.LabelsNone, 10, 8},
		{"labeled", 0.5, graph.LabelsAll, 16, 12},
	}

	for _, tt := range tests {
		opts := Options{Preset: tt.preset}
		if err := opts.ApplyPreset(); err != nil {
			t.Errorf("ApplyPreset(%q) failed: %v", tt.preset, err)
			continue
		}
		if opts.Threshold != tt.threshold {
			t.Errorf("preset %q: Threshold = %g, want %g", tt.preset, opts.Threshold, tt.threshold)
		}
		if opts.Labels != tt.labels {
			t.Errorf("preset %q: Labels = %q, want %q", tt.preset, opts.Labels, tt.labels)
		}
		if opts.Width != tt.width {
			t.Errorf("preset %q: Width = %g, want %g", tt.preset, opts.Width, tt.width)
		}
		if opts.Height != tt.height {
			t.Errorf("preset %q: Height = %g, want %g", tt.preset, opts.Height, tt.height)
		}
	}
}

func TestApplyPresetEmpty(t *testing.T) {
	opts := Options{Threshold: 0.3, Labels: graph.LabelsAll}
	if err := opts.ApplyPreset(); err != nil {
		t.Fatalf("Empty preset should be a no-op: %v", err)
	}
	if opts.Threshold != 0.3 || opts.Labels != graph.LabelsAll {
		t.Error("Empty preset should not touch fields")
	}
}

func TestApplyPresetUnknown(t *testing.T) {
	opts := Options{Preset: "banana"}
	err := opts.ApplyPreset()
	if err == nil {
		t.Fatal("Unknown preset should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("Error code = %v, want ErrCodeInvalidPreset", errors.GetCode(err))
	}
}

func TestApplyPresetOverwrites(t *testing.T) {
	// Presets win over explicitly set fields.
	opts := Options{Preset: "heavy", Threshold: 0.2, Labels: graph.LabelsAll}
	if err := opts.ApplyPreset(); err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}
	if opts.Threshold != 0.6 {
		t.Errorf("Threshold = %g, want preset value 0.6", opts.Threshold)
	}
	if opts.Labels != graph.LabelsNone {
		t.Errorf("Labels = %q, want preset value %q", opts.Labels, graph.LabelsNone)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Empty options should pass: %v", err)
	}

	// Check defaults were set
	if opts.Threshold != DefaultThreshold {
		t.Errorf("Threshold should be %g, got %g", DefaultThreshold, opts.Threshold)
	}
	if opts.Layout != DefaultLayout {
		t.Errorf("Layout should be %s, got %s", DefaultLayout, opts.Layout)
	}
	if opts.Labels != DefaultLabels {
		t.Errorf("Labels should be %s, got %s", DefaultLabels, opts.Labels)
	}
	if opts.ColorBy != DefaultColorBy {
		t.Errorf("ColorBy should be %s, got %s", DefaultColorBy, opts.ColorBy)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if opts.Iterations != DefaultIterations {
		t.Errorf("Iterations should be %d, got %d", DefaultIterations, opts.Iterations)
	}
	if len(opts.Kinds) != 4 {
		t.Errorf("Kinds should default to all four figures, got %v", opts.Kinds)
	}
}

func TestOptionsValidateForCluster(t *testing.T) {
	opts := Options{Clusters: -1}
	err := opts.ValidateForCluster()
	if err == nil {
		t.Fatal("Negative cluster count should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidClusters) {
		t.Errorf("Error code = %v, want ErrCodeInvalidClusters", errors.GetCode(err))
	}

	// Zero means automatic selection
	opts = Options{Clusters: 0}
	if err := opts.ValidateForCluster(); err != nil {
		t.Errorf("Zero cluster count should pass: %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Preset: "medium"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalThreshold := opts.Threshold
	originalLabels := opts.Labels
	originalKinds := len(opts.Kinds)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Threshold != originalThreshold {
		t.Error("Threshold changed on second call")
	}
	if opts.Labels != originalLabels {
		t.Error("Labels changed on second call")
	}
	if len(opts.Kinds) != originalKinds {
		t.Error("Kinds changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Threshold != DefaultThreshold {
		t.Errorf("Threshold should be %g, got %g", DefaultThreshold, opts.Threshold)
	}
	if opts.Layout != DefaultLayout {
		t.Errorf("Layout should be %s, got %s", DefaultLayout, opts.Layout)
	}
	if opts.Orientation != DefaultOrientation {
		t.Errorf("Orientation should be %s, got %s", DefaultOrientation, opts.Orientation)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if opts.Iterations != DefaultIterations {
		t.Errorf("Iterations should be %d, got %d", DefaultIterations, opts.Iterations)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Labels != DefaultLabels {
		t.Errorf("Labels should be %s, got %s", DefaultLabels, opts.Labels)
	}
	if opts.ColorBy != DefaultColorBy {
		t.Errorf("ColorBy should be %s, got %s", DefaultColorBy, opts.ColorBy)
	}
	if opts.LabelInterval != 1 {
		t.Errorf("LabelInterval should be 1, got %d", opts.LabelInterval)
	}
}

func TestOptionsShowLabels(t *testing.T) {
	opts := Options{}
	if !opts.ShowLabels() {
		t.Error("Default should show labels")
	}

	opts.HideLabels = true
	if opts.ShowLabels() {
		t.Error("HideLabels=true should not show labels")
	}
}

func TestOptionsKeyOpts(t *testing.T) {
	opts := Options{
		Clusters:    5,
		Layout:      graph.LayoutCircular,
		Orientation: graph.OrientationVertical,
		Seed:        7,
		Iterations:  50,
		Width:       12,
		Height:      9,
		ColorBy:     graph.ColorByDegree,
		Labels:      graph.LabelsAll,
	}

	ck := opts.ClusterKeyOpts()
	if ck.Clusters != 5 {
		t.Errorf("ClusterKeyOpts.Clusters = %d, want 5", ck.Clusters)
	}

	lk := opts.LayoutKeyOpts()
	if lk.Algorithm != graph.LayoutCircular || lk.Orientation != graph.OrientationVertical {
		t.Errorf("LayoutKeyOpts algorithm/orientation = %s/%s", lk.Algorithm, lk.Orientation)
	}
	if lk.Seed != 7 || lk.Iterations != 50 || lk.Width != 12 || lk.Height != 9 {
		t.Errorf("LayoutKeyOpts geometry = %+v", lk)
	}

	ak := opts.ArtifactKeyOpts(KindNetwork, FormatSVG)
	if ak.Kind != KindNetwork || ak.Format != FormatSVG {
		t.Errorf("ArtifactKeyOpts kind/format = %s/%s", ak.Kind, ak.Format)
	}
	if ak.ColorBy != graph.ColorByDegree || ak.Labels != graph.LabelsAll {
		t.Errorf("ArtifactKeyOpts color/labels = %s/%s", ak.ColorBy, ak.Labels)
	}
}

func TestArtifactName(t *testing.T) {
	if got := ArtifactName(KindNetwork, FormatSVG); got != "network.svg" {
		t.Errorf("ArtifactName = %q, want %q", got, "network.svg")
	}
	if got := ArtifactName(KindHeatmapClustered, FormatPNG); got != "heatmap_clustered.png" {
		t.Errorf("ArtifactName = %q, want %q", got, "heatmap_clustered.png")
	}
}
