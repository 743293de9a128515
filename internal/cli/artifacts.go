package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/siddlokray/cortica/pkg/pipeline"
)

// artifactWriteParams bundles what writeArtifacts needs to place rendered
// figures on disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	input     string // source path; empty for URLs and stdin
	output    string // -o flag: file path (single artifact) or base path
}

// writeArtifacts writes rendered artifacts to disk and prints one line per
// file. A single artifact with an explicit -o goes exactly there; otherwise
// files are named <base>_<kind>.<format> next to the input.
func writeArtifacts(p artifactWriteParams) error {
	names := make([]string, 0, len(p.artifacts))
	for name := range p.artifacts {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 1 && p.output != "" {
		return writeArtifact(p.output, p.artifacts[names[0]])
	}

	base := outputBase(p.output, p.input)
	for _, name := range names {
		kind, format := splitArtifactName(name)
		path := fmt.Sprintf("%s_%s.%s", base, kind, format)
		if err := writeArtifact(path, p.artifacts[name]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// outputBase derives the base path for artifact files from the -o flag and
// the input path. A known format extension on either is stripped; with no
// usable input (URL or stdin source) the base falls back to the app name.
func outputBase(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input == "" || input == "-" {
		return appName
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// splitArtifactName splits an artifact map key of the form
// "<kind>.<format>" into its parts.
func splitArtifactName(name string) (kind, format string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}
