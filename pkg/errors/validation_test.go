package errors

import (
	"testing"
)

func TestValidateRegionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "precuneus", false},
		{"valid with prefix", "lh_superiorfrontal", false},
		{"valid with dash", "mid-temporal", false},
		{"valid with dot", "area.v1", false},
		{"valid with space", "frontal pole", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegionName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegionName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRegionNames(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantErr bool
	}{
		{"valid list", []string{"lh_precuneus", "rh_precuneus", "lh_insula"}, false},
		{"single region", []string{"insula"}, false},

		{"empty list", nil, true},
		{"duplicate", []string{"insula", "insula"}, true},
		{"invalid member", []string{"insula", ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegionNames(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegionNames(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "out/network.svg", false},
		{"valid absolute", "/tmp/network.svg", false},
		{"valid simple", "heatmap.png", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"path traversal", "../../../etc/passwd", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/matrix.csv", false},
		{"http", "http://example.com/matrix.csv", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"six digit", "#E74C3C", false},
		{"three digit", "#fff", false},
		{"lowercase", "#2c3e50", false},

		{"empty", "", true},
		{"no hash", "E74C3C", true},
		{"bad length", "#E74C", true},
		{"bad chars", "#GGGGGG", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRunID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"valid uppercase", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", false},

		{"empty", "", true},
		{"not a uuid", "run-42", true},
		{"missing segment", "6ba7b810-9dad-11d1-80b4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRunID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRunID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
