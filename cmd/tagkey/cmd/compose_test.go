package cmd

import (
	"testing"

	"github.com/ChrisMcGann/TAGKey/pkg/composition"
	"github.com/ChrisMcGann/TAGKey/pkg/settings"
)

func TestParseGroup(t *testing.T) {
	tests := []struct {
		arg     string
		want    settings.Group
		wantErr bool
	}{
		{"PSC", settings.Group{Composition: composition.PSC}, false},
		{"ecnc:0.05", settings.Group{Composition: composition.ECNC, Filter: 0.05}, false},
		{"NSC: 0.1", settings.Group{Composition: composition.NSC, Filter: 0.1}, false},
		{"XYZ", settings.Group{}, true},
		{"PSC:abc", settings.Group{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseGroup(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseGroup(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseGroup(%q) = %+v, want %+v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestFormatGroups(t *testing.T) {
	groups := []settings.Group{
		{Composition: composition.ECNC, Filter: 0.01},
		{Composition: composition.PSC},
	}
	if got, want := formatGroups(groups), "ECNC (> 0.01) > PSC"; got != want {
		t.Errorf("formatGroups() = %q, want %q", got, want)
	}
}

func TestSelectedIndex(t *testing.T) {
	defer func(old int) { sampleIndex = old }(sampleIndex)

	sampleIndex = -1
	if selectedIndex() != nil {
		t.Error("negative index should select all samples")
	}
	sampleIndex = 2
	if i := selectedIndex(); i == nil || *i != 2 {
		t.Errorf("selectedIndex() = %v, want 2", i)
	}
}
