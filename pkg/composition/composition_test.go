package composition

import (
	"errors"
	"testing"

	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Composition
		wantErr bool
	}{
		{in: "SSC", want: SSC},
		{in: "psc", want: PSC},
		{in: "NSC", want: NSC},
		{in: "NTC", want: NTC},
		{in: "ECNC", want: ECNC},
		{in: "SECNC", want: SECNC},
		{in: "PECNC", want: Composition{EquivalentCarbonNumber, Positional}},
		{in: "UC", want: UC},
		{in: "NUC", want: Composition{Unsaturation, NonStereospecific}},
		{in: "MC", want: MC},
		{in: " SMC ", want: Composition{Mass, Stereospecific}},
		{in: "SS", wantErr: true},
		{in: "XC", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.wantErr {
				back, err := Parse(got.String())
				if err != nil || back != got {
					t.Errorf("Parse(String()) = %v, %v; want %v", back, err, got)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		c       Composition
		wantErr bool
	}{
		{SSC, false},
		{PSC, false},
		{NSC, false},
		{STC, false},
		{ECNC, false},
		{SECNC, false},
		{UC, false},
		{MC, false},
		{Composition{Mass, Stereospecific}, true},
		{Composition{Mass, NonStereospecific}, true},
		{Composition{Species, Aggregation}, true},
		{Composition{Type, Aggregation}, true},
		{Composition{Kind(42), Aggregation}, true},
	}

	for _, tt := range tests {
		t.Run(tt.c.String(), func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var unsupported *core.UnsupportedCompositionError
			if err != nil && !errors.As(err, &unsupported) {
				t.Errorf("Validate() error type = %T, want *UnsupportedCompositionError", err)
			}
		})
	}
}

func TestValidateGroups(t *testing.T) {
	tests := []struct {
		name    string
		groups  []Composition
		wantErr bool
	}{
		{"single level", []Composition{NSC}, false},
		{"coarse then fine", []Composition{ECNC, NSC}, false},
		{"type then species", []Composition{NTC, PSC}, false},
		{"non-stereospecific then stereospecific", []Composition{NSC, SSC}, false},
		{"three levels", []Composition{MC, ECNC, NSC}, false},
		{"ECN and unsaturation then mass", []Composition{ECNC, UC, MC}, false},
		{"empty", nil, true},
		{"duplicate", []Composition{NSC, NSC}, true},
		{"species then ECN", []Composition{NSC, ECNC}, true},
		{"stereospecific then positional", []Composition{SSC, PSC}, true},
		{"species then mass", []Composition{PSC, MC}, true},
		{"positional unsaturation then type", []Composition{{Unsaturation, Positional}, PTC}, true},
		{"invalid level", []Composition{ECNC, {Species, Aggregation}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroups(tt.groups)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateGroups() error = %v, wantErr %v", err, tt.wantErr)
			}
			var unsupported *core.UnsupportedCompositionError
			if err != nil && !errors.As(err, &unsupported) {
				t.Errorf("ValidateGroups() error type = %T, want *UnsupportedCompositionError", err)
			}
		})
	}
}

func TestUnmarshalText(t *testing.T) {
	var c Composition
	if err := c.UnmarshalText([]byte("PTC")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if c != PTC {
		t.Errorf("UnmarshalText() = %v, want PTC", c)
	}
	text, _ := c.MarshalText()
	if string(text) != "PTC" {
		t.Errorf("MarshalText() = %s, want PTC", text)
	}
	if err := c.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for unknown code")
	}
}
