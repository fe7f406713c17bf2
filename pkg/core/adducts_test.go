package core

import (
	"math"
	"strings"
	"testing"
)

func TestDefaultAdductDatabase(t *testing.T) {
	db := DefaultAdductDatabase()

	tests := []struct {
		name string
		want float64
	}{
		{"None", 0},
		{"H", 1.00728},
		{"NH4", 18.03383},
		{"Na", 22.98922},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := db.GetMass(tt.name)
			if !ok {
				t.Fatalf("adduct %s not found", tt.name)
			}
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("GetMass(%s) = %.5f, want %.5f", tt.name, got, tt.want)
			}
		})
	}
}

func TestProtonAdduct(t *testing.T) {
	got, _ := DefaultAdductDatabase().GetMass("H")
	if got != ProtonMass {
		t.Errorf("GetMass(H) = %v, want ProtonMass %v", got, ProtonMass)
	}
	if math.Abs(ProtonMass-(MassH-ElectronMass)) > 1e-7 {
		t.Errorf("ProtonMass %v disagrees with hydrogen minus electron %v", ProtonMass, MassH-ElectronMass)
	}
}

func TestAdductLoadFromCSV(t *testing.T) {
	db := NewAdductDatabase()
	csv := "name,mass\nCs,132.904\n\nAg, 106.9045 \n"
	if err := db.LoadFromCSV(strings.NewReader(csv)); err != nil {
		t.Fatalf("LoadFromCSV() error = %v", err)
	}

	if got, ok := db.GetMass("Ag"); !ok || got != 106.9045 {
		t.Errorf("GetMass(Ag) = %v, %v", got, ok)
	}
	if names := db.Names(); len(names) != 2 || names[0] != "Ag" {
		t.Errorf("Names() = %v, want [Ag Cs]", names)
	}

	if err := db.LoadFromCSV(strings.NewReader("name,mass\nbroken\n")); err == nil {
		t.Error("expected error for missing mass field")
	}
	if err := db.LoadFromCSV(strings.NewReader("name,mass\nX,abc\n")); err == nil {
		t.Error("expected error for invalid mass")
	}
}

func TestAdductResolve(t *testing.T) {
	db := DefaultAdductDatabase()

	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"None", 0, false},
		{"18.5", 18.5, false},
		{"Unobtainium", 0, true},
	}

	for _, tt := range tests {
		got, err := db.Resolve(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Resolve(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
