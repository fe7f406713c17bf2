package calculation

import (
	"errors"
	"math"
	"testing"

	"github.com/ChrisMcGann/TAGKey/pkg/core"
	"github.com/ChrisMcGann/TAGKey/pkg/reconcile"
)

const tolerance = 1e-9

func reconciled(t *testing.T, samples ...*core.Sample) *reconcile.Table {
	t.Helper()
	table, err := reconcile.Reconcile(samples, nil)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	return table
}

var (
	palmitic = core.FattyAcid{Carbons: 16}
	oleic    = core.FattyAcid{Carbons: 18, Unsaturated: []core.Bond{{Position: 9, Isomerism: core.Cis, Order: core.Double}}}
)

func twoAcids() *core.Sample {
	return &core.Sample{
		Metadata: core.Metadata{Name: "A"},
		Rows: []core.Row{
			{Label: "P", FattyAcid: palmitic, TAG: 0.5, DAG1223: 0.5, MAG2: 0.2},
			{Label: "O", FattyAcid: oleic, TAG: 0.5, DAG1223: 0.5, MAG2: 0.8},
		},
	}
}

func TestPositional(t *testing.T) {
	table := reconciled(t, twoAcids())

	tests := []struct {
		from     From
		wantSN13 []float64
	}{
		{FromDAG1223, []float64{0.5, 0.5}},
		{FromMAG2, []float64{0.65, 0.35}},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			fractions, err := Positional(table, tt.from)
			if err != nil {
				t.Fatalf("Positional() error = %v", err)
			}
			f := fractions[0]
			for i, want := range tt.wantSN13 {
				if math.Abs(*f.SN13[i]-want) > tolerance {
					t.Errorf("sn-1,3[%d] = %v, want %v", i, *f.SN13[i], want)
				}
			}
			if math.Abs(*f.SN2[0]-0.2) > tolerance || math.Abs(*f.SN2[1]-0.8) > tolerance {
				t.Errorf("sn-2 = [%v %v], want [0.2 0.8]", *f.SN2[0], *f.SN2[1])
			}
		})
	}
}

func TestPositionalClampsNegative(t *testing.T) {
	s := &core.Sample{
		Metadata: core.Metadata{Name: "A"},
		Rows: []core.Row{
			{Label: "P", FattyAcid: palmitic, TAG: 0.2, DAG1223: 0.5, MAG2: 0.5},
			{Label: "O", FattyAcid: oleic, TAG: 0.8, DAG1223: 0.5, MAG2: 0.5},
		},
	}
	fractions, err := Positional(reconciled(t, s), FromDAG1223)
	if err != nil {
		t.Fatalf("Positional() error = %v", err)
	}
	if *fractions[0].SN13[0] != 0 {
		t.Errorf("sn-1,3 of P = %v, want 0", *fractions[0].SN13[0])
	}
	if math.Abs(*fractions[0].SN13[1]-1) > tolerance {
		t.Errorf("sn-1,3 of O = %v, want 1", *fractions[0].SN13[1])
	}
}

func TestCalculateVanderwal(t *testing.T) {
	tags, err := Calculate(reconciled(t, twoAcids()), Options{Method: Vanderwal, From: FromDAG1223})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if len(tags.Rows) != 8 {
		t.Fatalf("rows = %d, want 8", len(tags.Rows))
	}

	total := 0.0
	values := make(map[string]float64)
	for _, row := range tags.Rows {
		total += *row.Values[0]
		values[row.TAG.Name()] = *row.Values[0]
	}
	if math.Abs(total-1) > tolerance {
		t.Errorf("total = %v, want 1", total)
	}
	if math.Abs(values["POP"]-0.2) > tolerance {
		t.Errorf("POP = %v, want 0.2", values["POP"])
	}
	if math.Abs(values["PPO"]-0.05) > tolerance {
		t.Errorf("PPO = %v, want 0.05", values["PPO"])
	}
}

func TestCalculateAbsentAcyls(t *testing.T) {
	a := &core.Sample{
		Metadata: core.Metadata{Name: "A"},
		Rows:     []core.Row{{Label: "P", FattyAcid: palmitic, TAG: 1, DAG1223: 1, MAG2: 1}},
	}
	b := twoAcids()
	b.Metadata.Name = "B"

	tags, err := Calculate(reconciled(t, a, b), Options{})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if len(tags.Rows) != 8 {
		t.Fatalf("rows = %d, want 8", len(tags.Rows))
	}
	for _, row := range tags.Rows {
		name := row.TAG.Name()
		if (row.Values[0] != nil) != (name == "PPP") {
			t.Errorf("%s: sample A value present = %v", name, row.Values[0] != nil)
		}
		if row.Values[1] == nil {
			t.Errorf("%s: sample B value missing", name)
		}
	}
}

func TestCalculateGunstone(t *testing.T) {
	_, err := Calculate(reconciled(t, twoAcids()), Options{Method: Gunstone})
	var notImplemented *core.NotImplementedError
	if !errors.As(err, &notImplemented) {
		t.Fatalf("Calculate() error = %v, want *NotImplementedError", err)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"Vanderwal", Vanderwal, false},
		{"gunstone", Gunstone, false},
		{"", Vanderwal, false},
		{"bayes", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err != nil) != tt.wantErr || (!tt.wantErr && got != tt.want) {
			t.Errorf("ParseMethod(%q) = %v, %v", tt.in, got, err)
		}
	}

	if f, err := ParseFrom("MAG2"); err != nil || f != FromMAG2 {
		t.Errorf("ParseFrom(MAG2) = %v, %v", f, err)
	}
	if _, err := ParseFrom("tag"); err == nil {
		t.Error("expected error for unknown source")
	}
}
