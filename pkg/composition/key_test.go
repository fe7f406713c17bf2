package composition

import (
	"testing"

	"github.com/ChrisMcGann/TAGKey/pkg/core"
)

var (
	palmitic  = core.Acyl{Label: "P", FattyAcid: core.FattyAcid{Carbons: 16}}
	stearic   = core.Acyl{Label: "S", FattyAcid: core.FattyAcid{Carbons: 18}}
	oleic     = core.Acyl{Label: "O", FattyAcid: core.FattyAcid{Carbons: 18, Unsaturated: []core.Bond{{Position: 9, Isomerism: core.Cis, Order: core.Double}}}}
	linoleic  = core.Acyl{Label: "L", FattyAcid: core.FattyAcid{Carbons: 18, Unsaturated: []core.Bond{{Position: 9, Order: core.Double}, {Position: 12, Order: core.Double}}}}
	optionsNa = KeyOptions{Adduct: 22.989218, Precision: 1}
)

func TestKey(t *testing.T) {
	tag := core.Triacylglycerol{oleic, palmitic, linoleic} // O-P-L

	tests := []struct {
		c    Composition
		want string
	}{
		{SSC, "OPL"},
		{PSC, "LPO"},
		{NSC, "LOP"},
		{STC, "USU"},
		{PTC, "USU"},
		{NTC, "SUU"},
		{ECNC, "46"},
		{SECNC, "16-16-14"},
		{Composition{EquivalentCarbonNumber, Positional}, "14-16-16"},
		{Composition{EquivalentCarbonNumber, NonStereospecific}, "14-16-16"},
		{UC, "3"},
		{Composition{Unsaturation, Stereospecific}, "1-0-2"},
		{MC, "879.7"},
	}

	for _, tt := range tests {
		t.Run(tt.c.String(), func(t *testing.T) {
			got, err := tt.c.Key(tag, optionsNa)
			if err != nil {
				t.Fatalf("Key() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Key() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestKeyCollapsesPermutations(t *testing.T) {
	pop := core.Triacylglycerol{palmitic, oleic, palmitic}
	ppo := core.Triacylglycerol{palmitic, palmitic, oleic}
	opp := core.Triacylglycerol{oleic, palmitic, palmitic}

	key := func(c Composition, tag core.Triacylglycerol) string {
		k, err := c.Key(tag, optionsNa)
		if err != nil {
			t.Fatalf("Key() error = %v", err)
		}
		return k.String()
	}

	if key(NSC, pop) != key(NSC, ppo) || key(NSC, ppo) != key(NSC, opp) {
		t.Error("non-stereospecific keys should ignore positions")
	}
	if key(PSC, ppo) != key(PSC, opp) {
		t.Error("positional keys should treat sn-1 and sn-3 alike")
	}
	if key(PSC, pop) == key(PSC, ppo) {
		t.Error("positional keys should keep sn-2 apart")
	}
	if key(SSC, ppo) == key(SSC, opp) {
		t.Error("stereospecific keys should keep sn-1 and sn-3 apart")
	}
	if key(MC, pop) != key(MC, opp) {
		t.Error("mass keys should not depend on positions")
	}
}

func TestKeyRejectsUnsupported(t *testing.T) {
	tag := core.Triacylglycerol{palmitic, stearic, palmitic}
	if _, err := (Composition{Species, Aggregation}).Key(tag, optionsNa); err == nil {
		t.Error("expected error for species aggregation")
	}
}

func TestKeyCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Key
		want int
	}{
		{"numbers", NumberKey(48), NumberKey(50), -1},
		{"numbers not strings", NumberKey(8), NumberKey(16), -1},
		{"tuples", NumberKey(16, 16, 14), NumberKey(16, 14, 18), 1},
		{"equal tuples", NumberKey(1, 2), NumberKey(1, 2), 0},
		{"text", TextKey("OOP"), TextKey("POP"), -1},
		{"labels", TextKey("A", "AA"), TextKey("AA", "A"), -1},
		{"numeric before text", NumberKey(1), TextKey("A"), -1},
		{"text after numeric", TextKey("A"), NumberKey(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKeyMultiCharacterLabels(t *testing.T) {
	a := core.Acyl{Label: "A", FattyAcid: core.FattyAcid{Carbons: 16}}
	aa := core.Acyl{Label: "AA", FattyAcid: core.FattyAcid{Carbons: 18}}

	first, err := SSC.Key(core.Triacylglycerol{a, a, aa}, optionsNa)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	last, err := SSC.Key(core.Triacylglycerol{aa, a, a}, optionsNa)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}

	if first.Compare(last) == 0 {
		t.Error("keys with different label positions compare equal")
	}
	if string(first.AppendIdentity(nil)) == string(last.AppendIdentity(nil)) {
		t.Error("keys with different label positions share an identity")
	}
	if first.String() != "A-A-AA" || last.String() != "AA-A-A" {
		t.Errorf("String() = %q, %q", first.String(), last.String())
	}
}

func TestKeyIdentity(t *testing.T) {
	keys := []Key{
		TextKey("A", "A", "AA"),
		TextKey("AA", "A", "A"),
		TextKey("AAA", "A"),
		NumberKey(48),
		NumberKey(16, 16, 16),
	}
	seen := make(map[string]int)
	for i, k := range keys {
		id := string(k.AppendIdentity(nil))
		if j, ok := seen[id]; ok {
			t.Errorf("keys %d and %d share an identity", j, i)
		}
		seen[id] = i
	}
	if string(TextKey("P", "O").AppendIdentity(nil)) != string(TextKey("P", "O").AppendIdentity(nil)) {
		t.Error("identity is not stable")
	}
}

func TestMassRefinesECNAndUnsaturation(t *testing.T) {
	stearolic := core.Acyl{Label: "St", FattyAcid: core.FattyAcid{Carbons: 18, Unsaturated: []core.Bond{{Position: 9, Order: core.Triple}}}}
	double := core.Triacylglycerol{palmitic, oleic, palmitic}
	triple := core.Triacylglycerol{palmitic, stearolic, palmitic}

	for _, c := range []Composition{ECNC, UC} {
		a, _ := c.Key(double, optionsNa)
		b, _ := c.Key(triple, optionsNa)
		if a.Compare(b) != 0 {
			t.Errorf("%s keys differ: %s vs %s", c, a, b)
		}
	}

	a, _ := MC.Key(double, optionsNa)
	b, _ := MC.Key(triple, optionsNa)
	if a.Compare(b) == 0 {
		t.Errorf("MC keys equal (%s), a triple bond should lower the mass", a)
	}
}
