package variant_test

import (
	"testing"

	"github.com/francescabuggio/ecocart/internal/variant"
)

func TestAssign_DrawRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a := variant.Assign()
		if a.Draw < 1 || a.Draw > 8 {
			t.Fatalf("draw %d out of range [1,8]", a.Draw)
		}
		if a.Preselected != (a.Draw > 4) {
			t.Fatalf("draw %d: preselected = %v", a.Draw, a.Preselected)
		}
	}
}

func TestAssign_NeverControl(t *testing.T) {
	canonical := map[string]bool{}
	for _, l := range variant.CanonicalLabels() {
		canonical[l] = true
	}

	for i := 0; i < 1000; i++ {
		label := variant.Assign().Label()
		if label == variant.LabelControl {
			t.Fatal("Assign produced the administrative control label")
		}
		if !canonical[label] {
			t.Fatalf("Assign produced non-canonical label %q", label)
		}
	}
}

func TestFromDraw_Labels(t *testing.T) {
	cases := []struct {
		draw  int
		label string
		pre   bool
	}{
		{1, "Standard", false},
		{2, "Scelta ecologica", false},
		{3, "Emissioni CO₂ ridotte", false},
		{4, "Dettagli CO₂ completi", false},
		{5, "Standard (CC pre-selezionato)", true},
		{6, "Scelta ecologica (CC pre-selezionato)", true},
		{7, "Emissioni CO₂ ridotte (CC pre-selezionato)", true},
		{8, "Dettagli CO₂ completi (CC pre-selezionato)", true},
	}

	for _, c := range cases {
		a := variant.FromDraw(c.draw)
		if a.Label() != c.label {
			t.Errorf("draw %d: label = %q, want %q", c.draw, a.Label(), c.label)
		}
		if a.Preselected != c.pre {
			t.Errorf("draw %d: preselected = %v, want %v", c.draw, a.Preselected, c.pre)
		}
	}
}

func TestFromDraw_OutOfRangeFallsBackToStandard(t *testing.T) {
	for _, draw := range []int{0, -3, 9, 100} {
		a := variant.FromDraw(draw)
		if a.Treatment != variant.Standard {
			t.Errorf("draw %d: treatment = %v, want Standard", draw, a.Treatment)
		}
	}
	if got := variant.FromDraw(0).Label(); got != "Standard" {
		t.Errorf("draw 0: label = %q, want Standard", got)
	}
}

func TestDefaultDelivery(t *testing.T) {
	if got := variant.FromDraw(2).DefaultDelivery(); got != variant.DeliveryHome {
		t.Errorf("draw 2: default delivery = %q, want home", got)
	}
	if got := variant.FromDraw(6).DefaultDelivery(); got != variant.DeliveryCC {
		t.Errorf("draw 6: default delivery = %q, want cc", got)
	}
}

func TestDisclosure(t *testing.T) {
	if d := variant.FromDraw(1).Disclosure(); d != nil {
		t.Errorf("Standard disclosure = %+v, want nil", d)
	}
	if d := variant.FromDraw(2).Disclosure(); d == nil || d.Badge != "Scelta ecologica" {
		t.Errorf("EcoChoice disclosure = %+v", d)
	}
	if d := variant.FromDraw(3).Disclosure(); d == nil || d.Badge == "" {
		t.Errorf("ReducedCO2 disclosure = %+v", d)
	}
	d := variant.FromDraw(8).Disclosure()
	if d == nil || d.Title == "" || d.Details == "" {
		t.Errorf("FullCO2Details disclosure = %+v", d)
	}
}

func TestOrderedCode_Table(t *testing.T) {
	cases := map[string]int{
		"Controllo":                                   1,
		"Standard":                                    2,
		"Standard (CC pre-selezionato)":               3,
		"Scelta ecologica":                            4,
		"Scelta ecologica (CC pre-selezionato)":       5,
		"Emissioni CO₂ ridotte":                       6,
		"Emissioni CO₂ ridotte (CC pre-selezionato)":  7,
		"Dettagli CO₂ completi":                       8,
		"Dettagli CO₂ completi (CC pre-selezionato)":  9,
		"":                                            0,
		"qualcosa di inatteso":                        0,
		"  Standard  ":                                2,
		"Emissioni CO2 ridotte":                       6,
		"Dettagli CO2 completi (CC pre-selezionato)":  9,
	}

	for label, want := range cases {
		if got := variant.OrderedCode(label); got != want {
			t.Errorf("OrderedCode(%q) = %d, want %d", label, got, want)
		}
	}
}

// Every label the assigner can produce must carry a nonzero export code,
// so the codes cannot silently drift from the assigner.
func TestOrderedCode_CoversAssignerOutput(t *testing.T) {
	for draw := 1; draw <= 8; draw++ {
		label := variant.FromDraw(draw).Label()
		if variant.OrderedCode(label) == 0 {
			t.Errorf("draw %d produces label %q with no export code", draw, label)
		}
	}
}

func TestIsPreselectedLabel(t *testing.T) {
	if variant.IsPreselectedLabel("Standard") {
		t.Error("plain Standard reported as pre-selected")
	}
	if !variant.IsPreselectedLabel("Standard (CC pre-selezionato)") {
		t.Error("pre-selected Standard not recognized")
	}
}

func TestSortPriority_PairsAdjacent(t *testing.T) {
	for draw := 1; draw <= 4; draw++ {
		plain := variant.FromDraw(draw).Label()
		pre := variant.FromDraw(draw + 4).Label()
		if variant.SortPriority(pre) != variant.SortPriority(plain)+1 {
			t.Errorf("%q / %q not adjacent: %d vs %d",
				plain, pre, variant.SortPriority(plain), variant.SortPriority(pre))
		}
	}
}

func TestSortPriority_UnknownSortsLast(t *testing.T) {
	if got := variant.SortPriority("qualcosa"); got != 999 {
		t.Errorf("unknown label priority = %d, want 999", got)
	}
	if variant.SortPriority("Controllo") != 999 {
		t.Error("Controllo should sort after the canonical conditions")
	}
}
