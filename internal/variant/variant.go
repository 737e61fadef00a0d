// Package variant implements the random assignment of a participant to
// one of the checkout nudge conditions, and is the single source of
// truth for the condition labels, their export codes and their
// presentation order.
package variant

import (
	"math/rand"
	"strings"
)

// Treatment is one of the four base checkout framings.
type Treatment int

const (
	Standard Treatment = iota + 1
	EcoChoice
	ReducedCO2
	FullCO2Details
)

// Treatment display labels, as stored in the records.
const (
	labelStandard   = "Standard"
	labelEco        = "Scelta ecologica"
	labelReducedCO2 = "Emissioni CO₂ ridotte"
	labelFullCO2    = "Dettagli CO₂ completi"

	// PreselectedSuffix marks the conditions where Click & Collect is
	// the default delivery selection.
	PreselectedSuffix = " (CC pre-selezionato)"

	// LabelControl is assigned only by administrative relabeling, never
	// by Assign.
	LabelControl = "Controllo"
)

// Delivery values as stored in orderData.deliveryValue.
const (
	DeliveryHome = "home"
	DeliveryCC   = "cc"
)

// Assignment is the outcome of one draw. It is fixed for the rest of
// the session once the participant enters the checkout.
type Assignment struct {
	Draw        int
	Treatment   Treatment
	Preselected bool
}

// Assign draws uniformly from [1,8] and derives the condition.
func Assign() Assignment {
	return FromDraw(rand.Intn(8) + 1)
}

// FromDraw derives the condition from a raw draw. Draws above 4 select
// the pre-selected counterpart of treatments 1-4; anything out of range
// falls back to Standard.
func FromDraw(draw int) Assignment {
	pre := draw > 4
	base := draw
	if pre {
		base = draw - 4
	}
	t := Treatment(base)
	if t < Standard || t > FullCO2Details {
		t = Standard
	}
	return Assignment{Draw: draw, Treatment: t, Preselected: pre}
}

func (t Treatment) label() string {
	switch t {
	case EcoChoice:
		return labelEco
	case ReducedCO2:
		return labelReducedCO2
	case FullCO2Details:
		return labelFullCO2
	default:
		return labelStandard
	}
}

// Label returns the display label stored in checkoutData.variant.
func (a Assignment) Label() string {
	if a.Preselected {
		return a.Treatment.label() + PreselectedSuffix
	}
	return a.Treatment.label()
}

// DefaultDelivery is the delivery option shown pre-selected to the
// participant. The participant may still override it before confirming.
func (a Assignment) DefaultDelivery() string {
	if a.Preselected {
		return DeliveryCC
	}
	return DeliveryHome
}

// Disclosure is the supplementary content attached to the Click &
// Collect option for treatments 2-4.
type Disclosure struct {
	Badge   string `json:"badge,omitempty"`
	Title   string `json:"title,omitempty"`
	Details string `json:"details,omitempty"`
}

// Disclosure returns the content for the assignment's treatment, or nil
// for Standard.
func (a Assignment) Disclosure() *Disclosure {
	switch a.Treatment {
	case EcoChoice:
		return &Disclosure{Badge: "Scelta ecologica"}
	case ReducedCO2:
		return &Disclosure{Badge: "-15% emissioni CO₂: urbane · -5% rurali vs Consegna a domicilio"}
	case FullCO2Details:
		return &Disclosure{
			Title: "Calcolo emissioni CO₂e (kg per collo)",
			Details: "Scenario urbano\n" +
				"Tratta hub → pickup point: 4,1 km · 0,158 kg/km = 0,65 kg\n" +
				"C&C: 0,65 kg ÷ 2 pacchi = 0,33 kg\n" +
				"Delivery: furgone casa-per-casa (4,1 km) = 0,41 kg\n\n" +
				"Scenario rurale\n" +
				"Tratta hub → borgo: 16 km · 0,158 kg/km = 2,53 kg\n" +
				"C&C: 2,53 kg ÷ 6 pacchi = 0,42 kg\n" +
				"Delivery: percorso singolo casa (16 km) = 0,50 kg\n\n" +
				"Fattore emissione: 0,158 kg·km⁻¹ (furgone diesel Euro 6)",
		}
	default:
		return nil
	}
}

// CanonicalLabels lists the 9 labels Assign can produce plus the
// administrative Controllo label.
func CanonicalLabels() []string {
	labels := make([]string, 0, 9)
	labels = append(labels, LabelControl)
	for _, t := range []Treatment{Standard, EcoChoice, ReducedCO2, FullCO2Details} {
		labels = append(labels, t.label(), t.label()+PreselectedSuffix)
	}
	return labels
}

// orderedCodes maps each canonical label to its export code. Stored
// records written before the subscript glyph was adopted carry "CO2";
// Normalize folds them onto the canonical spelling.
var orderedCodes = map[string]int{
	LabelControl:                        1,
	labelStandard:                       2,
	labelStandard + PreselectedSuffix:   3,
	labelEco:                            4,
	labelEco + PreselectedSuffix:        5,
	labelReducedCO2:                     6,
	labelReducedCO2 + PreselectedSuffix: 7,
	labelFullCO2:                        8,
	labelFullCO2 + PreselectedSuffix:    9,
}

// Normalize trims a stored label and folds legacy "CO2" spellings onto
// the canonical "CO₂".
func Normalize(label string) string {
	return strings.ReplaceAll(strings.TrimSpace(label), "CO2", "CO₂")
}

// OrderedCode returns the 1..9 export code for a stored label, or 0 for
// anything outside the canonical set.
func OrderedCode(label string) int {
	return orderedCodes[Normalize(label)]
}

// IsPreselectedLabel reports whether a stored label denotes a
// pre-selected condition.
func IsPreselectedLabel(label string) bool {
	return strings.Contains(Normalize(label), PreselectedSuffix[1:])
}

// SortPriority orders labels for reporting so that each treatment's
// plain condition immediately precedes its pre-selected counterpart, in
// treatment order. Unrecognized labels sort last.
func SortPriority(label string) int {
	l := strings.ToLower(label)
	pre := strings.Contains(l, "pre") && (strings.Contains(l, "selez") || strings.Contains(l, "impost"))
	base := -1
	switch {
	case strings.Contains(l, "standard"):
		base = 0
	case strings.Contains(l, "ecologic"):
		base = 2
	case strings.Contains(l, "emission"):
		base = 4
	case strings.Contains(l, "dettagl"):
		base = 6
	default:
		return 999
	}
	if pre {
		return base + 1
	}
	return base
}
