package survey

import (
	"fmt"
	"math/rand"
	"time"
)

// Profile shapes the records produced by Sample.
type Profile string

const (
	// ProfileRandom spreads records across every condition and both
	// delivery choices.
	ProfileRandom Profile = "random"
	// ProfileControl fabricates records for the administrative
	// "Controllo" condition with a 60/40 home/cc split.
	ProfileControl Profile = "controllo"
	// ProfileCCHeavy fabricates records that all picked Click & Collect.
	ProfileCCHeavy Profile = "cc-heavy"
)

var sampleVariants = []string{
	"Standard",
	"Scelta ecologica",
	"Emissioni CO₂ ridotte",
	"Dettagli CO₂ completi",
	"Standard (CC pre-selezionato)",
	"Scelta ecologica (CC pre-selezionato)",
	"Emissioni CO₂ ridotte (CC pre-selezionato)",
	"Dettagli CO₂ completi (CC pre-selezionato)",
	"Controllo",
}

var (
	sampleAges        = []string{"18-24", "25-34", "35-44", "45-54", "55-64"}
	sampleGenders     = []string{"male", "female", "other"}
	sampleEducations  = []string{"diploma", "bachelor", "master", "other"}
	sampleDevices     = []string{"computer", "smartphone", "tablet"}
	sampleFinancials  = []string{"struggle", "cover", "save", "buy"}
	sampleFrequencies = []string{"never", "yearly", "monthly", "few-monthly", "weekly"}
	sampleEnvValues   = []string{"never", "rarely", "sometimes", "often", "always"}
	sampleStreets     = []string{"Roma", "Milano", "Napoli", "Torino", "Firenze"}
)

// Sample fabricates n plausible completed records for development and
// demos. The records carry the full document shape of a real session.
func Sample(n int, profile Profile) []Record {
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, sampleRecord(i, profile))
	}
	return records
}

func sampleRecord(i int, profile Profile) Record {
	product := Products[rand.Intn(len(Products))]

	variantLabel := sampleVariants[rand.Intn(len(sampleVariants))]
	homeBias := 0.5
	switch profile {
	case ProfileControl:
		variantLabel = "Controllo"
		homeBias = 0.6
	case ProfileCCHeavy:
		variantLabel = sampleVariants[4+rand.Intn(4)]
		homeBias = 0
	}

	delivery := "cc"
	method := "Click & Collect"
	address := "Click & Collect - Punto di raccolta"
	if rand.Float64() < homeBias {
		delivery = "home"
		method = "Consegna a domicilio"
		address = fmt.Sprintf("Via %s %d, %s",
			sampleStreets[rand.Intn(len(sampleStreets))],
			rand.Intn(200)+1,
			sampleStreets[rand.Intn(len(sampleStreets))])
	}

	checkoutTime := int64(rand.Intn(270000) + 30000) // 30s - 5min
	totalTime := int64(rand.Intn(480000) + 120000)   // 2 - 10min
	base := time.Now().Add(-time.Duration(rand.Intn(30*24)) * time.Hour)
	start := base.UnixMilli()

	iso := func(t time.Time) string { return t.UTC().Format(time.RFC3339) }

	initial := InitialSurvey{
		Age:       pick(sampleAges),
		Gender:    pick(sampleGenders),
		Education: pick(sampleEducations),
		Device:    pick(sampleDevices),
		Financial: pick(sampleFinancials),
		Frequency: pick(sampleFrequencies),
	}
	for _, key := range InitialLikertKeys {
		initial.SetLikert(key, rand.Intn(7)+1)
	}

	final := FinalSurvey{EnvironmentalConsideration: pick(sampleEnvValues)}
	for _, key := range FinalLikertKeys {
		final.SetLikert(key, rand.Intn(7)+1)
	}

	clicks := ProductInteraction{
		ClickCount:   rand.Intn(5) + 1,
		FirstClickAt: iso(base.Add(time.Duration(totalTime-checkoutTime)*time.Millisecond - 5*time.Second)),
	}

	return Record{
		Timestamp:       iso(base),
		SessionID:       fmt.Sprintf("sample-%d-%d", start, i),
		SurveyStartTime: &start,
		TotalTimeSpent:  &totalTime,
		InitialSurvey:   &initial,
		CheckoutData: &CheckoutData{
			Product:           product,
			Variant:           variantLabel,
			CheckoutStartedAt: iso(base.Add(time.Duration(totalTime-checkoutTime) * time.Millisecond)),
			ProductClickData:  &clicks,
		},
		OrderData: &OrderData{
			FirstName:         "Anonimo",
			LastName:          "Partecipante",
			ShippingAddress:   address,
			ProductTitle:      product.Title,
			ProductPrice:      product.Price,
			ProductID:         product.ID,
			DeliveryMethod:    method,
			DeliveryValue:     delivery,
			CheckoutTimeSpent: &checkoutTime,
			OrderCompletedAt:  iso(base.Add(time.Duration(totalTime)*time.Millisecond - 10*time.Second)),
		},
		FinalSurvey: &final,
		ProductInteractions: map[string]ProductInteraction{
			fmt.Sprintf("%d", product.ID): clicks,
		},
		CompletedAt:              iso(base.Add(time.Duration(totalTime) * time.Millisecond)),
		InitialSurveyCompletedAt: iso(base.Add(2 * time.Minute)),
		EcommerceStartedAt:       iso(base.Add(time.Duration(totalTime-checkoutTime)*time.Millisecond - 15*time.Second)),
		FinalSurveyCompletedAt:   iso(base.Add(time.Duration(totalTime) * time.Millisecond)),
	}
}

func pick(values []string) *string {
	v := values[rand.Intn(len(values))]
	return &v
}
