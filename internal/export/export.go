// Package export flattens survey records into the fixed column schema
// used for spreadsheet analysis. The derived variant columns come from
// the variant package so the codes cannot drift from the labels the
// assigner produces.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/francescabuggio/ecocart/internal/survey"
	"github.com/francescabuggio/ecocart/internal/variant"
)

// Headers is the fixed column schema: the base columns followed by one
// column per initial and final Likert question.
var Headers = buildHeaders()

var baseHeaders = []string{
	"Timestamp", "SessionID", "Age", "Gender", "Education", "Device",
	"Financial", "Frequency", "ProductTitle", "ProductID", "DeliveryMethod",
	"DeliveryValue", "CheckoutTimeSeconds", "CheckoutVariant",
	"CheckoutVariant_Code", "CheckoutVariant_IsPreselected",
	"EnvironmentalConsideration", "TotalTimeMinutes", "ProductClicks",
	"StartedAt", "CompletedAt",
}

func buildHeaders() []string {
	headers := make([]string, 0, len(baseHeaders)+len(survey.InitialLikertKeys)+len(survey.FinalLikertKeys))
	headers = append(headers, baseHeaders...)
	for _, key := range survey.InitialLikertKeys {
		headers = append(headers, "initial_"+key)
	}
	for _, key := range survey.FinalLikertKeys {
		headers = append(headers, "final_"+key)
	}
	return headers
}

// Row flattens one record into the column schema. Absent fields become
// empty cells, never placeholders.
func Row(rec *survey.Record) []string {
	row := make([]string, 0, len(Headers))

	var age, gender, education, device, financial, frequency string
	if init := rec.InitialSurvey; init != nil {
		age = deref(init.Age)
		gender = deref(init.Gender)
		education = deref(init.Education)
		device = deref(init.Device)
		financial = deref(init.Financial)
		frequency = deref(init.Frequency)
	}

	var productTitle, productID, deliveryMethod, deliveryValue, checkoutSeconds string
	if od := rec.OrderData; od != nil {
		productTitle = od.ProductTitle
		productID = strconv.Itoa(od.ProductID)
		deliveryMethod = od.DeliveryMethod
		deliveryValue = od.DeliveryValue
		if od.CheckoutTimeSpent != nil {
			checkoutSeconds = strconv.FormatInt((*od.CheckoutTimeSpent+500)/1000, 10)
		}
	}

	var variantLabel string
	if rec.CheckoutData != nil {
		variantLabel = rec.CheckoutData.Variant
	}
	variantCode := ""
	preselected := "0"
	if variantLabel != "" {
		variantCode = strconv.Itoa(variant.OrderedCode(variantLabel))
		if variant.IsPreselectedLabel(variantLabel) {
			preselected = "1"
		}
	}

	environmental := ""
	if rec.FinalSurvey != nil {
		environmental = deref(rec.FinalSurvey.EnvironmentalConsideration)
	}

	totalMinutes := ""
	if rec.TotalTimeSpent != nil {
		totalMinutes = strconv.FormatInt((*rec.TotalTimeSpent+30000)/60000, 10)
	}

	clicks := ""
	if len(rec.ProductInteractions) > 0 {
		clicks = strconv.Itoa(rec.TotalClicks())
	}

	row = append(row,
		rec.Timestamp, rec.SessionID, age, gender, education, device,
		financial, frequency, productTitle, productID, deliveryMethod,
		deliveryValue, checkoutSeconds, variantLabel,
		variantCode, preselected,
		environmental, totalMinutes, clicks,
		rec.Timestamp, rec.CompletedAt,
	)

	for _, key := range survey.InitialLikertKeys {
		row = append(row, likertCell(rec.InitialSurvey.Likert(key)))
	}
	for _, key := range survey.FinalLikertKeys {
		row = append(row, likertCell(rec.FinalSurvey.Likert(key)))
	}
	return row
}

// WriteCSV streams the header and one row per record.
func WriteCSV(w io.Writer, records []survey.Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range records {
		if err := cw.Write(Row(&records[i])); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON emits the raw record documents, indented.
func WriteJSON(w io.Writer, records []survey.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Responses []survey.Record `json:"responses"`
	}{Responses: records})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func likertCell(v int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(v)
}
