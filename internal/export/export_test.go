package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/francescabuggio/ecocart/internal/export"
	"github.com/francescabuggio/ecocart/internal/survey"
)

func TestHeaders(t *testing.T) {
	want := 21 + len(survey.InitialLikertKeys) + len(survey.FinalLikertKeys)
	if len(export.Headers) != want {
		t.Fatalf("len(Headers) = %d, want %d", len(export.Headers), want)
	}
	if export.Headers[0] != "Timestamp" || export.Headers[1] != "SessionID" {
		t.Errorf("headers start with %v", export.Headers[:2])
	}
	if !strings.HasPrefix(export.Headers[21], "initial_") {
		t.Errorf("first likert column = %q", export.Headers[21])
	}
	if last := export.Headers[len(export.Headers)-1]; !strings.HasPrefix(last, "final_") {
		t.Errorf("last column = %q", last)
	}
}

func TestWriteCSV(t *testing.T) {
	records := survey.Sample(3, survey.ProfileRandom)

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want header + 3", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(export.Headers) {
			t.Errorf("row %d has %d cells, want %d", i, len(row), len(export.Headers))
		}
	}
	if rows[1][1] != records[0].SessionID {
		t.Errorf("SessionID cell = %q, want %q", rows[1][1], records[0].SessionID)
	}
}

func TestRow_VariantColumns(t *testing.T) {
	rec := survey.Sample(1, survey.ProfileRandom)[0]
	rec.CheckoutData.Variant = "Scelta ecologica (CC pre-selezionato)"

	row := export.Row(&rec)
	cells := map[string]string{}
	for i, h := range export.Headers {
		cells[h] = row[i]
	}

	if cells["CheckoutVariant"] != "Scelta ecologica (CC pre-selezionato)" {
		t.Errorf("CheckoutVariant = %q", cells["CheckoutVariant"])
	}
	if cells["CheckoutVariant_Code"] != "5" {
		t.Errorf("CheckoutVariant_Code = %q, want 5", cells["CheckoutVariant_Code"])
	}
	if cells["CheckoutVariant_IsPreselected"] != "1" {
		t.Errorf("CheckoutVariant_IsPreselected = %q, want 1", cells["CheckoutVariant_IsPreselected"])
	}
}

func TestRow_AbsentFieldsAreEmptyCells(t *testing.T) {
	rec := survey.Record{SessionID: "bare", Timestamp: "2025-03-10T09:00:00Z"}

	row := export.Row(&rec)
	cells := map[string]string{}
	for i, h := range export.Headers {
		cells[h] = row[i]
	}

	for _, h := range []string{"Age", "ProductTitle", "CheckoutTimeSeconds",
		"CheckoutVariant", "CheckoutVariant_Code", "EnvironmentalConsideration",
		"TotalTimeMinutes", "ProductClicks", "initial_get_tired", "final_feel_guilty"} {
		if cells[h] != "" {
			t.Errorf("%s = %q, want empty", h, cells[h])
		}
	}
	if cells["CheckoutVariant_IsPreselected"] != "0" {
		t.Errorf("CheckoutVariant_IsPreselected = %q, want 0", cells["CheckoutVariant_IsPreselected"])
	}
	if cells["SessionID"] != "bare" {
		t.Errorf("SessionID = %q", cells["SessionID"])
	}
}

func TestRow_TimeConversions(t *testing.T) {
	rec := survey.Sample(1, survey.ProfileRandom)[0]
	checkout := int64(91_400) // rounds to 91s
	total := int64(150_000)   // rounds to 3min
	rec.OrderData.CheckoutTimeSpent = &checkout
	rec.TotalTimeSpent = &total

	row := export.Row(&rec)
	cells := map[string]string{}
	for i, h := range export.Headers {
		cells[h] = row[i]
	}

	if cells["CheckoutTimeSeconds"] != "91" {
		t.Errorf("CheckoutTimeSeconds = %q, want 91", cells["CheckoutTimeSeconds"])
	}
	if cells["TotalTimeMinutes"] != "3" {
		t.Errorf("TotalTimeMinutes = %q, want 3", cells["TotalTimeMinutes"])
	}
}

func TestWriteJSON(t *testing.T) {
	records := survey.Sample(2, survey.ProfileRandom)

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out struct {
		Responses []survey.Record `json:"responses"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Responses) != 2 {
		t.Fatalf("len = %d, want 2", len(out.Responses))
	}
	if out.Responses[0].SessionID != records[0].SessionID {
		t.Errorf("SessionID = %q, want %q", out.Responses[0].SessionID, records[0].SessionID)
	}
}
