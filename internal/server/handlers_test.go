package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/francescabuggio/ecocart/internal/server"
	"github.com/francescabuggio/ecocart/internal/stats"
	"github.com/francescabuggio/ecocart/internal/store"
	"github.com/francescabuggio/ecocart/internal/survey"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	s, err := store.Open(context.Background(), store.DriverSQLite,
		filepath.Join(t.TempDir(), "ecocart.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	srv := server.New(s, stats.New(1, 7), zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, s
}

type stepResp struct {
	SessionID       string `json:"sessionId"`
	Step            string `json:"step"`
	Variant         string `json:"variant"`
	DefaultDelivery string `json:"defaultDelivery"`
	Disclosure      *struct {
		Badge   string `json:"badge"`
		Title   string `json:"title"`
		Details string `json:"details"`
	} `json:"disclosure"`
	Saved *bool `json:"saved"`
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

func advance(t *testing.T, ts *httptest.Server, id, body string) stepResp {
	t.Helper()
	resp, data := postJSON(t, ts.URL+"/api/session/"+id+"/advance", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("advance %s: status %d: %s", body, resp.StatusCode, data)
	}
	var sr stepResp
	if err := json.Unmarshal(data, &sr); err != nil {
		t.Fatalf("advance response: %v", err)
	}
	return sr
}

func TestWizardFlow(t *testing.T) {
	ts, s := newTestServer(t)

	resp, data := postJSON(t, ts.URL+"/api/session", "{}")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start session: status %d", resp.StatusCode)
	}
	var start stepResp
	if err := json.Unmarshal(data, &start); err != nil {
		t.Fatalf("start response: %v", err)
	}
	if start.SessionID == "" || start.Step != "consent" {
		t.Fatalf("start = %+v", start)
	}
	id := start.SessionID

	sr := advance(t, ts, id, `{"consent":true}`)
	if sr.Step != "initial" {
		t.Fatalf("after consent: %q", sr.Step)
	}

	sr = advance(t, ts, id, `{"demographics":{"age":"25-34","gender":"female"}}`)
	if sr.Step != "likert" {
		t.Fatalf("after demographics: %q", sr.Step)
	}

	sr = advance(t, ts, id, `{"likert":{"get_tired":5,"open_tabs":3}}`)
	if sr.Step != "scenario" {
		t.Fatalf("after likert: %q", sr.Step)
	}

	sr = advance(t, ts, id, `{}`)
	if sr.Step != "shop" {
		t.Fatalf("after scenario: %q", sr.Step)
	}

	// Browsing clicks while in the shop.
	for i := 0; i < 2; i++ {
		resp, _ := postJSON(t, ts.URL+"/api/session/"+id+"/click", `{"productId":1}`)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("click: status %d", resp.StatusCode)
		}
	}

	sr = advance(t, ts, id, `{"productId":1}`)
	if sr.Step != "checkout" {
		t.Fatalf("after shop: %q", sr.Step)
	}
	if sr.Variant == "" || sr.DefaultDelivery == "" {
		t.Fatalf("checkout payload = %+v", sr)
	}
	if sr.DefaultDelivery != "home" && sr.DefaultDelivery != "cc" {
		t.Fatalf("default delivery = %q", sr.DefaultDelivery)
	}

	order := `{"order":{"delivery":"home","address":"Via Roma 1, Milano"}}`
	sr = advance(t, ts, id, order)
	if sr.Step != "success" {
		t.Fatalf("after order: %q", sr.Step)
	}

	sr = advance(t, ts, id, `{}`)
	if sr.Step != "final" {
		t.Fatalf("after success: %q", sr.Step)
	}

	sr = advance(t, ts, id, `{"final":{"environmental":"often","likert":{"feel_guilty":2}}}`)
	if sr.Step != "complete" {
		t.Fatalf("after final: %q", sr.Step)
	}
	if sr.Saved == nil || !*sr.Saved {
		t.Fatalf("saved = %v, want true", sr.Saved)
	}

	count, err := s.CountResponses(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("stored responses = %d, want 1", count)
	}
}

func TestAdvance_ConsentRefused(t *testing.T) {
	ts, _ := newTestServer(t)

	_, data := postJSON(t, ts.URL+"/api/session", "{}")
	var start stepResp
	json.Unmarshal(data, &start)

	resp, _ := postJSON(t, ts.URL+"/api/session/"+start.SessionID+"/advance", `{"consent":false}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAdvance_UnknownSession(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := postJSON(t, ts.URL+"/api/session/nope/advance", `{"consent":true}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestAdvance_MissingField(t *testing.T) {
	ts, _ := newTestServer(t)

	_, data := postJSON(t, ts.URL+"/api/session", "{}")
	var start stepResp
	json.Unmarshal(data, &start)

	// Consent step but no consent field in the body.
	resp, body := postJSON(t, ts.URL+"/api/session/"+start.SessionID+"/advance", `{"productId":1}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", resp.StatusCode, body)
	}
}

func TestQuestions(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/questions")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Products      []survey.Product  `json:"products"`
		Demographics  []survey.Question `json:"demographics"`
		InitialLikert []struct{}        `json:"initialLikert"`
		FinalLikert   []struct{}        `json:"finalLikert"`
		LikertScale   []string          `json:"likertScale"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Products) != 3 {
		t.Errorf("products = %d, want 3", len(out.Products))
	}
	if len(out.Demographics) != 6 {
		t.Errorf("demographics = %d, want 6", len(out.Demographics))
	}
	if len(out.InitialLikert) != 13 || len(out.FinalLikert) != 8 {
		t.Errorf("likert questions = %d / %d, want 13 / 8",
			len(out.InitialLikert), len(out.FinalLikert))
	}
	if len(out.LikertScale) != 7 {
		t.Errorf("likert scale = %d, want 7", len(out.LikertScale))
	}
}

func TestStats(t *testing.T) {
	ts, s := newTestServer(t)
	ctx := context.Background()

	for _, rec := range survey.Sample(4, survey.ProfileRandom) {
		if _, err := s.SaveResponse(ctx, rec); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	resp, err := http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var out stats.Stats
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.TotalResponses != 4 {
		t.Errorf("totalResponses = %d, want 4", out.TotalResponses)
	}
	if out.LastUpdate == "" {
		t.Error("lastUpdate missing")
	}
}

func TestResponses(t *testing.T) {
	ts, s := newTestServer(t)
	ctx := context.Background()

	rec := survey.Sample(1, survey.ProfileRandom)[0]
	if _, err := s.SaveResponse(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	resp, err := http.Get(ts.URL + "/api/responses")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		Responses []survey.Record `json:"responses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Responses) != 1 || out.Responses[0].SessionID != rec.SessionID {
		t.Errorf("responses = %+v", out.Responses)
	}
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var out server.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Status != "ok" {
		t.Errorf("status = %q, want ok", out.Status)
	}
	if out.ResponseCount != 0 {
		t.Errorf("response count = %d, want 0", out.ResponseCount)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	postJSON(t, ts.URL+"/api/session", "{}")

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)

	if !strings.Contains(buf.String(), "ecocart_sessions_started_total 1") {
		t.Errorf("metrics output missing session counter:\n%s", buf.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/session", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, want *", got)
	}
}
