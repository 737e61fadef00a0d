package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/francescabuggio/ecocart/internal/session"
	"github.com/francescabuggio/ecocart/internal/survey"
	"github.com/francescabuggio/ecocart/internal/variant"
)

type HealthResponse struct {
	Status        string `json:"status"`
	ResponseCount int    `json:"response_count"`
	DBSizeBytes   int64  `json:"db_size_bytes"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := s.store.CountResponses(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	size, err := s.store.SizeBytes(ctx)
	if err != nil {
		size = 0
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		ResponseCount: count,
		DBSizeBytes:   size,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	})
}

// stepResponse describes where the session stands after a transition.
// The checkout step additionally carries the assigned condition.
type stepResponse struct {
	SessionID string `json:"sessionId"`
	Step      string `json:"step"`

	Variant         string              `json:"variant,omitempty"`
	DefaultDelivery string              `json:"defaultDelivery,omitempty"`
	Disclosure      *variant.Disclosure `json:"disclosure,omitempty"`

	Saved *bool `json:"saved,omitempty"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	st := s.sessions.start()
	s.metrics.sessionsStarted.Inc()
	writeJSON(w, http.StatusCreated, stepResponse{
		SessionID: st.Record.SessionID,
		Step:      string(st.Step),
	})
}

// advanceRequest is the union of all step submissions; the session's
// current step picks which part is read.
type advanceRequest struct {
	Consent      *bool             `json:"consent,omitempty"`
	Demographics *demographicsBody `json:"demographics,omitempty"`
	Likert       map[string]int    `json:"likert,omitempty"`
	ProductID    *int              `json:"productId,omitempty"`
	Order        *orderBody        `json:"order,omitempty"`
	Final        *finalBody        `json:"final,omitempty"`
}

type demographicsBody struct {
	Age       string `json:"age"`
	Gender    string `json:"gender"`
	Education string `json:"education"`
	Device    string `json:"device"`
	Financial string `json:"financial"`
	Frequency string `json:"frequency"`
}

type orderBody struct {
	Delivery string `json:"delivery"`
	Address  string `json:"address"`
}

type finalBody struct {
	Environmental string         `json:"environmental"`
	Likert        map[string]int `json:"likert"`
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	st, _, err := s.sessions.get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	in, err := inputForStep(st.Step, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	next, err := s.sessions.advance(id, in)
	if err != nil {
		s.writeAdvanceError(w, err)
		return
	}

	resp := stepResponse{
		SessionID: next.Record.SessionID,
		Step:      string(next.Step),
	}
	if next.Step == session.StepCheckout && next.Assignment != nil {
		resp.Variant = next.Assignment.Label()
		resp.DefaultDelivery = next.Assignment.DefaultDelivery()
		resp.Disclosure = next.Assignment.Disclosure()
	}
	if next.Step == session.StepComplete {
		saved := s.persist(r.Context(), id, next.Record)
		resp.Saved = &saved
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		ProductID int `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if _, err := s.sessions.click(id, req.ProductID); err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"products":      survey.Products,
		"demographics":  survey.DemographicQuestions,
		"initialLikert": survey.InitialLikertQuestions,
		"finalLikert":   survey.FinalLikertQuestions,
		"environmental": survey.EnvironmentalQuestion,
		"likertScale":   survey.LikertScale,
	})
}

func (s *Server) handleResponses(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListResponses(r.Context())
	if err != nil {
		s.log.Error("failed to list responses", zap.Error(err))
		http.Error(w, "Failed to fetch responses", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Responses []survey.Record `json:"responses"`
	}{Responses: records})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListResponses(r.Context())
	if err != nil {
		s.log.Error("failed to list responses", zap.Error(err))
		http.Error(w, "Failed to fetch responses", http.StatusInternalServerError)
		return
	}
	s.metrics.aggregations.Inc()
	writeJSON(w, http.StatusOK, s.agg.Aggregate(records))
}

// persist writes the finished record at most once per session. The
// registry guard stops repeats from this process; the store's unique
// session id stops repeats across restarts. Either way a duplicate is a
// silent no-op.
func (s *Server) persist(ctx context.Context, id string, rec survey.Record) bool {
	if !s.sessions.markSaved(id) {
		return false
	}
	saved, err := s.store.SaveResponse(ctx, rec)
	if err != nil {
		s.log.Error("failed to save response", zap.String("session", id), zap.Error(err))
		return false
	}
	if !saved {
		s.metrics.responsesDuplicate.Inc()
		return false
	}
	s.metrics.responsesSaved.Inc()
	return true
}

func inputForStep(step session.Step, req *advanceRequest) (session.Input, error) {
	switch step {
	case session.StepConsent:
		if req.Consent == nil {
			return nil, errors.New("consent field required")
		}
		return session.ConsentInput{Accepted: *req.Consent}, nil
	case session.StepInitial:
		if req.Demographics == nil {
			return nil, errors.New("demographics field required")
		}
		d := req.Demographics
		return session.DemographicsInput{
			Age:       d.Age,
			Gender:    d.Gender,
			Education: d.Education,
			Device:    d.Device,
			Financial: d.Financial,
			Frequency: d.Frequency,
		}, nil
	case session.StepLikert:
		return session.LikertInput{Answers: req.Likert}, nil
	case session.StepScenario:
		return session.ScenarioInput{}, nil
	case session.StepShop:
		if req.ProductID == nil {
			return nil, errors.New("productId field required")
		}
		return session.ShopInput{ProductID: *req.ProductID}, nil
	case session.StepCheckout:
		if req.Order == nil {
			return nil, errors.New("order field required")
		}
		return session.OrderInput{Delivery: req.Order.Delivery, Address: req.Order.Address}, nil
	case session.StepSuccess:
		return session.SuccessInput{}, nil
	case session.StepFinal:
		if req.Final == nil {
			return nil, errors.New("final field required")
		}
		return session.FinalInput{Environmental: req.Final.Environmental, Answers: req.Final.Likert}, nil
	default:
		return nil, errors.New("session already completed")
	}
}

func (s *Server) writeAdvanceError(w http.ResponseWriter, err error) {
	var wrongStep *session.ErrWrongStep
	switch {
	case errors.As(err, &wrongStep),
		errors.Is(err, session.ErrConsentRequired),
		errors.Is(err, session.ErrAddressRequired),
		errors.Is(err, session.ErrUnknownProduct),
		errors.Is(err, session.ErrNoProduct):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.log.Error("advance failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
