// Package session models the participant wizard as an explicit state
// machine: one immutable State per session, advanced step by step by
// pure transitions. Persistence happens only after the terminal step,
// outside this package.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/francescabuggio/ecocart/internal/survey"
	"github.com/francescabuggio/ecocart/internal/variant"
)

// Step identifies one page of the wizard.
type Step string

const (
	StepConsent  Step = "consent"
	StepInitial  Step = "initial"
	StepLikert   Step = "likert"
	StepScenario Step = "scenario"
	StepShop     Step = "shop"
	StepCheckout Step = "checkout"
	StepSuccess  Step = "success"
	StepFinal    Step = "final"
	StepComplete Step = "complete"
)

var (
	ErrConsentRequired = errors.New("consent not given")
	ErrNoProduct       = errors.New("no product selected")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrAddressRequired = errors.New("shipping address required for home delivery")
	ErrCompleted       = errors.New("session already completed")
)

// ErrWrongStep reports an input that does not match the session's
// current step.
type ErrWrongStep struct {
	Current Step
	Input   Step
}

func (e *ErrWrongStep) Error() string {
	return fmt.Sprintf("step %q input while session is at %q", e.Input, e.Current)
}

// State is the full progress of one session. Values are passed and
// returned by value; a transition never mutates its input.
type State struct {
	Step       Step
	Record     survey.Record
	Assignment *variant.Assignment

	// Product picked in the shop, required before checkout.
	Product *survey.Product
}

// Input is one step's submission.
type Input interface {
	step() Step
}

// ConsentInput acknowledges the study information page.
type ConsentInput struct {
	Accepted bool
}

// DemographicsInput answers the six closed demographic questions.
// Empty answers stay absent in the record.
type DemographicsInput struct {
	Age       string
	Gender    string
	Education string
	Device    string
	Financial string
	Frequency string
}

// LikertInput answers the 13 initial Likert questions by question id.
type LikertInput struct {
	Answers map[string]int
}

// ScenarioInput acknowledges the scenario narrative.
type ScenarioInput struct{}

// ShopInput selects the product to buy.
type ShopInput struct {
	ProductID int
}

// OrderInput confirms the order in the checkout.
type OrderInput struct {
	Delivery string // "home" or "cc"
	Address  string
}

// SuccessInput acknowledges the order confirmation page.
type SuccessInput struct{}

// FinalInput answers the final questionnaire.
type FinalInput struct {
	Environmental string
	Answers       map[string]int
}

func (ConsentInput) step() Step      { return StepConsent }
func (DemographicsInput) step() Step { return StepInitial }
func (LikertInput) step() Step       { return StepLikert }
func (ScenarioInput) step() Step     { return StepScenario }
func (ShopInput) step() Step         { return StepShop }
func (OrderInput) step() Step        { return StepCheckout }
func (SuccessInput) step() Step      { return StepSuccess }
func (FinalInput) step() Step        { return StepFinal }

// Machine advances session states. Now and Draw are injectable for
// deterministic tests; NewMachine wires the real clock and the real
// random assignment.
type Machine struct {
	Now  func() time.Time
	Draw func() variant.Assignment
}

func NewMachine() Machine {
	return Machine{Now: time.Now, Draw: variant.Assign}
}

// Start opens a fresh session at the consent step.
func (m Machine) Start() State {
	now := m.Now()
	start := now.UnixMilli()
	return State{
		Step: StepConsent,
		Record: survey.Record{
			SessionID:       uuid.NewString(),
			Timestamp:       now.UTC().Format(time.RFC3339),
			SurveyStartTime: &start,
		},
	}
}

// Advance applies one step input and returns the next state. The input
// must belong to the session's current step.
func (m Machine) Advance(s State, in Input) (State, error) {
	if s.Step == StepComplete {
		return s, ErrCompleted
	}
	if in.step() != s.Step {
		return s, &ErrWrongStep{Current: s.Step, Input: in.step()}
	}

	switch in := in.(type) {
	case ConsentInput:
		if !in.Accepted {
			return s, ErrConsentRequired
		}
		s.Step = StepInitial
		return s, nil

	case DemographicsInput:
		init := survey.InitialSurvey{}
		setIf(&init.Age, in.Age)
		setIf(&init.Gender, in.Gender)
		setIf(&init.Education, in.Education)
		setIf(&init.Device, in.Device)
		setIf(&init.Financial, in.Financial)
		setIf(&init.Frequency, in.Frequency)
		s.Record.InitialSurvey = &init
		s.Step = StepLikert
		return s, nil

	case LikertInput:
		if s.Record.InitialSurvey == nil {
			s.Record.InitialSurvey = &survey.InitialSurvey{}
		} else {
			copied := *s.Record.InitialSurvey
			s.Record.InitialSurvey = &copied
		}
		for id, v := range in.Answers {
			s.Record.InitialSurvey.SetLikert(id, v)
		}
		s.Record.InitialSurveyCompletedAt = m.Now().UTC().Format(time.RFC3339)
		s.Step = StepScenario
		return s, nil

	case ScenarioInput:
		s.Record.EcommerceStartedAt = m.Now().UTC().Format(time.RFC3339)
		s.Step = StepShop
		return s, nil

	case ShopInput:
		p, ok := survey.ProductByID(in.ProductID)
		if !ok {
			return s, ErrUnknownProduct
		}
		s.Product = &p
		return m.enterCheckout(s), nil

	case OrderInput:
		return m.confirmOrder(s, in)

	case SuccessInput:
		s.Step = StepFinal
		return s, nil

	case FinalInput:
		fs := survey.FinalSurvey{}
		setIf(&fs.EnvironmentalConsideration, in.Environmental)
		for id, v := range in.Answers {
			fs.SetLikert(id, v)
		}
		s.Record.FinalSurvey = &fs
		s.Record.FinalSurveyCompletedAt = m.Now().UTC().Format(time.RFC3339)
		return m.complete(s), nil
	}

	return s, &ErrWrongStep{Current: s.Step, Input: in.step()}
}

// RecordClick accumulates a browsing click on a catalog product. Valid
// only while the participant is in the shop.
func (m Machine) RecordClick(s State, productID int) State {
	if s.Step != StepShop {
		return s
	}
	key := strconv.Itoa(productID)
	interactions := make(map[string]survey.ProductInteraction, len(s.Record.ProductInteractions)+1)
	for k, v := range s.Record.ProductInteractions {
		interactions[k] = v
	}
	pi, ok := interactions[key]
	if !ok {
		pi = survey.ProductInteraction{FirstClickAt: m.Now().UTC().Format(time.RFC3339)}
	}
	pi.ClickCount++
	interactions[key] = pi
	s.Record.ProductInteractions = interactions
	return s
}

// enterCheckout draws the nudge condition. The draw happens exactly
// once per session: a state that already carries an assignment keeps it.
func (m Machine) enterCheckout(s State) State {
	s.Step = StepCheckout
	if s.Assignment == nil {
		a := m.Draw()
		s.Assignment = &a
	}
	var clickData *survey.ProductInteraction
	if pi, ok := s.Record.ProductInteractions[strconv.Itoa(s.Product.ID)]; ok {
		copied := pi
		clickData = &copied
	}
	s.Record.CheckoutData = &survey.CheckoutData{
		Product:           *s.Product,
		Variant:           s.Assignment.Label(),
		CheckoutStartedAt: m.Now().UTC().Format(time.RFC3339),
		ProductClickData:  clickData,
	}
	return s
}

func (m Machine) confirmOrder(s State, in OrderInput) (State, error) {
	if s.Product == nil || s.Record.CheckoutData == nil {
		return s, ErrNoProduct
	}

	delivery := in.Delivery
	if delivery != variant.DeliveryHome && delivery != variant.DeliveryCC {
		delivery = s.Assignment.DefaultDelivery()
	}

	address := in.Address
	method := "Click & Collect"
	if delivery == variant.DeliveryHome {
		if address == "" {
			return s, ErrAddressRequired
		}
		method = "Consegna a domicilio"
	} else {
		address = "Click & Collect - Punto di raccolta"
	}

	now := m.Now()
	spent := now.UnixMilli() - mustParseMilli(s.Record.CheckoutData.CheckoutStartedAt, now)
	s.Record.OrderData = &survey.OrderData{
		FirstName:         "Anonimo",
		LastName:          "Partecipante",
		ShippingAddress:   address,
		ProductTitle:      s.Product.Title,
		ProductPrice:      s.Product.Price,
		ProductID:         s.Product.ID,
		DeliveryMethod:    method,
		DeliveryValue:     delivery,
		CheckoutTimeSpent: &spent,
		OrderCompletedAt:  now.UTC().Format(time.RFC3339),
	}
	s.Step = StepSuccess
	return s, nil
}

// complete stamps the terminal fields. The resulting Record is ready to
// persist.
func (m Machine) complete(s State) State {
	now := m.Now()
	s.Record.CompletedAt = now.UTC().Format(time.RFC3339)
	if s.Record.SurveyStartTime != nil {
		total := now.UnixMilli() - *s.Record.SurveyStartTime
		s.Record.TotalTimeSpent = &total
	}
	s.Step = StepComplete
	return s
}

func setIf(dst **string, v string) {
	if v != "" {
		*dst = &v
	}
}

// mustParseMilli tolerates a malformed start stamp by falling back to
// the current time, so a duration is never negative garbage.
func mustParseMilli(iso string, fallback time.Time) int64 {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return fallback.UnixMilli()
	}
	return t.UnixMilli()
}
