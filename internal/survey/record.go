// Package survey defines the participant record shape and the question
// catalogs of the instrument. Field names and nesting mirror the stored
// JSON documents exactly; optional fields are pointers so that absence
// and a legitimate zero value stay distinguishable.
package survey

// Product is one item of the mock shop catalog.
type Product struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// InitialSurvey holds the demographic answers plus the 13 initial
// Likert answers. Every field is optional.
type InitialSurvey struct {
	Age       *string `json:"age,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Education *string `json:"education,omitempty"`
	Device    *string `json:"device,omitempty"`
	Financial *string `json:"financial,omitempty"`
	Frequency *string `json:"frequency,omitempty"`

	GetTired           *int `json:"get_tired,omitempty"`
	OpenTabs           *int `json:"open_tabs,omitempty"`
	SaveTime           *int `json:"save_time,omitempty"`
	AvoidHassle        *int `json:"avoid_hassle,omitempty"`
	EasyCompare        *int `json:"easy_compare,omitempty"`
	EndUpSites         *int `json:"end_up_sites,omitempty"`
	FindWebsite        *int `json:"find_website,omitempty"`
	EasyShopping       *int `json:"easy_shopping,omitempty"`
	DownloadFiles      *int `json:"download_files,omitempty"`
	EnjoyShopping      *int `json:"enjoy_shopping,omitempty"`
	BuyUnavailable     *int `json:"buy_unavailable,omitempty"`
	StressFinancial    *int `json:"stress_financial,omitempty"`
	ConfusingStructure *int `json:"confusing_structure,omitempty"`
}

// FinalSurvey holds the environmental-consideration answer plus the 8
// final Likert answers.
type FinalSurvey struct {
	EnvironmentalConsideration *string `json:"environmental_consideration,omitempty"`

	FeelGuilty         *int `json:"feel_guilty,omitempty"`
	DifficultDesign    *int `json:"difficult_design,omitempty"`
	FeelResponsible    *int `json:"feel_responsible,omitempty"`
	DifficultOptions   *int `json:"difficult_options,omitempty"`
	EffortUnderstand   *int `json:"effort_understand,omitempty"`
	DifficultOverview  *int `json:"difficult_overview,omitempty"`
	FeelIrresponsible  *int `json:"feel_irresponsible,omitempty"`
	UsefulDescriptions *int `json:"useful_descriptions,omitempty"`
}

// ProductInteraction tracks browsing clicks on one product before checkout.
type ProductInteraction struct {
	FirstClickAt string `json:"firstClickAt"`
	ClickCount   int    `json:"clickCount"`
}

// CheckoutData is written once when the participant enters the checkout.
// Variant is the display label produced by the variant assigner.
type CheckoutData struct {
	Product           Product             `json:"product"`
	Variant           string              `json:"variant"`
	CheckoutStartedAt string              `json:"checkoutStartedAt"`
	ProductClickData  *ProductInteraction `json:"productClickData,omitempty"`
}

// OrderData is written when the order is confirmed. DeliveryValue is the
// machine value ("home" or "cc"); DeliveryMethod is its display label.
type OrderData struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	ShippingAddress   string `json:"shippingAddress"`
	ProductTitle      string `json:"productTitle"`
	ProductPrice      string `json:"productPrice"`
	ProductID         int    `json:"productId"`
	DeliveryMethod    string `json:"deliveryMethod"`
	DeliveryValue     string `json:"deliveryValue"`
	CheckoutTimeSpent *int64 `json:"checkoutTimeSpent,omitempty"`
	OrderCompletedAt  string `json:"orderCompletedAt"`
}

// Record is one participant session. It is built incrementally across
// the wizard steps and persisted exactly once at completion. All
// durations are milliseconds, all timestamps ISO-8601 strings.
type Record struct {
	Timestamp                string                        `json:"timestamp"`
	SessionID                string                        `json:"sessionId"`
	SurveyStartTime          *int64                        `json:"surveyStartTime,omitempty"`
	InitialSurvey            *InitialSurvey                `json:"initialSurvey,omitempty"`
	CheckoutData             *CheckoutData                 `json:"checkoutData,omitempty"`
	OrderData                *OrderData                    `json:"orderData,omitempty"`
	FinalSurvey              *FinalSurvey                  `json:"finalSurvey,omitempty"`
	ProductInteractions      map[string]ProductInteraction `json:"productInteractions,omitempty"`
	TotalTimeSpent           *int64                        `json:"totalTimeSpent,omitempty"`
	CompletedAt              string                        `json:"completedAt,omitempty"`
	InitialSurveyCompletedAt string                        `json:"initialSurveyCompletedAt,omitempty"`
	EcommerceStartedAt       string                        `json:"ecommerceStartedAt,omitempty"`
	FinalSurveyCompletedAt   string                        `json:"finalSurveyCompletedAt,omitempty"`
}

// InitialLikertKeys lists the 13 initial Likert question ids in the
// order used by aggregation and export.
var InitialLikertKeys = []string{
	"get_tired", "open_tabs", "save_time", "avoid_hassle", "easy_compare",
	"end_up_sites", "find_website", "easy_shopping", "download_files",
	"enjoy_shopping", "buy_unavailable", "stress_financial", "confusing_structure",
}

// FinalLikertKeys lists the 8 final Likert question ids.
var FinalLikertKeys = []string{
	"feel_guilty", "difficult_design", "feel_responsible", "difficult_options",
	"effort_understand", "difficult_overview", "feel_irresponsible", "useful_descriptions",
}

// Likert returns the answer for a question id and whether it is present.
func (s *InitialSurvey) Likert(id string) (int, bool) {
	if s == nil {
		return 0, false
	}
	var p *int
	switch id {
	case "get_tired":
		p = s.GetTired
	case "open_tabs":
		p = s.OpenTabs
	case "save_time":
		p = s.SaveTime
	case "avoid_hassle":
		p = s.AvoidHassle
	case "easy_compare":
		p = s.EasyCompare
	case "end_up_sites":
		p = s.EndUpSites
	case "find_website":
		p = s.FindWebsite
	case "easy_shopping":
		p = s.EasyShopping
	case "download_files":
		p = s.DownloadFiles
	case "enjoy_shopping":
		p = s.EnjoyShopping
	case "buy_unavailable":
		p = s.BuyUnavailable
	case "stress_financial":
		p = s.StressFinancial
	case "confusing_structure":
		p = s.ConfusingStructure
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SetLikert stores the answer for a question id. Unknown ids are ignored
// and reported as false.
func (s *InitialSurvey) SetLikert(id string, v int) bool {
	switch id {
	case "get_tired":
		s.GetTired = &v
	case "open_tabs":
		s.OpenTabs = &v
	case "save_time":
		s.SaveTime = &v
	case "avoid_hassle":
		s.AvoidHassle = &v
	case "easy_compare":
		s.EasyCompare = &v
	case "end_up_sites":
		s.EndUpSites = &v
	case "find_website":
		s.FindWebsite = &v
	case "easy_shopping":
		s.EasyShopping = &v
	case "download_files":
		s.DownloadFiles = &v
	case "enjoy_shopping":
		s.EnjoyShopping = &v
	case "buy_unavailable":
		s.BuyUnavailable = &v
	case "stress_financial":
		s.StressFinancial = &v
	case "confusing_structure":
		s.ConfusingStructure = &v
	default:
		return false
	}
	return true
}

// Likert returns the answer for a final question id and whether it is present.
func (s *FinalSurvey) Likert(id string) (int, bool) {
	if s == nil {
		return 0, false
	}
	var p *int
	switch id {
	case "feel_guilty":
		p = s.FeelGuilty
	case "difficult_design":
		p = s.DifficultDesign
	case "feel_responsible":
		p = s.FeelResponsible
	case "difficult_options":
		p = s.DifficultOptions
	case "effort_understand":
		p = s.EffortUnderstand
	case "difficult_overview":
		p = s.DifficultOverview
	case "feel_irresponsible":
		p = s.FeelIrresponsible
	case "useful_descriptions":
		p = s.UsefulDescriptions
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SetLikert stores the answer for a final question id.
func (s *FinalSurvey) SetLikert(id string, v int) bool {
	switch id {
	case "feel_guilty":
		s.FeelGuilty = &v
	case "difficult_design":
		s.DifficultDesign = &v
	case "feel_responsible":
		s.FeelResponsible = &v
	case "difficult_options":
		s.DifficultOptions = &v
	case "effort_understand":
		s.EffortUnderstand = &v
	case "difficult_overview":
		s.DifficultOverview = &v
	case "feel_irresponsible":
		s.FeelIrresponsible = &v
	case "useful_descriptions":
		s.UsefulDescriptions = &v
	default:
		return false
	}
	return true
}

// TotalClicks sums the click counts across all browsed products.
func (r *Record) TotalClicks() int {
	total := 0
	for _, pi := range r.ProductInteractions {
		total += pi.ClickCount
	}
	return total
}
