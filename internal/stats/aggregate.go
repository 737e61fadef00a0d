// Package stats turns the collection of persisted survey records into
// the descriptive report used by the admin surface: categorical
// distributions, delivery choice per checkout condition, Likert means
// and time histograms.
package stats

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/francescabuggio/ecocart/internal/survey"
	"github.com/francescabuggio/ecocart/internal/variant"
)

// Series pairs histogram bucket labels with their counts.
type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// DeliveryByVariant is the delivery-choice cross tabulation. The three
// slices are parallel; Labels is ordered so each condition's plain
// label immediately precedes its pre-selected counterpart.
type DeliveryByVariant struct {
	Labels []string `json:"labels"`
	Home   []int    `json:"home"`
	CC     []int    `json:"cc"`
}

// Stats is one immutable aggregation snapshot.
type Stats struct {
	TotalResponses      int    `json:"totalResponses"`
	LastUpdate          string `json:"lastUpdate"`
	AverageCheckoutTime string `json:"averageCheckoutTime"`
	AverageTotalTime    string `json:"averageTotalTime"`

	AgeDistribution       map[string]int `json:"ageDistribution"`
	GenderDistribution    map[string]int `json:"genderDistribution"`
	EducationDistribution map[string]int `json:"educationDistribution"`
	DeviceDistribution    map[string]int `json:"deviceDistribution"`
	FinancialDistribution map[string]int `json:"financialDistribution"`
	FrequencyDistribution map[string]int `json:"frequencyDistribution"`

	ProductDistribution         map[string]int    `json:"productDistribution"`
	DeliveryDistribution        map[string]int    `json:"deliveryDistribution"`
	CheckoutVariantDistribution map[string]int    `json:"checkoutVariantDistribution"`
	DeliveryByVariant           DeliveryByVariant `json:"deliveryByVariant"`
	CheckoutTimeRanges          Series            `json:"checkoutTimeRanges"`

	LikertAverages map[string]float64 `json:"likertAverages"`

	EnvironmentalConsiderationDistribution map[string]int     `json:"environmentalConsiderationDistribution"`
	FinalSurveyAverages                    map[string]float64 `json:"finalSurveyAverages"`

	TimeSpentRanges Series `json:"timeSpentRanges"`
}

// Fixed histogram boundaries, milliseconds, lower bound inclusive.
var (
	checkoutBucketLabels = []string{"0-60s", "1-2min", "2-5min", "5-10min", "10min+"}
	checkoutBucketBounds = []int64{60000, 120000, 300000, 600000}

	totalBucketLabels = []string{"0-2min", "2-5min", "5-10min", "10-15min", "15min+"}
	totalBucketBounds = []int64{120000, 300000, 600000, 900000}
)

// Aggregator computes Stats snapshots. It holds no state between runs;
// the only knob is the Likert scale accepted into the averages.
type Aggregator struct {
	likertMin int
	likertMax int
	now       func() time.Time
}

// New returns an Aggregator that accepts Likert answers in [min, max].
func New(min, max int) *Aggregator {
	return &Aggregator{likertMin: min, likertMax: max, now: time.Now}
}

// Aggregate computes a snapshot over the given records. It never fails:
// absent or malformed fields are excluded from the statistic they would
// feed, and an empty input yields a zeroed snapshot.
func (a *Aggregator) Aggregate(records []survey.Record) Stats {
	s := Stats{
		TotalResponses: len(records),
		LastUpdate:     a.now().UTC().Format(time.RFC3339),

		AgeDistribution:       map[string]int{},
		GenderDistribution:    map[string]int{},
		EducationDistribution: map[string]int{},
		DeviceDistribution:    map[string]int{},
		FinancialDistribution: map[string]int{},
		FrequencyDistribution: map[string]int{},

		ProductDistribution:         map[string]int{},
		DeliveryDistribution:        map[string]int{},
		CheckoutVariantDistribution: map[string]int{},

		EnvironmentalConsiderationDistribution: map[string]int{},
	}

	type homeCC struct{ home, cc int }
	byVariant := map[string]*homeCC{}

	var checkoutTimes, totalTimes []int64

	likertSums := map[string]int{}
	likertCounts := map[string]int{}
	finalSums := map[string]int{}
	finalCounts := map[string]int{}

	for i := range records {
		r := &records[i]

		if init := r.InitialSurvey; init != nil {
			bump(s.AgeDistribution, init.Age)
			bump(s.GenderDistribution, init.Gender)
			bump(s.EducationDistribution, init.Education)
			bump(s.DeviceDistribution, init.Device)
			bump(s.FinancialDistribution, init.Financial)
			bump(s.FrequencyDistribution, init.Frequency)
		}

		if od := r.OrderData; od != nil {
			if od.ProductTitle != "" {
				s.ProductDistribution[od.ProductTitle]++
			}
			if od.DeliveryMethod != "" {
				s.DeliveryDistribution[od.DeliveryMethod]++
			}
			if od.CheckoutTimeSpent != nil {
				checkoutTimes = append(checkoutTimes, *od.CheckoutTimeSpent)
			}
		}
		if cd := r.CheckoutData; cd != nil && cd.Variant != "" {
			s.CheckoutVariantDistribution[cd.Variant]++
		}

		// Cross tabulation needs both the condition label and the
		// delivery choice; records missing either contribute nothing.
		if r.CheckoutData != nil && r.OrderData != nil &&
			r.CheckoutData.Variant != "" && r.OrderData.DeliveryValue != "" {
			hc := byVariant[r.CheckoutData.Variant]
			if hc == nil {
				hc = &homeCC{}
				byVariant[r.CheckoutData.Variant] = hc
			}
			switch r.OrderData.DeliveryValue {
			case variant.DeliveryHome:
				hc.home++
			case variant.DeliveryCC:
				hc.cc++
			}
		}

		if r.TotalTimeSpent != nil {
			totalTimes = append(totalTimes, *r.TotalTimeSpent)
		}

		for _, key := range survey.InitialLikertKeys {
			if v, ok := r.InitialSurvey.Likert(key); ok && a.inScale(v) {
				likertSums[key] += v
				likertCounts[key]++
			}
		}

		if fs := r.FinalSurvey; fs != nil {
			bump(s.EnvironmentalConsiderationDistribution, fs.EnvironmentalConsideration)
		}
		for _, key := range survey.FinalLikertKeys {
			if v, ok := r.FinalSurvey.Likert(key); ok && a.inScale(v) {
				finalSums[key] += v
				finalCounts[key]++
			}
		}
	}

	s.LikertAverages = averages(likertSums, likertCounts)
	s.FinalSurveyAverages = averages(finalSums, finalCounts)

	s.CheckoutTimeRanges = bucketize(checkoutTimes, checkoutBucketLabels, checkoutBucketBounds)
	s.TimeSpentRanges = bucketize(totalTimes, totalBucketLabels, totalBucketBounds)

	s.AverageCheckoutTime = meanLabel(checkoutTimes, 1000, "s")
	s.AverageTotalTime = meanLabel(totalTimes, 60000, "min")

	labels := make([]string, 0, len(byVariant))
	for label := range byVariant {
		labels = append(labels, label)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return variant.SortPriority(labels[i]) < variant.SortPriority(labels[j])
	})
	s.DeliveryByVariant = DeliveryByVariant{
		Labels: labels,
		Home:   make([]int, len(labels)),
		CC:     make([]int, len(labels)),
	}
	for i, label := range labels {
		s.DeliveryByVariant.Home[i] = byVariant[label].home
		s.DeliveryByVariant.CC[i] = byVariant[label].cc
	}

	return s
}

func (a *Aggregator) inScale(v int) bool {
	return v >= a.likertMin && v <= a.likertMax
}

func bump(dist map[string]int, v *string) {
	if v != nil && *v != "" {
		dist[*v]++
	}
}

func averages(sums, counts map[string]int) map[string]float64 {
	out := make(map[string]float64, len(sums))
	for key, sum := range sums {
		out[key] = float64(sum) / float64(counts[key])
	}
	return out
}

func bucketize(values []int64, labels []string, bounds []int64) Series {
	data := make([]int, len(labels))
	for _, v := range values {
		idx := len(bounds)
		for i, b := range bounds {
			if v < b {
				idx = i
				break
			}
		}
		data[idx]++
	}
	return Series{Labels: labels, Data: data}
}

func meanLabel(values []int64, divisor int64, unit string) string {
	if len(values) == 0 {
		return "-"
	}
	var sum int64
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / float64(len(values)) / float64(divisor)
	return strconv.Itoa(int(math.Round(mean))) + unit
}
