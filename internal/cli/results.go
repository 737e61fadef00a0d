package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/francescabuggio/ecocart/internal/stats"
	"github.com/francescabuggio/ecocart/internal/store"
	"github.com/francescabuggio/ecocart/internal/survey"
)

var resultsSample bool

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the aggregated report",
	Long: `Aggregate all stored responses and print distributions, the delivery
choice per checkout condition, Likert means and time histograms.

With --sample the report runs on fabricated records instead of the
store; the same fallback applies when the store is unreachable.`,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&resultsSample, "sample", false, "report on fabricated sample data")
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	agg := stats.New(cfg.LikertMin, cfg.LikertMax)

	var records []survey.Record
	if resultsSample {
		records = survey.Sample(25, survey.ProfileRandom)
	} else {
		err := withStore(cmd.Context(), func(s *store.Store) error {
			var err error
			records, err = s.ListResponses(cmd.Context())
			return err
		})
		if err != nil {
			// The report stays useful without the store; run on an
			// empty dataset and say so.
			logger.Warn("store unreachable, reporting on empty dataset", zap.Error(err))
			fmt.Println("WARNING: store unreachable, reporting on empty dataset")
			records = nil
		}
	}

	printStats(cmd, agg.Aggregate(records))
	return nil
}

func printStats(cmd *cobra.Command, st stats.Stats) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "RESPONSES: %d\n", st.TotalResponses)
	fmt.Fprintf(out, "UPDATED:   %s\n", st.LastUpdate)
	fmt.Fprintf(out, "AVG CHECKOUT TIME: %s\n", st.AverageCheckoutTime)
	fmt.Fprintf(out, "AVG TOTAL TIME:    %s\n", st.AverageTotalTime)
	fmt.Fprintln(out)

	printDistribution(out, "AGE", st.AgeDistribution)
	printDistribution(out, "GENDER", st.GenderDistribution)
	printDistribution(out, "EDUCATION", st.EducationDistribution)
	printDistribution(out, "DEVICE", st.DeviceDistribution)
	printDistribution(out, "FINANCIAL", st.FinancialDistribution)
	printDistribution(out, "FREQUENCY", st.FrequencyDistribution)
	printDistribution(out, "PRODUCT", st.ProductDistribution)
	printDistribution(out, "DELIVERY", st.DeliveryDistribution)
	printDistribution(out, "CHECKOUT CONDITION", st.CheckoutVariantDistribution)
	printDistribution(out, "ENVIRONMENTAL CONSIDERATION", st.EnvironmentalConsiderationDistribution)

	fmt.Fprintln(out, "DELIVERY CHOICE PER CONDITION")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONDITION\tHOME\tC&C\tTOTAL")
	for i, label := range st.DeliveryByVariant.Labels {
		home := st.DeliveryByVariant.Home[i]
		cc := st.DeliveryByVariant.CC[i]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", label, home, cc, home+cc)
	}
	w.Flush()
	fmt.Fprintln(out)

	printAverages(out, "INITIAL LIKERT MEANS", survey.InitialLikertKeys, st.LikertAverages)
	printAverages(out, "FINAL LIKERT MEANS", survey.FinalLikertKeys, st.FinalSurveyAverages)

	printSeries(out, "CHECKOUT TIME", st.CheckoutTimeRanges)
	printSeries(out, "TOTAL TIME", st.TimeSpentRanges)
}

func printDistribution(out io.Writer, title string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(out, title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%d\n", k, dist[k])
	}
	w.Flush()
	fmt.Fprintln(out)
}

func printAverages(out io.Writer, title string, keys []string, avgs map[string]float64) {
	if len(avgs) == 0 {
		return
	}
	fmt.Fprintln(out, title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		if v, ok := avgs[k]; ok {
			fmt.Fprintf(w, "  %s\t%.2f\n", k, v)
		}
	}
	w.Flush()
	fmt.Fprintln(out)
}

func printSeries(out io.Writer, title string, s stats.Series) {
	fmt.Fprintln(out, title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, label := range s.Labels {
		bar := strings.Repeat("#", s.Data[i])
		fmt.Fprintf(w, "  %s\t%d\t%s\n", label, s.Data[i], bar)
	}
	w.Flush()
	fmt.Fprintln(out)
}
