package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/francescabuggio/ecocart/internal/store"
	"github.com/francescabuggio/ecocart/internal/survey"
	"github.com/francescabuggio/ecocart/internal/variant"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Interactive maintenance of stored responses",
	Long: `Interactively fix stored responses.

Supported operations:
  - relabel a checkout condition (e.g. after a label typo)
  - delete responses by condition or delivery choice
  - change gender, device or environmental answers in bulk

Each operation prints the number of affected responses.`,
	RunE: runRepair,
}

func init() {
	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withStore(ctx, func(s *store.Store) error {
		op, err := promptOperation()
		if err != nil {
			return err
		}

		var affected int
		switch op {
		case "relabel-variant":
			affected, err = repairRelabelVariant(ctx, s)
		case "delete-variant":
			affected, err = repairDeleteVariant(ctx, s)
		case "delete-delivery":
			affected, err = repairDeleteDelivery(ctx, s)
		case "change-gender":
			affected, err = repairChangeGender(ctx, s)
		case "change-device":
			affected, err = repairChangeDevice(ctx, s)
		case "change-environmental":
			affected, err = repairChangeEnvironmental(ctx, s)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Affected responses: %d\n", affected)
		return nil
	})
}

func promptOperation() (string, error) {
	operations := []struct {
		Name string
		Op   string
	}{
		{"Relabel a checkout condition", "relabel-variant"},
		{"Delete responses by condition", "delete-variant"},
		{"Delete responses by delivery choice", "delete-delivery"},
		{"Change gender answers", "change-gender"},
		{"Change device answers", "change-device"},
		{"Change environmental answers", "change-environmental"},
	}

	items := make([]string, len(operations))
	for i, o := range operations {
		items[i] = o.Name
	}

	prompt := promptui.Select{
		Label: "Select operation",
		Items: items,
		Size:  6,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return "", err
	}

	return operations[idx].Op, nil
}

func repairRelabelVariant(ctx context.Context, s *store.Store) (int, error) {
	counts, err := s.VariantCounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count conditions: %w", err)
	}
	old, err := promptFromCounts("Condition to relabel", counts)
	if err != nil {
		return 0, err
	}

	labels := variant.CanonicalLabels()
	prompt := promptui.Select{
		Label: "New label",
		Items: labels,
		Size:  len(labels),
	}
	idx, _, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return 0, err
	}

	return s.RelabelVariant(ctx, old, labels[idx])
}

func repairDeleteVariant(ctx context.Context, s *store.Store) (int, error) {
	counts, err := s.VariantCounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count conditions: %w", err)
	}
	label, err := promptFromCounts("Condition to delete", counts)
	if err != nil {
		return 0, err
	}
	limit, err := promptLimit()
	if err != nil {
		return 0, err
	}
	if err := confirmDeletion(fmt.Sprintf("Delete responses with condition %q", label)); err != nil {
		return 0, err
	}

	return s.DeleteByVariant(ctx, label, limit)
}

func repairDeleteDelivery(ctx context.Context, s *store.Store) (int, error) {
	counts, err := s.DeliveryCounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count delivery choices: %w", err)
	}
	value, err := promptFromCounts("Delivery choice to delete", counts)
	if err != nil {
		return 0, err
	}
	limit, err := promptLimit()
	if err != nil {
		return 0, err
	}
	if err := confirmDeletion(fmt.Sprintf("Delete responses with delivery %q", value)); err != nil {
		return 0, err
	}

	return s.DeleteByDelivery(ctx, value, limit)
}

func repairChangeGender(ctx context.Context, s *store.Store) (int, error) {
	counts, err := s.GenderCounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count gender answers: %w", err)
	}
	old, err := promptFromCounts("Gender answer to change", counts)
	if err != nil {
		return 0, err
	}
	new, err := promptAnswer("New gender value", demographicValues("gender"))
	if err != nil {
		return 0, err
	}
	limit, err := promptLimit()
	if err != nil {
		return 0, err
	}

	return s.UpdateGender(ctx, old, new, limit)
}

func repairChangeDevice(ctx context.Context, s *store.Store) (int, error) {
	old, err := promptText("Device value to change")
	if err != nil {
		return 0, err
	}
	new, err := promptAnswer("New device value", demographicValues("device"))
	if err != nil {
		return 0, err
	}
	limit, err := promptLimit()
	if err != nil {
		return 0, err
	}

	return s.UpdateDevice(ctx, old, new, limit)
}

func repairChangeEnvironmental(ctx context.Context, s *store.Store) (int, error) {
	values := make([]string, len(survey.EnvironmentalQuestion.Options))
	for i, o := range survey.EnvironmentalQuestion.Options {
		values[i] = o.Value
	}

	old, err := promptText("Environmental value to change")
	if err != nil {
		return 0, err
	}
	new, err := promptAnswer("New environmental value", values)
	if err != nil {
		return 0, err
	}
	limit, err := promptLimit()
	if err != nil {
		return 0, err
	}

	return s.UpdateEnvironmental(ctx, old, new, limit)
}

// promptFromCounts presents the distinct stored values with their counts
// and returns the selected value.
func promptFromCounts(label string, counts map[string]int) (string, error) {
	if len(counts) == 0 {
		return "", fmt.Errorf("no stored responses to repair")
	}

	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Strings(values)

	items := make([]string, len(values))
	for i, v := range values {
		items[i] = fmt.Sprintf("%s (%d responses)", v, counts[v])
	}

	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  len(items),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return "", err
	}

	return values[idx], nil
}

func promptAnswer(label string, values []string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: values,
		Size:  len(values),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return "", err
	}

	return values[idx], nil
}

func promptText(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
	}

	result, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return "", err
	}

	return result, nil
}

func promptLimit() (int, error) {
	prompt := promptui.Prompt{
		Label:   "Limit (0 = no limit)",
		Default: "0",
		Validate: func(s string) error {
			if _, err := strconv.Atoi(s); err != nil {
				return fmt.Errorf("must be a number")
			}
			return nil
		},
	}

	result, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return 0, err
	}

	return strconv.Atoi(result)
}

func confirmDeletion(label string) error {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return fmt.Errorf("aborted")
	}
	return nil
}

func demographicValues(id string) []string {
	for _, q := range survey.DemographicQuestions {
		if q.ID != id {
			continue
		}
		values := make([]string, len(q.Options))
		for i, o := range q.Options {
			values[i] = o.Value
		}
		return values
	}
	return nil
}
