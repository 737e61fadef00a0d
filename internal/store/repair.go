package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/francescabuggio/ecocart/internal/survey"
)

// Administrative data-repair operations. These are out-of-band
// maintenance, not part of the participant flow: they read the whole
// collection, match records in memory and rewrite or delete the matched
// documents one by one, returning the number of affected rows. A limit
// of 0 or less means no limit.

// RelabelVariant rewrites checkoutData.variant from old to new on every
// matching record.
func (s *Store) RelabelVariant(ctx context.Context, old, new string) (int, error) {
	return s.rewrite(ctx, 0,
		func(rec *survey.Record) bool {
			return rec.CheckoutData != nil && rec.CheckoutData.Variant == old
		},
		func(rec *survey.Record) {
			rec.CheckoutData.Variant = new
		})
}

// UpdateGender rewrites initialSurvey.gender from old to new on up to
// limit records.
func (s *Store) UpdateGender(ctx context.Context, old, new string, limit int) (int, error) {
	return s.rewrite(ctx, limit,
		func(rec *survey.Record) bool {
			return rec.InitialSurvey != nil && rec.InitialSurvey.Gender != nil && *rec.InitialSurvey.Gender == old
		},
		func(rec *survey.Record) {
			v := new
			rec.InitialSurvey.Gender = &v
		})
}

// UpdateDevice rewrites initialSurvey.device from old to new on up to
// limit records.
func (s *Store) UpdateDevice(ctx context.Context, old, new string, limit int) (int, error) {
	return s.rewrite(ctx, limit,
		func(rec *survey.Record) bool {
			return rec.InitialSurvey != nil && rec.InitialSurvey.Device != nil && *rec.InitialSurvey.Device == old
		},
		func(rec *survey.Record) {
			v := new
			rec.InitialSurvey.Device = &v
		})
}

// UpdateEnvironmental rewrites finalSurvey.environmental_consideration
// from old to new on up to limit records.
func (s *Store) UpdateEnvironmental(ctx context.Context, old, new string, limit int) (int, error) {
	return s.rewrite(ctx, limit,
		func(rec *survey.Record) bool {
			return rec.FinalSurvey != nil && rec.FinalSurvey.EnvironmentalConsideration != nil &&
				*rec.FinalSurvey.EnvironmentalConsideration == old
		},
		func(rec *survey.Record) {
			v := new
			rec.FinalSurvey.EnvironmentalConsideration = &v
		})
}

// DeleteByVariant removes up to limit records whose checkout condition
// matches the given label.
func (s *Store) DeleteByVariant(ctx context.Context, label string, limit int) (int, error) {
	return s.removeMatching(ctx, limit, func(rec *survey.Record) bool {
		return rec.CheckoutData != nil && rec.CheckoutData.Variant == label
	})
}

// DeleteByDelivery removes up to limit records whose delivery value
// ("home" or "cc") matches.
func (s *Store) DeleteByDelivery(ctx context.Context, value string, limit int) (int, error) {
	return s.removeMatching(ctx, limit, func(rec *survey.Record) bool {
		return rec.OrderData != nil && rec.OrderData.DeliveryValue == value
	})
}

// VariantCounts tallies stored records per checkout condition label.
func (s *Store) VariantCounts(ctx context.Context) (map[string]int, error) {
	return s.tally(ctx, func(rec *survey.Record) string {
		if rec.CheckoutData == nil {
			return ""
		}
		return rec.CheckoutData.Variant
	})
}

// DeliveryCounts tallies stored records per delivery value.
func (s *Store) DeliveryCounts(ctx context.Context) (map[string]int, error) {
	return s.tally(ctx, func(rec *survey.Record) string {
		if rec.OrderData == nil {
			return ""
		}
		return rec.OrderData.DeliveryValue
	})
}

// GenderCounts tallies stored records per gender answer.
func (s *Store) GenderCounts(ctx context.Context) (map[string]int, error) {
	return s.tally(ctx, func(rec *survey.Record) string {
		if rec.InitialSurvey == nil || rec.InitialSurvey.Gender == nil {
			return ""
		}
		return *rec.InitialSurvey.Gender
	})
}

func (s *Store) rewrite(ctx context.Context, limit int, match func(*survey.Record) bool, apply func(*survey.Record)) (int, error) {
	rows, err := s.b.rows(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load responses: %w", err)
	}
	updated := 0
	for _, r := range rows {
		if limit > 0 && updated >= limit {
			break
		}
		var rec survey.Record
		if err := json.Unmarshal(r.data, &rec); err != nil {
			continue
		}
		if !match(&rec) {
			continue
		}
		apply(&rec)
		data, err := json.Marshal(&rec)
		if err != nil {
			return updated, fmt.Errorf("failed to marshal record %s: %w", rec.SessionID, err)
		}
		if err := s.b.update(ctx, r.id, data); err != nil {
			return updated, fmt.Errorf("failed to update record %s: %w", rec.SessionID, err)
		}
		updated++
	}
	return updated, nil
}

func (s *Store) removeMatching(ctx context.Context, limit int, match func(*survey.Record) bool) (int, error) {
	rows, err := s.b.rows(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load responses: %w", err)
	}
	deleted := 0
	for _, r := range rows {
		if limit > 0 && deleted >= limit {
			break
		}
		var rec survey.Record
		if err := json.Unmarshal(r.data, &rec); err != nil {
			continue
		}
		if !match(&rec) {
			continue
		}
		if err := s.b.remove(ctx, r.id); err != nil {
			return deleted, fmt.Errorf("failed to delete record %s: %w", rec.SessionID, err)
		}
		deleted++
	}
	return deleted, nil
}

func (s *Store) tally(ctx context.Context, key func(*survey.Record) string) (map[string]int, error) {
	records, err := s.ListResponses(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for i := range records {
		if k := key(&records[i]); k != "" {
			counts[k]++
		}
	}
	return counts, nil
}
