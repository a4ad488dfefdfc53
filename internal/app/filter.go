package app

import (
	"fmt"
	"time"

	"review_analyzer/internal/domain"
)

// ParseListQuery turns raw query values into a Filter. Empty values are
// treated as absent. Dates must be YYYY-MM-DD.
func ParseListQuery(location, startDate, endDate string) (domain.Filter, error) {
	var f domain.Filter
	if location != "" {
		f.Location = &location
	}
	if startDate != "" {
		t, err := parseDate(startDate)
		if err != nil {
			return domain.Filter{}, fmt.Errorf("start_date: %w", err)
		}
		f.Start = &t
	}
	if endDate != "" {
		t, err := parseDate(endDate)
		if err != nil {
			return domain.Filter{}, fmt.Errorf("end_date: %w", err)
		}
		f.End = &t
	}
	return f, nil
}

// parseDate returns midnight UTC of the given day.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrBadDateFormat, s)
	}
	return t, nil
}

// ApplyFilters runs the location, start and end stages in that order.
// No stage reorders its input.
//
// An unknown location matches nothing rather than failing. The end bound
// is inclusive at 00:00:00 of the end day, so later reviews on that day
// are excluded.
func ApplyFilters(reviews []domain.Review, f domain.Filter) []domain.Review {
	out := reviews
	if f.Location != nil {
		if !domain.IsValidLocation(*f.Location) {
			return []domain.Review{}
		}
		out = keep(out, func(r domain.Review) bool { return r.Location == *f.Location })
	}
	if f.Start != nil {
		out = keep(out, func(r domain.Review) bool { return !r.Timestamp.Before(*f.Start) })
	}
	if f.End != nil {
		out = keep(out, func(r domain.Review) bool { return !r.Timestamp.After(*f.End) })
	}
	return out
}

func keep(in []domain.Review, pred func(domain.Review) bool) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
