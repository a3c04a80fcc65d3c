package console

import (
	"strings"
	"time"

	"dispatch-console/internal/model"
)

// StatusBucket is the coarse status grouping the console filters by. It is
// a UI notion, not a backend enum: ACTIVE covers both ACCEPTED and
// IN_PROGRESS.
type StatusBucket string

const (
	BucketAll       StatusBucket = "ALL"
	BucketRequested StatusBucket = "REQUESTED"
	BucketActive    StatusBucket = "ACTIVE"
)

// Criteria is the client-side filter over an already-fetched order list.
// The date range applies only when both bounds are set, at day granularity.
type Criteria struct {
	Phone  string
	Bucket StatusBucket
	From   *time.Time
	To     *time.Time
}

// Stats are derived from a filtered list on every call, never stored.
type Stats struct {
	Total        int     `json:"total"`
	Completed    int     `json:"completed"`
	Cancelled    int     `json:"cancelled"`
	CompletedSum float64 `json:"completedSum"`
}

// ApplyFilter returns the orders matching the criteria, preserving input
// order, together with aggregate statistics over the result. It is a pure
// function of its inputs: callers re-run it whenever the source list or any
// criterion changes.
func ApplyFilter(orders []model.Order, crit Criteria) ([]model.Order, Stats) {
	filtered := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if !matches(o, crit) {
			continue
		}
		filtered = append(filtered, o)
	}

	var stats Stats
	stats.Total = len(filtered)
	for _, o := range filtered {
		switch o.Status {
		case model.OrderStatusCompleted:
			stats.Completed++
			stats.CompletedSum += o.Price
		case model.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	return filtered, stats
}

func matches(o model.Order, crit Criteria) bool {
	// Phone match is a plain case-sensitive substring test, exactly what
	// the operator types into the search box.
	if crit.Phone != "" && !strings.Contains(o.Client.PhoneNumber, crit.Phone) {
		return false
	}

	switch crit.Bucket {
	case "", BucketAll:
	case BucketRequested:
		if o.Status != model.OrderStatusRequested {
			return false
		}
	case BucketActive:
		if o.Status != model.OrderStatusAccepted && o.Status != model.OrderStatusInProgress {
			return false
		}
	default:
		return false
	}

	if crit.From != nil && crit.To != nil {
		start := startOfDay(*crit.From)
		end := startOfDay(*crit.To).AddDate(0, 0, 1)
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			return false
		}
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
