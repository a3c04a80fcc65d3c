package console

import "time"

// ViewState is the console-local state: which order is selected and which
// filters are active. It is an immutable value; every transition returns a
// new state, which keeps list/map synchronization trivially testable.
//
// SelectionSeq advances whenever the selection actually changes. The map
// view uses it to fit the viewport once per selection change rather than on
// every render.
type ViewState struct {
	SelectedID   int64 // 0 means nothing selected
	Criteria     Criteria
	SelectionSeq uint64
}

func (v ViewState) HasSelection() bool {
	return v.SelectedID != 0
}

// ToggleSelect selects the order, or clears the selection when the order is
// already selected.
func (v ViewState) ToggleSelect(orderID int64) ViewState {
	if v.SelectedID == orderID {
		v.SelectedID = 0
	} else {
		v.SelectedID = orderID
	}
	v.SelectionSeq++
	return v
}

// ClearSelection drops the selection. A no-op when nothing is selected.
func (v ViewState) ClearSelection() ViewState {
	if v.SelectedID == 0 {
		return v
	}
	v.SelectedID = 0
	v.SelectionSeq++
	return v
}

func (v ViewState) WithPhoneFilter(phone string) ViewState {
	v.Criteria.Phone = phone
	return v
}

func (v ViewState) WithBucket(bucket StatusBucket) ViewState {
	v.Criteria.Bucket = bucket
	return v
}

// WithDateRange sets both bounds of the inclusive day-granularity range.
// Pass nils to clear it.
func (v ViewState) WithDateRange(from, to *time.Time) ViewState {
	v.Criteria.From = from
	v.Criteria.To = to
	return v
}
