// Package purchase holds the client-side half of the lead purchase protocol:
// after the external payment page redirects the browser back to the
// dashboard, the return indicator in the URL is advisory only. A success
// confirmation is shown solely when re-fetched backend state corroborates it.
package purchase

import (
	"context"
	"fmt"
	"net/url"
)

// Outcome is the result of reconciling a payment return indicator against
// refreshed backend state.
type Outcome int

const (
	// OutcomeNone: no return indicator was present.
	OutcomeNone Outcome = iota
	// OutcomeSuccess: the completed-purchase count increased; show exactly
	// one success confirmation.
	OutcomeSuccess
	// OutcomeCancelled: the user cancelled on the payment page; shown
	// immediately without waiting on a refetch.
	OutcomeCancelled
	// OutcomePendingSettlement: the success indicator was present but the
	// webhook has not landed yet. Neither a success nor an error is shown;
	// the purchase may still settle and surface in the purchased-leads view.
	OutcomePendingSettlement
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomePendingSettlement:
		return "pending-settlement"
	default:
		return "none"
	}
}

const paymentParam = "payment"

// StateSource exposes the business's completed-purchase state. CompletedCount
// reads the currently cached value (the baseline); Refresh invalidates and
// re-fetches, returning the fresh count.
type StateSource interface {
	CompletedCount(ctx context.Context) (int, error)
	Refresh(ctx context.Context) (int, error)
}

// Result describes what the UI should do after a return from the payment
// page. CleanURL is the navigable URL with the return indicator stripped; it
// must replace the visible URL before anything else so a reload cannot
// re-trigger the comparison with a stale baseline.
type Result struct {
	Outcome  Outcome
	CleanURL string
	Baseline int
	Fresh    int
}

// Flow reconciles payment return indicators. It is decoupled from any
// rendering technology; callers act on the returned Outcome.
type Flow struct {
	state StateSource
}

func NewFlow(state StateSource) *Flow {
	return &Flow{state: state}
}

// StripReturnIndicator removes the payment indicator from a URL, returning
// the indicator value and the cleaned URL.
func StripReturnIndicator(u *url.URL) (indicator string, cleaned *url.URL) {
	q := u.Query()
	indicator = q.Get(paymentParam)
	if indicator == "" {
		return "", u
	}
	q.Del(paymentParam)
	clean := *u
	clean.RawQuery = q.Encode()
	return indicator, &clean
}

// Reconcile inspects the return URL and, for a success indicator, compares
// the baseline completed-purchase count against freshly fetched state. The
// redirect is never taken as proof of payment on its own.
func (f *Flow) Reconcile(ctx context.Context, returnURL *url.URL) (Result, error) {
	indicator, cleaned := StripReturnIndicator(returnURL)
	result := Result{Outcome: OutcomeNone, CleanURL: cleaned.String()}

	switch indicator {
	case "":
		return result, nil
	case "cancel":
		result.Outcome = OutcomeCancelled
		return result, nil
	case "success":
	default:
		// Unknown indicator values are ignored, not trusted.
		return result, nil
	}

	baseline, err := f.state.CompletedCount(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to read baseline purchase count: %w", err)
	}
	result.Baseline = baseline

	fresh, err := f.state.Refresh(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to refresh purchase state: %w", err)
	}
	result.Fresh = fresh

	if fresh > baseline {
		result.Outcome = OutcomeSuccess
	} else {
		result.Outcome = OutcomePendingSettlement
	}
	return result, nil
}
