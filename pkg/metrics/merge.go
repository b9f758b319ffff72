package metrics

import (
	"time"

	"dfaith/pkg/models"
)

// Merge applies a refresh result to prev. Fields that were fetched
// successfully overwrite; failed fields keep their previous value.
func Merge(prev models.Snapshot, res models.RefreshResult, now time.Time) models.Snapshot {
	next := prev.Clone()
	next.Prices.DInvestPriceEUR = models.DInvestPriceEUR
	next.LastAttempt = now

	updated := false
	if res.Prices.Err == nil {
		price := res.Prices.DFaithEUR
		next.Prices.DFaithPriceEUR = &price
		updated = true
	}
	if res.Users.Err == nil {
		count := res.Users.Count
		next.ActiveUsers = &count
		updated = true
	}
	if res.Supply != nil && res.Supply.Err == nil {
		supply := res.Supply.Supply
		next.Supply = &supply
		updated = true
	}
	if updated {
		next.LastUpdate = now
	}
	return next
}

// changes lists the events a merge from prev to next should publish.
func changes(prev, next models.Snapshot, res models.RefreshResult) ([]EventType, []string) {
	var types []EventType
	var failed []string

	if res.Prices.Err != nil {
		failed = append(failed, "prices")
	} else if !floatPtrEqual(prev.Prices.DFaithPriceEUR, next.Prices.DFaithPriceEUR) {
		types = append(types, EventPricesUpdated)
	}
	if res.Users.Err != nil {
		failed = append(failed, "users")
	} else if !intPtrEqual(prev.ActiveUsers, next.ActiveUsers) {
		types = append(types, EventUsersUpdated)
	}
	if res.Supply != nil {
		if res.Supply.Err != nil {
			failed = append(failed, "supply")
		} else if !floatPtrEqual(prev.Supply, next.Supply) {
			types = append(types, EventSupplyUpdated)
		}
	}
	return types, failed
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
