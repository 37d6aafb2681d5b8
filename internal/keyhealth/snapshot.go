package keyhealth

import (
	"context"
	"sort"
)

// Snapshot is the sanitized, aggregated view of the credential pool served
// by the credits endpoint. It never includes credential values.
type Snapshot struct {
	// Keys holds per-credential status, ordered by credential name
	Keys []Status `json:"keys"`
	// TotalKeys is the number of configured credentials
	TotalKeys int `json:"totalKeys"`
	// AvailableKeys is how many credentials passed their last status check
	AvailableKeys int `json:"availableKeys"`
	// TotalCredits sums remaining credits across credentials with a known limit
	TotalCredits float64 `json:"totalCredits"`
	// TotalRateLimitRemaining sums remaining request allowances
	TotalRateLimitRemaining float64 `json:"totalRateLimitRemaining"`
	// OverallHealth is operational, degraded, or outage
	OverallHealth string `json:"overallHealth"`
}

// Snapshot aggregates the per-credential statuses into the credits-endpoint
// view. When forceRefresh is set the snapshot is refreshed eagerly even if
// still fresh; otherwise the usual lazy staleness rules apply.
func (c *Cache) Snapshot(ctx context.Context, forceRefresh bool) (*Snapshot, error) {
	if forceRefresh {
		if err := c.RefreshAll(ctx); err != nil {
			return nil, err
		}
	}

	statuses, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Keys:      make([]Status, 0, len(statuses)),
		TotalKeys: len(statuses),
	}

	for _, status := range statuses {
		snapshot.Keys = append(snapshot.Keys, status)

		if !status.Available {
			continue
		}

		snapshot.AvailableKeys++
		snapshot.TotalRateLimitRemaining += status.RateLimitRemaining

		if status.Credits != nil {
			snapshot.TotalCredits += *status.Credits
		}
	}

	sort.Slice(snapshot.Keys, func(i, j int) bool {
		return snapshot.Keys[i].Name < snapshot.Keys[j].Name
	})

	switch {
	case snapshot.AvailableKeys == snapshot.TotalKeys:
		snapshot.OverallHealth = HealthOperational
	case snapshot.AvailableKeys == 0:
		snapshot.OverallHealth = HealthOutage
	default:
		snapshot.OverallHealth = HealthDegraded
	}

	return snapshot, nil
}
