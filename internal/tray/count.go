package tray

import "fmt"

// Count is the aggregate of both trays measured against capacity.
type Count struct {
	Count      int
	Capacity   int
	Percentage float64 // 0 to 100, capped
}

func newCount(n, capacity int) Count {
	pct := 0.0
	if capacity > 0 {
		pct = 100 * float64(n) / float64(capacity)
	}
	if pct > 100 {
		pct = 100
	}
	return Count{Count: n, Capacity: capacity, Percentage: pct}
}

// Label renders the count as "current/maximum".
func (c Count) Label() string {
	return fmt.Sprintf("%d/%d", c.Count, c.Capacity)
}

// PercentString renders the percentage with two decimals, e.g. "37.50%".
func (c Count) PercentString() string {
	return fmt.Sprintf("%.2f%%", c.Percentage)
}

// Full reports whether the trays have reached capacity.
func (c Count) Full() bool {
	return c.Capacity > 0 && c.Count >= c.Capacity
}
