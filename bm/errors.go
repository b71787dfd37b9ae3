package bm

import "fmt"

// UpstreamError is a non-success (or malformed) response from the
// BattleMetrics API. A fetch that fails with an UpstreamError returns
// no records at all, even if earlier pages had already been read.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("battlemetrics API %d: %s", e.Status, e.Body)
}
