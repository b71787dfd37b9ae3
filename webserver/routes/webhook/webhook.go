// Package webhook accepts BattleMetrics webhook notifications. The
// payload is acknowledged but not processed; the ban poller is the
// source of truth for new bans.
package webhook

import "net/http"

func Ack(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
