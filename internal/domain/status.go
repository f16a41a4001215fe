package domain

// Ticket lifecycle statuses. The set is closed: the status-change endpoint
// rejects anything outside these four values.
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusWaiting    = "waiting"
	StatusClosed     = "closed"
)

// Statuses lists all valid ticket statuses in lifecycle order.
var Statuses = []string{StatusNew, StatusInProgress, StatusWaiting, StatusClosed}

// ValidStatus reports whether s is one of the allowed ticket statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusWaiting, StatusClosed:
		return true
	default:
		return false
	}
}
