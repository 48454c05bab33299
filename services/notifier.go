package services

import "blindmail_server/models"

// Notifier is the optional change-notification side channel. The core calls
// it after a successful write so connected clients can refresh; correctness
// never depends on it, and a nil Notifier is tolerated everywhere.
type Notifier interface {
	MatchUpdated(matchID, status string)
	NewMessage(message models.Message)
}
