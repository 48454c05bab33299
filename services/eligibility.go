package services

import (
	"time"

	"blindmail_server/models"
)

// Eligibility thresholds. Chat unlock needs effort from both sides; reveal
// needs either volume or patience.
const (
	MinLetterLength    = 100 // runes of trimmed content per letter
	LettersPerSide     = 3   // letters each participant must send before chat
	RevealMessageQuota = 50  // total messages that open the reveal gate
	RevealDaysQuota    = 3   // whole elapsed days that open the reveal gate
	ConsensusThreshold = 2   // declarations required to flip a two-party decision
)

// DaysSince returns the number of whole days elapsed between createdAt and
// now, floored and never negative.
func DaysSince(createdAt, now time.Time) int {
	if now.Before(createdAt) {
		return 0
	}
	return int(now.Sub(createdAt).Hours() / 24)
}

// ChatUnlockEligible reports whether both participants have sent enough
// letters to unlock the chat. The quota is symmetric: one side cannot unlock
// chat by writing many letters alone.
func ChatUnlockEligible(lettersA, lettersB int) bool {
	return lettersA >= LettersPerSide && lettersB >= LettersPerSide
}

// RevealEligible reports whether the reveal gate is open for a match with the
// given total message count, elapsed whole days and current status. A match
// that is already revealed stays eligible; a rejected match never is.
func RevealEligible(messageCount, days int, status string) bool {
	if status == models.MatchStatusRejected {
		return false
	}
	return messageCount >= RevealMessageQuota || days >= RevealDaysQuota || status == models.MatchStatusRevealed
}
