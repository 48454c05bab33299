package models

// Match represents a pairing of two users and its lifecycle status
type Match struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	UserA     string `dynamodbav:"userA" json:"userA"`
	UserB     string `dynamodbav:"userB" json:"userB"`
	Status    string `dynamodbav:"status" json:"status"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// Match statuses. A match only moves forward through
// pending -> blind_mail -> chat_unlocked -> revealed, or sideways into
// rejected, which is terminal.
const (
	MatchStatusPending      = "pending"
	MatchStatusBlindMail    = "blind_mail"
	MatchStatusChatUnlocked = "chat_unlocked"
	MatchStatusRevealed     = "revealed"
	MatchStatusRejected     = "rejected"
)

// HasParticipant reports whether userID is one of the two participants
func (m *Match) HasParticipant(userID string) bool {
	return m.UserA == userID || m.UserB == userID
}

// PartnerOf returns the other participant, or "" if userID is not in the pair
func (m *Match) PartnerOf(userID string) string {
	switch userID {
	case m.UserA:
		return m.UserB
	case m.UserB:
		return m.UserA
	default:
		return ""
	}
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// GSI names used to look up matches by participant
const (
	UserAIndex = "userA-index"
	UserBIndex = "userB-index"
)
