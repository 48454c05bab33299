package models

// MatchDecision records one user's declared intent for a match. The sort key
// is "<decision>#<userId>", so a repeat declaration by the same user
// overwrites the same item instead of adding a second one, and consensus is
// a prefix count on the decision kind.
type MatchDecision struct {
	MatchID     string `dynamodbav:"matchId" json:"matchId"`
	DecisionKey string `dynamodbav:"decisionKey" json:"decisionKey"`
	UserID      string `dynamodbav:"userId" json:"userId"`
	Decision    string `dynamodbav:"decision" json:"decision"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// Decision kinds
const (
	DecisionUnlockChat = "unlock_chat"
	DecisionReveal     = "reveal"
)

// DecisionKey builds the sort key for a (decision, user) pair
func DecisionKey(decision, userID string) string {
	return decision + "#" + userID
}

// MatchDecisionsTable is the DynamoDB table name for declared intents
const MatchDecisionsTable = "MatchDecisions"
