package models

// Message is one letter or chat line inside a match. Messages are never
// mutated or deleted; their counts drive the eligibility gates.
type Message struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	Type      string `dynamodbav:"type" json:"type"`
	Body      string `dynamodbav:"body" json:"body"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// Message types (letter = blind mail phase, chat = realtime phase)
const (
	MessageTypeLetter = "letter"
	MessageTypeChat   = "chat"
)

// MessagesTable is the DynamoDB table name for messages
const MessagesTable = "Messages"
