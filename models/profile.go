package models

// PersonalityAnswer is one (question, answer) pair from profile setup.
// Answers are stored as an ordered list; malformed entries are dropped at
// the write boundary.
type PersonalityAnswer struct {
	Question string `dynamodbav:"question" json:"question"`
	Answer   string `dynamodbav:"answer" json:"answer"`
}

// Profile defines the structure for user profiles. RealInstagram is the
// private identifying handle: it is only returned to a partner once their
// shared match has reached the revealed status.
type Profile struct {
	UserID             string              `dynamodbav:"userId" json:"userId"`
	DisplayName        string              `dynamodbav:"displayName" json:"displayName"`
	RealInstagram      string              `dynamodbav:"realInstagram,omitempty" json:"realInstagram,omitempty"`
	Bio                string              `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	PersonalityAnswers []PersonalityAnswer `dynamodbav:"personalityAnswers,omitempty" json:"personalityAnswers,omitempty"`
	AnonAvatarURL      string              `dynamodbav:"anonAvatarUrl,omitempty" json:"anonAvatarUrl,omitempty"`
	CreatedAt          string              `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// ProfilesTable is the DynamoDB table name for user profiles
const ProfilesTable = "Profiles"
