package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"blindmail_server/models"
	"blindmail_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// MatchService owns the match lifecycle: it is the only component that
// writes the status field, and every transition goes through a conditional
// update so a rejected match can never be resurrected by a racing consensus
// write.
type MatchService struct {
	Dynamo    DynamoAPI
	Decisions *DecisionService
	Chat      *ChatService
	Notifier  Notifier
	Now       func() time.Time
}

// RevealResult is returned by RequestReveal so the caller can render the
// gate counters alongside the outcome.
type RevealResult struct {
	MessageCount   int    `json:"messageCount"`
	DaysSinceStart int    `json:"daysSinceStart"`
	Status         string `json:"status"`
}

// MatchState is the dashboard snapshot for one participant's view of a
// match. PartnerInstagram is only populated once the match is revealed.
type MatchState struct {
	MatchID            string `json:"matchId"`
	Status             string `json:"status"`
	CreatedAt          string `json:"createdAt"`
	PartnerDisplayName string `json:"partnerDisplayName"`
	PartnerAvatarURL   string `json:"partnerAvatarUrl,omitempty"`
	PartnerInstagram   string `json:"partnerInstagram,omitempty"`
	CompatibilityScore int    `json:"compatibilityScore"`
	MessageCount       int    `json:"messageCount"`
	DaysSinceStart     int    `json:"daysSinceStart"`
	LettersSent        int    `json:"lettersSent"`
	LettersReceived    int    `json:"lettersReceived"`
	RevealEligible     bool   `json:"revealEligible"`
}

func (ms *MatchService) now() time.Time {
	if ms.Now != nil {
		return ms.Now()
	}
	return time.Now().UTC()
}

// GetMatch retrieves a match by ID
func (ms *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	item, err := ms.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}
	if item == nil {
		return nil, ErrMatchNotFound
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to parse match %s: %w", matchID, err)
	}
	return &match, nil
}

// setStatusIf performs the conditional status write. It returns true when the
// transition was applied and false when the condition did not hold (a no-op,
// not an error).
func (ms *MatchService) setStatusIf(ctx context.Context, matchID, newStatus, conditionExpression string, conditionValues map[string]types.AttributeValue) (bool, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionValues := map[string]types.AttributeValue{
		":newStatus": &types.AttributeValueMemberS{Value: newStatus},
	}
	for k, v := range conditionValues {
		expressionValues[k] = v
	}
	expressionNames := map[string]string{
		"#status": "status",
	}

	err := ms.Dynamo.UpdateItemWithCondition(ctx, models.MatchesTable, key, "SET #status = :newStatus", conditionExpression, expressionValues, expressionNames)
	if err == ErrConditionFailed {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if ms.Notifier != nil {
		ms.Notifier.MatchUpdated(matchID, newStatus)
	}
	return true, nil
}

// Connect declares the caller's unlock_chat intent and, once both
// participants have declared, advances the match from pending to blind_mail.
// The first declaration is banked in the ledger with no visible state change;
// the second one flips the status.
func (ms *MatchService) Connect(ctx context.Context, matchID, userID string) error {
	match, err := ms.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasParticipant(userID) {
		return ErrNotAParticipant
	}

	if err := ms.Decisions.Declare(ctx, matchID, userID, models.DecisionUnlockChat); err != nil {
		return err
	}

	consensus, err := ms.Decisions.HasConsensus(ctx, matchID, models.DecisionUnlockChat)
	if err != nil {
		return err
	}
	if !consensus {
		return nil
	}

	applied, err := ms.setStatusIf(ctx, matchID, models.MatchStatusBlindMail,
		"#status = :pending",
		map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: models.MatchStatusPending},
		})
	if err != nil {
		return err
	}
	if applied {
		log.Printf("Match %s entered blind mail phase", matchID)
	}
	return nil
}

// Skip rejects the match. Rejection is terminal: the conditional write is a
// no-op on matches that are already rejected or revealed.
func (ms *MatchService) Skip(ctx context.Context, matchID string) error {
	if _, err := ms.GetMatch(ctx, matchID); err != nil {
		return err
	}

	_, err := ms.setStatusIf(ctx, matchID, models.MatchStatusRejected,
		"#status <> :rejected AND #status <> :revealed",
		map[string]types.AttributeValue{
			":rejected": &types.AttributeValueMemberS{Value: models.MatchStatusRejected},
			":revealed": &types.AttributeValueMemberS{Value: models.MatchStatusRevealed},
		})
	return err
}

// UnlockChat applies the blind_mail -> chat_unlocked transition when both
// participants have sent their letter quota. The quota is symmetric, so the
// caller's identity is not needed.
func (ms *MatchService) UnlockChat(ctx context.Context, matchID string) error {
	match, err := ms.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	lettersA, err := ms.Chat.CountLettersBySender(ctx, matchID, match.UserA)
	if err != nil {
		return err
	}
	lettersB, err := ms.Chat.CountLettersBySender(ctx, matchID, match.UserB)
	if err != nil {
		return err
	}

	if !ChatUnlockEligible(lettersA, lettersB) {
		return notEligible("need at least %d letters from each side (currently %d and %d)", LettersPerSide, lettersA, lettersB)
	}

	applied, err := ms.setStatusIf(ctx, matchID, models.MatchStatusChatUnlocked,
		"#status = :blindMail",
		map[string]types.AttributeValue{
			":blindMail": &types.AttributeValueMemberS{Value: models.MatchStatusBlindMail},
		})
	if err != nil {
		return err
	}
	if applied {
		log.Printf("Match %s unlocked chat", matchID)
	}
	return nil
}

// RequestReveal declares the caller's reveal intent after checking the
// reveal gate, and advances the match to revealed once both participants
// have declared.
func (ms *MatchService) RequestReveal(ctx context.Context, matchID, userID string) (*RevealResult, error) {
	match, err := ms.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(userID) {
		return nil, ErrNotAParticipant
	}

	messageCount, err := ms.Chat.CountMessages(ctx, matchID)
	if err != nil {
		return nil, err
	}
	days := ms.daysSinceStart(match)

	if match.Status == models.MatchStatusRejected {
		return nil, notEligible("match has been rejected")
	}
	if !RevealEligible(messageCount, days, match.Status) {
		return nil, notEligible("need at least %d messages or %d days (currently %d messages, %d days)", RevealMessageQuota, RevealDaysQuota, messageCount, days)
	}

	if err := ms.Decisions.Declare(ctx, matchID, userID, models.DecisionReveal); err != nil {
		return nil, err
	}

	result := &RevealResult{MessageCount: messageCount, DaysSinceStart: days, Status: match.Status}

	consensus, err := ms.Decisions.HasConsensus(ctx, matchID, models.DecisionReveal)
	if err != nil {
		return nil, err
	}
	if !consensus {
		return result, nil
	}

	applied, err := ms.setStatusIf(ctx, matchID, models.MatchStatusRevealed,
		"#status IN (:blindMail, :chatUnlocked)",
		map[string]types.AttributeValue{
			":blindMail":    &types.AttributeValueMemberS{Value: models.MatchStatusBlindMail},
			":chatUnlocked": &types.AttributeValueMemberS{Value: models.MatchStatusChatUnlocked},
		})
	if err != nil {
		return nil, err
	}
	if applied {
		log.Printf("Match %s revealed", matchID)
		result.Status = models.MatchStatusRevealed
	}
	return result, nil
}

// FindOrCreateMatch returns the user's newest non-rejected match, or pairs
// them with an arbitrary free candidate. The candidate policy is a stub by
// contract; a real deployment would swap in a scored matching service.
func (ms *MatchService) FindOrCreateMatch(ctx context.Context, userID string) (*models.Match, error) {
	existing, err := ms.findActiveMatch(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	var candidates []models.Profile
	err = ms.Dynamo.ScanWithFilter(ctx, models.ProfilesTable, nil, map[string]string{"userId": userID}, &candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for partner candidates: %w", err)
	}

	for _, candidate := range candidates {
		active, err := ms.findActiveMatch(ctx, candidate.UserID)
		if err != nil {
			return nil, err
		}
		if active != nil {
			continue
		}

		match := models.Match{
			MatchID:   uuid.NewString(),
			UserA:     userID,
			UserB:     candidate.UserID,
			Status:    models.MatchStatusPending,
			CreatedAt: ms.now().Format(time.RFC3339),
		}
		if err := ms.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
			return nil, fmt.Errorf("failed to create match: %w", err)
		}
		log.Printf("Created match %s between %s and %s", match.MatchID, match.UserA, match.UserB)
		return &match, nil
	}

	return nil, ErrNoPartnerAvailable
}

// findActiveMatch returns the user's newest non-rejected match, or nil
func (ms *MatchService) findActiveMatch(ctx context.Context, userID string) (*models.Match, error) {
	var all []models.Match

	for _, index := range []struct {
		name string
		attr string
	}{
		{models.UserAIndex, "userA"},
		{models.UserBIndex, "userB"},
	} {
		keyCondition := fmt.Sprintf("%s = :userId", index.attr)
		expressionValues := map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		}

		items, err := ms.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, index.name, keyCondition, expressionValues, nil, 25)
		if err != nil {
			return nil, fmt.Errorf("failed to query matches for %s: %w", userID, err)
		}

		var matches []models.Match
		if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
			return nil, fmt.Errorf("failed to parse matches for %s: %w", userID, err)
		}
		all = append(all, matches...)
	}

	var newest *models.Match
	for i := range all {
		match := all[i]
		if match.Status == models.MatchStatusRejected {
			continue
		}
		if newest == nil || match.CreatedAt > newest.CreatedAt {
			newest = &match
		}
	}
	return newest, nil
}

// GetMatchState builds the dashboard snapshot for one participant. The
// partner's identifying handle is included only when the match is revealed.
func (ms *MatchService) GetMatchState(ctx context.Context, matchID, userID string) (*MatchState, error) {
	match, err := ms.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(userID) {
		return nil, ErrNotAParticipant
	}
	partnerID := match.PartnerOf(userID)

	messageCount, err := ms.Chat.CountMessages(ctx, matchID)
	if err != nil {
		return nil, err
	}
	lettersSent, err := ms.Chat.CountLettersBySender(ctx, matchID, userID)
	if err != nil {
		return nil, err
	}
	lettersReceived, err := ms.Chat.CountLettersBySender(ctx, matchID, partnerID)
	if err != nil {
		return nil, err
	}
	days := ms.daysSinceStart(match)

	state := &MatchState{
		MatchID:            matchID,
		Status:             match.Status,
		CreatedAt:          match.CreatedAt,
		CompatibilityScore: CompatibilityScore(0),
		MessageCount:       messageCount,
		DaysSinceStart:     days,
		LettersSent:        lettersSent,
		LettersReceived:    lettersReceived,
		RevealEligible:     RevealEligible(messageCount, days, match.Status),
	}

	partnerKey := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: partnerID},
	}
	partnerItem, err := ms.Dynamo.GetItem(ctx, models.ProfilesTable, partnerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch partner profile: %w", err)
	}
	if partnerItem != nil {
		state.PartnerDisplayName = utils.ExtractString(partnerItem, "displayName")
		state.PartnerAvatarURL = utils.ExtractString(partnerItem, "anonAvatarUrl")
		state.CompatibilityScore = CompatibilityScore(utils.ExtractListLength(partnerItem, "personalityAnswers"))
		if match.Status == models.MatchStatusRevealed {
			state.PartnerInstagram = utils.ExtractString(partnerItem, "realInstagram")
		}
	}

	return state, nil
}

// daysSinceStart computes whole days elapsed since match creation. An
// unparseable timestamp counts as day zero.
func (ms *MatchService) daysSinceStart(match *models.Match) int {
	createdAt, err := time.Parse(time.RFC3339, match.CreatedAt)
	if err != nil {
		return 0
	}
	return DaysSince(createdAt, ms.now())
}
