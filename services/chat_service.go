package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"blindmail_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService handles letters and chat messages inside a match, and the
// message counters the eligibility gates read.
type ChatService struct {
	Dynamo   DynamoAPI
	Notifier Notifier
}

// getMatch retrieves a match by ID
func (s *ChatService) getMatch(ctx context.Context, matchID string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, key)
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

// SendLetter validates and stores a blind-mail letter. The body must contain
// at least MinLetterLength runes after trimming.
func (s *ChatService) SendLetter(ctx context.Context, matchID, senderID, body string) (*models.Message, error) {
	trimmed := strings.TrimSpace(body)
	if utf8.RuneCountInString(trimmed) < MinLetterLength {
		return nil, invalid("letter must be at least %d characters, got %d", MinLetterLength, utf8.RuneCountInString(trimmed))
	}

	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(senderID) {
		return nil, ErrNotAParticipant
	}
	if match.Status == models.MatchStatusRejected {
		return nil, notEligible("match has been rejected")
	}

	return s.storeMessage(ctx, matchID, senderID, models.MessageTypeLetter, trimmed)
}

// SendChatMessage stores a realtime chat line. Chat is only open once the
// match has reached chat_unlocked (or revealed).
func (s *ChatService) SendChatMessage(ctx context.Context, matchID, senderID, body string) (*models.Message, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, invalid("message body cannot be empty")
	}

	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(senderID) {
		return nil, ErrNotAParticipant
	}
	if match.Status != models.MatchStatusChatUnlocked && match.Status != models.MatchStatusRevealed {
		return nil, notEligible("chat is not unlocked for this match")
	}

	return s.storeMessage(ctx, matchID, senderID, models.MessageTypeChat, trimmed)
}

func (s *ChatService) storeMessage(ctx context.Context, matchID, senderID, messageType, body string) (*models.Message, error) {
	message := models.Message{
		MatchID:   matchID,
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Type:      messageType,
		Body:      body,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store %s message: %w", messageType, err)
	}

	if s.Notifier != nil {
		s.Notifier.NewMessage(message)
	}
	return &message, nil
}

// GetMessages fetches messages for a match sorted oldest-first. messageType
// may be empty to fetch both letters and chat lines.
func (s *ChatService) GetMessages(ctx context.Context, matchID, messageType string, limit int) ([]models.Message, error) {
	keyCondition := "#matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	expressionNames := map[string]string{
		"#matchId": "matchId",
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, expressionNames, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	if messageType != "" {
		filtered := messages[:0]
		for _, msg := range messages {
			if msg.Type == messageType {
				filtered = append(filtered, msg)
			}
		}
		messages = filtered
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt < messages[j].CreatedAt
	})

	return messages, nil
}

// CountLettersBySender counts the letters a participant has authored in a
// match. This feeds the chat-unlock gate.
func (s *ChatService) CountLettersBySender(ctx context.Context, matchID, senderID string) (int, error) {
	keyCondition := "matchId = :matchId"
	filter := "senderId = :senderId AND #type = :type"
	expressionValues := map[string]types.AttributeValue{
		":matchId":  &types.AttributeValueMemberS{Value: matchID},
		":senderId": &types.AttributeValueMemberS{Value: senderID},
		":type":     &types.AttributeValueMemberS{Value: models.MessageTypeLetter},
	}
	expressionNames := map[string]string{
		"#type": "type",
	}

	count, err := s.Dynamo.CountItems(ctx, models.MessagesTable, keyCondition, filter, expressionValues, expressionNames)
	if err != nil {
		return 0, fmt.Errorf("failed to count letters for %s in match %s: %w", senderID, matchID, err)
	}
	return count, nil
}

// CountMessages counts all messages (letters and chat) in a match. This
// feeds the reveal gate.
func (s *ChatService) CountMessages(ctx context.Context, matchID string) (int, error) {
	keyCondition := "matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}

	count, err := s.Dynamo.CountItems(ctx, models.MessagesTable, keyCondition, "", expressionValues, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages for match %s: %w", matchID, err)
	}
	return count, nil
}
