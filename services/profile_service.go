package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blindmail_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileService handles user profiles. The identifying handle
// (realInstagram) is write-visible only to its owner and read-visible to a
// partner only through a revealed match.
type ProfileService struct {
	Dynamo DynamoAPI
}

// UpsertProfile creates or replaces the caller's profile. Personality
// answers are normalized to an ordered list of non-empty (question, answer)
// pairs; malformed entries are dropped at this boundary instead of being
// tolerated downstream.
func (ps *ProfileService) UpsertProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	if strings.TrimSpace(profile.UserID) == "" {
		return nil, invalid("userId is required")
	}
	if strings.TrimSpace(profile.DisplayName) == "" {
		return nil, invalid("displayName is required")
	}

	profile.PersonalityAnswers = NormalizeAnswers(profile.PersonalityAnswers)
	if profile.CreatedAt == "" {
		profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := ps.Dynamo.PutItem(ctx, models.ProfilesTable, profile); err != nil {
		return nil, fmt.Errorf("failed to store profile for %s: %w", profile.UserID, err)
	}
	return &profile, nil
}

// GetProfile retrieves the caller's own profile, handle included
func (ps *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := ps.Dynamo.GetItem(ctx, models.ProfilesTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", userID, err)
	}
	if item == nil {
		return nil, ErrProfileNotFound
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile for %s: %w", userID, err)
	}
	return &profile, nil
}

// PublicProfile returns userID's profile as seen by viewerID. The
// identifying handle is stripped unless the two users share a revealed
// match; this gate is authoritative here, never in the presentation layer.
func (ps *ProfileService) PublicProfile(ctx context.Context, userID, viewerID string) (*models.Profile, error) {
	profile, err := ps.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	revealed, err := ps.revealedWith(ctx, viewerID, userID)
	if err != nil {
		return nil, err
	}
	if !revealed {
		profile.RealInstagram = ""
	}
	return profile, nil
}

// revealedWith reports whether viewerID and targetID share a revealed match
func (ps *ProfileService) revealedWith(ctx context.Context, viewerID, targetID string) (bool, error) {
	if viewerID == "" || viewerID == targetID {
		return viewerID == targetID, nil
	}

	for _, index := range []struct {
		name string
		attr string
	}{
		{models.UserAIndex, "userA"},
		{models.UserBIndex, "userB"},
	} {
		keyCondition := fmt.Sprintf("%s = :userId", index.attr)
		expressionValues := map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: viewerID},
		}

		items, err := ps.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, index.name, keyCondition, expressionValues, nil, 25)
		if err != nil {
			return false, fmt.Errorf("failed to query matches for %s: %w", viewerID, err)
		}

		var matches []models.Match
		if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
			return false, fmt.Errorf("failed to parse matches for %s: %w", viewerID, err)
		}
		for _, match := range matches {
			if match.Status == models.MatchStatusRevealed && match.HasParticipant(targetID) {
				return true, nil
			}
		}
	}
	return false, nil
}

// NormalizeAnswers drops malformed personality answers and trims the rest,
// preserving order.
func NormalizeAnswers(answers []models.PersonalityAnswer) []models.PersonalityAnswer {
	normalized := make([]models.PersonalityAnswer, 0, len(answers))
	for _, answer := range answers {
		question := strings.TrimSpace(answer.Question)
		text := strings.TrimSpace(answer.Answer)
		if question == "" || text == "" {
			continue
		}
		normalized = append(normalized, models.PersonalityAnswer{Question: question, Answer: text})
	}
	return normalized
}

// CompatibilityScore is the display-only badge score: 62 with no answers,
// otherwise 55 plus 2 points per answer, capped at 70. It never gates a
// transition.
func CompatibilityScore(answerCount int) int {
	if answerCount <= 0 {
		return 62
	}
	score := 55 + 2*answerCount
	if score > 70 {
		score = 70
	}
	return score
}
