package services

import (
	"context"
	"fmt"
	"time"

	"blindmail_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DecisionService is the decision ledger: it records a user's declared
// intent for a match and answers "have both participants declared it?".
type DecisionService struct {
	Dynamo DynamoAPI
}

// Declare idempotently upserts the (match, user, decision) row. The sort key
// encodes decision and user, so repeated declarations by the same user
// replace the same item and never double-count toward consensus.
func (ds *DecisionService) Declare(ctx context.Context, matchID, userID, decision string) error {
	row := models.MatchDecision{
		MatchID:     matchID,
		DecisionKey: models.DecisionKey(decision, userID),
		UserID:      userID,
		Decision:    decision,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := ds.Dynamo.PutItem(ctx, models.MatchDecisionsTable, row); err != nil {
		return fmt.Errorf("failed to record %s decision for match %s: %w", decision, matchID, err)
	}
	return nil
}

// CountDeclarations returns how many distinct users have declared the given
// decision for the match. With at most two participants, a count >= 2 means
// consensus.
func (ds *DecisionService) CountDeclarations(ctx context.Context, matchID, decision string) (int, error) {
	keyCondition := "matchId = :matchId AND begins_with(decisionKey, :decisionPrefix)"
	expressionValues := map[string]types.AttributeValue{
		":matchId":        &types.AttributeValueMemberS{Value: matchID},
		":decisionPrefix": &types.AttributeValueMemberS{Value: decision + "#"},
	}

	count, err := ds.Dynamo.CountItems(ctx, models.MatchDecisionsTable, keyCondition, "", expressionValues, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s declarations for match %s: %w", decision, matchID, err)
	}
	return count, nil
}

// HasConsensus reports whether both participants have declared the decision
func (ds *DecisionService) HasConsensus(ctx context.Context, matchID, decision string) (bool, error) {
	count, err := ds.CountDeclarations(ctx, matchID, decision)
	if err != nil {
		return false, err
	}
	return count >= ConsensusThreshold, nil
}
