package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"blindmail_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is a simple in-memory stand-in for the DynamoDB access layer.
// It understands the tables and the handful of expression shapes the
// services use, including the conditional status update.
type fakeDynamo struct {
	mu        sync.Mutex
	matches   map[string]models.Match
	profiles  map[string]models.Profile
	messages  []models.Message
	decisions map[string]models.MatchDecision
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		matches:   make(map[string]models.Match),
		profiles:  make(map[string]models.Profile),
		decisions: make(map[string]models.MatchDecision),
	}
}

func (f *fakeDynamo) putMatch(m models.Match) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[m.MatchID] = m
}

func (f *fakeDynamo) putProfile(p models.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.UserID] = p
}

func (f *fakeDynamo) matchStatus(matchID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.matches[matchID].Status
}

func (f *fakeDynamo) decisionCount(matchID, decision string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, d := range f.decisions {
		if d.MatchID == matchID && d.Decision == decision {
			count++
		}
	}
	return count
}

func stringValue(values map[string]types.AttributeValue, name string) string {
	if attr, ok := values[name]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

func (f *fakeDynamo) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch tableName {
	case models.MatchesTable:
		match, ok := f.matches[stringValue(key, "matchId")]
		if !ok {
			return nil, nil
		}
		return attributevalue.MarshalMap(match)
	case models.ProfilesTable:
		profile, ok := f.profiles[stringValue(key, "userId")]
		if !ok {
			return nil, nil
		}
		return attributevalue.MarshalMap(profile)
	}
	return nil, fmt.Errorf("fakeDynamo: unexpected GetItem on table %s", tableName)
}

func (f *fakeDynamo) PutItem(ctx context.Context, tableName string, item interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch v := item.(type) {
	case models.Match:
		f.matches[v.MatchID] = v
	case models.Message:
		f.messages = append(f.messages, v)
	case models.MatchDecision:
		f.decisions[v.MatchID+"|"+v.DecisionKey] = v
	case models.Profile:
		f.profiles[v.UserID] = v
	default:
		return fmt.Errorf("fakeDynamo: unexpected item type %T", item)
	}
	return nil
}

func (f *fakeDynamo) QueryItems(ctx context.Context, tableName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if tableName != models.MessagesTable {
		return nil, fmt.Errorf("fakeDynamo: unexpected QueryItems on table %s", tableName)
	}

	matchID := stringValue(expressionAttributeValues, ":matchId")
	var items []map[string]types.AttributeValue
	for _, msg := range f.messages {
		if msg.MatchID != matchID {
			continue
		}
		item, err := attributevalue.MarshalMap(msg)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeDynamo) QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if tableName != models.MatchesTable {
		return nil, fmt.Errorf("fakeDynamo: unexpected QueryItemsWithIndex on table %s", tableName)
	}

	userID := stringValue(expressionAttributeValues, ":userId")
	var items []map[string]types.AttributeValue
	for _, match := range f.matches {
		if (indexName == models.UserAIndex && match.UserA == userID) ||
			(indexName == models.UserBIndex && match.UserB == userID) {
			item, err := attributevalue.MarshalMap(match)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeDynamo) CountItems(ctx context.Context, tableName string, keyConditionExpression, filterExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch tableName {
	case models.MatchDecisionsTable:
		matchID := stringValue(expressionAttributeValues, ":matchId")
		prefix := stringValue(expressionAttributeValues, ":decisionPrefix")
		count := 0
		for _, d := range f.decisions {
			if d.MatchID == matchID && strings.HasPrefix(d.DecisionKey, prefix) {
				count++
			}
		}
		return count, nil

	case models.MessagesTable:
		matchID := stringValue(expressionAttributeValues, ":matchId")
		senderID := stringValue(expressionAttributeValues, ":senderId")
		msgType := stringValue(expressionAttributeValues, ":type")
		count := 0
		for _, msg := range f.messages {
			if msg.MatchID != matchID {
				continue
			}
			if filterExpression != "" && (msg.SenderID != senderID || msg.Type != msgType) {
				continue
			}
			count++
		}
		return count, nil
	}
	return 0, fmt.Errorf("fakeDynamo: unexpected CountItems on table %s", tableName)
}

// evalStatusCondition evaluates the status predicates the match service
// uses: "=", "<>" and "IN (...)" clauses joined by AND.
func evalStatusCondition(status, conditionExpression string, values map[string]types.AttributeValue) bool {
	for _, clause := range strings.Split(conditionExpression, " AND ") {
		clause = strings.TrimSpace(clause)
		switch {
		case strings.HasPrefix(clause, "#status IN ("):
			list := strings.TrimSuffix(strings.TrimPrefix(clause, "#status IN ("), ")")
			found := false
			for _, ref := range strings.Split(list, ",") {
				if stringValue(values, strings.TrimSpace(ref)) == status {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case strings.HasPrefix(clause, "#status <> "):
			if stringValue(values, strings.TrimPrefix(clause, "#status <> ")) == status {
				return false
			}
		case strings.HasPrefix(clause, "#status = "):
			if stringValue(values, strings.TrimPrefix(clause, "#status = ")) != status {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (f *fakeDynamo) UpdateItemWithCondition(ctx context.Context, tableName string, key map[string]types.AttributeValue, updateExpression, conditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if tableName != models.MatchesTable {
		return fmt.Errorf("fakeDynamo: unexpected UpdateItemWithCondition on table %s", tableName)
	}

	match, ok := f.matches[stringValue(key, "matchId")]
	if !ok {
		return ErrConditionFailed
	}
	if conditionExpression != "" && !evalStatusCondition(match.Status, conditionExpression, expressionAttributeValues) {
		return ErrConditionFailed
	}

	match.Status = stringValue(expressionAttributeValues, ":newStatus")
	f.matches[match.MatchID] = match
	return nil
}

func (f *fakeDynamo) ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if tableName != models.ProfilesTable {
		return fmt.Errorf("fakeDynamo: unexpected ScanWithFilter on table %s", tableName)
	}

	var items []map[string]types.AttributeValue
	for _, profile := range f.profiles {
		item, err := attributevalue.MarshalMap(profile)
		if err != nil {
			return err
		}
		excluded := false
		for field, value := range excludeFields {
			if stringValue(item, field) == value {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if filterFunc != nil && !filterFunc(item) {
			continue
		}
		items = append(items, item)
	}
	return attributevalue.UnmarshalListOfMaps(items, result)
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	return nil
}

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	mu            sync.Mutex
	statusChanges []string
	messageEvents []models.Message
}

func (n *recordingNotifier) MatchUpdated(matchID, status string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statusChanges = append(n.statusChanges, matchID+":"+status)
}

func (n *recordingNotifier) NewMessage(message models.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messageEvents = append(n.messageEvents, message)
}
