package services

import (
	"context"
	"testing"

	"blindmail_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareIsIdempotent(t *testing.T) {
	fd := newFakeDynamo()
	ds := &DecisionService{Dynamo: fd}
	ctx := context.Background()

	require.NoError(t, ds.Declare(ctx, "m1", "alice", models.DecisionUnlockChat))
	require.NoError(t, ds.Declare(ctx, "m1", "alice", models.DecisionUnlockChat))
	require.NoError(t, ds.Declare(ctx, "m1", "alice", models.DecisionUnlockChat))

	count, err := ds.CountDeclarations(ctx, "m1", models.DecisionUnlockChat)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "repeated declarations by the same user must not double-count")
}

func TestCountDeclarationsSeparatesKinds(t *testing.T) {
	fd := newFakeDynamo()
	ds := &DecisionService{Dynamo: fd}
	ctx := context.Background()

	require.NoError(t, ds.Declare(ctx, "m1", "alice", models.DecisionUnlockChat))
	require.NoError(t, ds.Declare(ctx, "m1", "bob", models.DecisionReveal))

	unlockCount, err := ds.CountDeclarations(ctx, "m1", models.DecisionUnlockChat)
	require.NoError(t, err)
	assert.Equal(t, 1, unlockCount)

	revealCount, err := ds.CountDeclarations(ctx, "m1", models.DecisionReveal)
	require.NoError(t, err)
	assert.Equal(t, 1, revealCount)
}

func TestHasConsensus(t *testing.T) {
	fd := newFakeDynamo()
	ds := &DecisionService{Dynamo: fd}
	ctx := context.Background()

	consensus, err := ds.HasConsensus(ctx, "m1", models.DecisionReveal)
	require.NoError(t, err)
	assert.False(t, consensus)

	require.NoError(t, ds.Declare(ctx, "m1", "alice", models.DecisionReveal))
	consensus, err = ds.HasConsensus(ctx, "m1", models.DecisionReveal)
	require.NoError(t, err)
	assert.False(t, consensus, "one declaration is banked, not consensus")

	require.NoError(t, ds.Declare(ctx, "m1", "bob", models.DecisionReveal))
	consensus, err = ds.HasConsensus(ctx, "m1", models.DecisionReveal)
	require.NoError(t, err)
	assert.True(t, consensus)

	// declarations scoped to another match do not leak
	consensus, err = ds.HasConsensus(ctx, "m2", models.DecisionReveal)
	require.NoError(t, err)
	assert.False(t, consensus)
}
