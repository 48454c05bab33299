package services

import (
	"context"
	"testing"

	"blindmail_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAnswers(t *testing.T) {
	normalized := NormalizeAnswers([]models.PersonalityAnswer{
		{Question: " favorite book ", Answer: " dune "},
		{Question: "", Answer: "no question"},
		{Question: "no answer", Answer: "   "},
		{Question: "city", Answer: "lisbon"},
	})

	require.Len(t, normalized, 2)
	assert.Equal(t, models.PersonalityAnswer{Question: "favorite book", Answer: "dune"}, normalized[0])
	assert.Equal(t, models.PersonalityAnswer{Question: "city", Answer: "lisbon"}, normalized[1])
}

func TestUpsertProfileValidation(t *testing.T) {
	fd := newFakeDynamo()
	ps := &ProfileService{Dynamo: fd}
	ctx := context.Background()

	var validationErr *ValidationError
	_, err := ps.UpsertProfile(ctx, models.Profile{DisplayName: "Alice"})
	assert.ErrorAs(t, err, &validationErr)

	_, err = ps.UpsertProfile(ctx, models.Profile{UserID: "alice", DisplayName: "  "})
	assert.ErrorAs(t, err, &validationErr)

	stored, err := ps.UpsertProfile(ctx, models.Profile{
		UserID:      "alice",
		DisplayName: "Alice",
		PersonalityAnswers: []models.PersonalityAnswer{
			{Question: "q", Answer: "a"},
			{Question: "", Answer: "dropped"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, stored.PersonalityAnswers, 1)
	assert.NotEmpty(t, stored.CreatedAt)

	fetched, err := ps.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", fetched.DisplayName)
}

func TestGetProfileNotFound(t *testing.T) {
	fd := newFakeDynamo()
	ps := &ProfileService{Dynamo: fd}

	_, err := ps.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestPublicProfileHidesHandleUntilRevealed(t *testing.T) {
	fd := newFakeDynamo()
	ps := &ProfileService{Dynamo: fd}
	ctx := context.Background()

	fd.putProfile(models.Profile{UserID: "alice", DisplayName: "Alice", RealInstagram: "@alice_real"})
	fd.putProfile(models.Profile{UserID: "bob", DisplayName: "Bob", RealInstagram: "@bob_real"})
	seedMatch(fd, "m1", "alice", "bob", models.MatchStatusChatUnlocked, testStart)

	public, err := ps.PublicProfile(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Empty(t, public.RealInstagram, "handle stays hidden before reveal")
	assert.Equal(t, "Alice", public.DisplayName)

	seedMatch(fd, "m1", "alice", "bob", models.MatchStatusRevealed, testStart)
	public, err = ps.PublicProfile(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "@alice_real", public.RealInstagram)

	// the reveal only opens the handle between the two participants
	fd.putProfile(models.Profile{UserID: "carol", DisplayName: "Carol"})
	public, err = ps.PublicProfile(ctx, "alice", "carol")
	require.NoError(t, err)
	assert.Empty(t, public.RealInstagram)

	// an anonymous viewer never sees it either
	public, err = ps.PublicProfile(ctx, "alice", "")
	require.NoError(t, err)
	assert.Empty(t, public.RealInstagram)

	// owners always see their own handle
	public, err = ps.PublicProfile(ctx, "alice", "alice")
	require.NoError(t, err)
	assert.Equal(t, "@alice_real", public.RealInstagram)
}

func TestCompatibilityScore(t *testing.T) {
	assert.Equal(t, 62, CompatibilityScore(0), "no answers falls back to the default badge")
	assert.Equal(t, 57, CompatibilityScore(1))
	assert.Equal(t, 61, CompatibilityScore(3))
	assert.Equal(t, 69, CompatibilityScore(7))
	assert.Equal(t, 70, CompatibilityScore(8), "score caps at 70")
	assert.Equal(t, 70, CompatibilityScore(100))
}
