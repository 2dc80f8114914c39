package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siahsang/conduit/internal/auth"
)

func TestFollowAndUnfollow(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	jake := createUser(t, c, "jake")
	anne := createUser(t, c, "anne")

	for i := 0; i < 2; i++ {
		profile, err := c.FollowProfile(ctx, anne.ID, "jake")
		require.NoError(t, err)
		assert.True(t, profile.Following)
		assert.Equal(t, "jake", profile.Username)
	}

	ids, err := c.FollowingIDs(ctx, anne.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{jake.ID}, ids)

	viewed, err := c.GetProfile(ctx, auth.Authenticated(anne), "jake")
	require.NoError(t, err)
	assert.True(t, viewed.Following)

	anonymous, err := c.GetProfile(ctx, auth.Anonymous(), "jake")
	require.NoError(t, err)
	assert.False(t, anonymous.Following)

	for i := 0; i < 2; i++ {
		profile, err := c.UnfollowProfile(ctx, anne.ID, "jake")
		require.NoError(t, err)
		assert.False(t, profile.Following)
	}

	following, err := c.IsFollowing(ctx, anne.ID, jake.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowErrors(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	jake := createUser(t, c, "jake")

	_, err := c.FollowProfile(ctx, jake.ID, "jake")
	assert.ErrorIs(t, err, ErrFollowSelf)

	_, err = c.UnfollowProfile(ctx, jake.ID, "jake")
	assert.ErrorIs(t, err, ErrFollowSelf)

	_, err = c.FollowProfile(ctx, jake.ID, "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = c.UnfollowProfile(ctx, jake.ID, "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = c.GetProfile(ctx, auth.Anonymous(), "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
