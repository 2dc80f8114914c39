package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siahsang/conduit/internal/auth"
)

func TestCreateUserReportsEveryTakenField(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	createUser(t, c, "jake")

	err := c.CreateUser(ctx, &auth.User{Username: "jake", Email: "jake@example.com", Password: []byte("x")})
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, map[string]string{"email": alreadyTaken, "username": alreadyTaken}, conflict.Fields)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	err = c.CreateUser(ctx, &auth.User{Username: "other", Email: "jake@example.com", Password: []byte("x")})
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, map[string]string{"email": alreadyTaken}, conflict.Fields)
}

func TestGetUserLookups(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	jake := createUser(t, c, "jake")
	createUser(t, c, "anne")

	byEmail, err := c.GetUserByEmail(ctx, "jake@example.com")
	require.NoError(t, err)
	assert.Equal(t, jake.ID, byEmail.ID)

	byName, err := c.GetUserByUsername(ctx, "jake")
	require.NoError(t, err)
	assert.Equal(t, jake.ID, byName.ID)
	assert.Nil(t, byName.Bio)

	_, err = c.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, NoRecordFound)

	users, err := c.GetUsersByIDList(ctx, []int64{jake.ID, 999})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "jake", users[0].Username)

	users, err = c.GetUsersByIDList(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUpdateUser(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	jake := createUser(t, c, "jake")
	createUser(t, c, "anne")

	bio := "I work at statefarm"
	password := "new password"
	updated, err := c.UpdateUser(ctx, jake.ID, UserPatch{Bio: &bio, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "jake", updated.Username)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)

	stored, err := c.GetUserByID(ctx, jake.ID)
	require.NoError(t, err)
	match, err := stored.IsPasswordMatch(password)
	require.NoError(t, err)
	assert.True(t, match)

	taken := "anne"
	_, err = c.UpdateUser(ctx, jake.ID, UserPatch{Username: &taken})
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, map[string]string{"username": alreadyTaken}, conflict.Fields)

	same := "jake@example.com"
	_, err = c.UpdateUser(ctx, jake.ID, UserPatch{Email: &same})
	assert.NoError(t, err)
}
