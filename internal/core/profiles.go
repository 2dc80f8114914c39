package core

import (
	"context"
	"errors"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/siahsang/conduit/models"
)

func toProfile(user *auth.User, following bool) *models.Profile {
	return &models.Profile{
		ID:        user.ID,
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
	}
}

func (c *Core) profileUser(ctx context.Context, username string) (*auth.User, error) {
	user, err := c.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, NoRecordFound) {
			return nil, xerrors.New(ErrProfileNotFound)
		}
		return nil, err
	}
	return user, nil
}

// GetProfile returns the public view of username. Following is false for anonymous viewers.
func (c *Core) GetProfile(ctx context.Context, identity auth.Identity, username string) (*models.Profile, error) {
	user, err := c.profileUser(ctx, username)
	if err != nil {
		return nil, err
	}

	viewerID, ok := identity.UserID()
	if !ok {
		return toProfile(user, false), nil
	}

	following, err := c.IsFollowing(ctx, viewerID, user.ID)
	if err != nil {
		return nil, err
	}
	return toProfile(user, following), nil
}

// FollowProfile adds the follow edge if it is missing.
func (c *Core) FollowProfile(ctx context.Context, viewerID int64, username string) (*models.Profile, error) {
	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Profile, error) {
		user, err := c.profileUser(txCtx, username)
		if err != nil {
			return nil, err
		}
		if user.ID == viewerID {
			return nil, xerrors.New(ErrFollowSelf)
		}

		added, err := c.insertFollow(txCtx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		if added {
			c.log.InfoContext(ctx, "User followed", "follower_id", viewerID, "following_id", user.ID)
		}
		return toProfile(user, true), nil
	})
}

// UnfollowProfile removes the follow edge. A missing edge is not an error.
func (c *Core) UnfollowProfile(ctx context.Context, viewerID int64, username string) (*models.Profile, error) {
	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Profile, error) {
		user, err := c.profileUser(txCtx, username)
		if err != nil {
			return nil, err
		}
		if user.ID == viewerID {
			return nil, xerrors.New(ErrFollowSelf)
		}

		removed, err := c.deleteFollow(txCtx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		if removed {
			c.log.InfoContext(ctx, "User unfollowed", "follower_id", viewerID, "following_id", user.ID)
		}
		return toProfile(user, false), nil
	})
}
