package core

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/database"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/siahsang/conduit/internal/utils/stringutils"
)

const userColumns = `id, email, username, password, bio, image`

// UserPatch lists the profile fields a user may change on their own account.
type UserPatch struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

func scanUser(rows *sql.Rows) (*auth.User, error) {
	var user = &auth.User{}

	if err := rows.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.Password,
		&user.Bio,
		&user.Image,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}

// CreateUser inserts a user whose password has already been hashed.
func (c *Core) CreateUser(ctx context.Context, user *auth.User) error {
	return c.session.DoTransactionally(ctx, func(txCtx context.Context) error {
		if err := c.checkUniqueFields(txCtx, 0, user.Email, user.Username); err != nil {
			return err
		}

		query := `
			INSERT INTO users (username, email, password, bio, image)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		args := []any{user.Username, user.Email, user.Password, user.Bio, user.Image}
		id, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, query, scanID, args...)
		if err != nil {
			return uniqueViolationToConflict(err)
		}

		user.ID = id
		c.log.InfoContext(ctx, "User registered", "user_id", user.ID, "username", user.Username)
		return nil
	})
}

// checkUniqueFields reports every unique field already held by a user other than exceptID.
func (c *Core) checkUniqueFields(ctx context.Context, exceptID int64, email, username string) error {
	query := `
		SELECT id, email, username
		FROM users
		WHERE (email = $1 OR username = $2) AND id <> $3
	`
	type holder struct {
		email    string
		username string
	}
	holders, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (holder, error) {
		var id int64
		var h holder
		if err := rows.Scan(&id, &h.email, &h.username); err != nil {
			return h, xerrors.New(err)
		}
		return h, nil
	}, email, username, exceptID)
	if err != nil {
		return xerrors.New(err)
	}

	conflict := &ConflictError{Fields: map[string]string{}}
	for _, h := range holders {
		if h.email == email {
			conflict.Fields["email"] = alreadyTaken
		}
		if h.username == username {
			conflict.Fields["username"] = alreadyTaken
		}
	}
	if len(conflict.Fields) > 0 {
		return xerrors.New(conflict)
	}
	return nil
}

// uniqueViolationToConflict covers the race where a concurrent registration
// takes the email or username between the check and the write.
func uniqueViolationToConflict(err error) error {
	if !database.IsUniqueViolation(err) {
		return xerrors.New(err)
	}

	constraint := database.ViolatedConstraint(err)
	conflict := &ConflictError{Fields: map[string]string{}}
	switch {
	case strings.Contains(constraint, "email"):
		conflict.Fields["email"] = alreadyTaken
	case strings.Contains(constraint, "username"):
		conflict.Fields["username"] = alreadyTaken
	default:
		return xerrors.New(err)
	}
	return xerrors.New(conflict)
}

func (c *Core) getUserBy(ctx context.Context, column string, value any) (*auth.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, value)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}

func (c *Core) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	return c.getUserBy(ctx, "id", id)
}

func (c *Core) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return c.getUserBy(ctx, "email", email)
}

func (c *Core) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	return c.getUserBy(ctx, "username", username)
}

func (c *Core) GetUsersByIDList(ctx context.Context, userIDList []int64) ([]*auth.User, error) {
	if len(userIDList) == 0 {
		return []*auth.User{}, nil
	}

	inClause, args := stringutils.INClause(userIDList, 1)
	query := `SELECT ` + userColumns + ` FROM users WHERE id IN (` + inClause + `)`

	users, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanUser, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return users, nil
}

// UpdateUser applies the allow-listed patch to the user's own record.
func (c *Core) UpdateUser(ctx context.Context, userID int64, patch UserPatch) (*auth.User, error) {
	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*auth.User, error) {
		user, err := c.GetUserByID(txCtx, userID)
		if err != nil {
			return nil, err
		}

		if patch.Email != nil {
			user.Email = strings.TrimSpace(*patch.Email)
		}
		if patch.Username != nil {
			user.Username = strings.TrimSpace(*patch.Username)
		}
		if patch.Bio != nil {
			user.Bio = patch.Bio
		}
		if patch.Image != nil {
			user.Image = patch.Image
		}
		if patch.Password != nil {
			if err := user.SetPassword(*patch.Password); err != nil {
				return nil, err
			}
		}

		if patch.Email != nil || patch.Username != nil {
			if err := c.checkUniqueFields(txCtx, user.ID, user.Email, user.Username); err != nil {
				return nil, err
			}
		}

		query := `
			UPDATE users
			SET email = $1, username = $2, password = $3, bio = $4, image = $5
			WHERE id = $6
		`
		args := []any{user.Email, user.Username, user.Password, user.Bio, user.Image, user.ID}
		if _, err := databaseutils.Execute(c.sqlTemplate, txCtx, query, args...); err != nil {
			return nil, uniqueViolationToConflict(err)
		}

		c.log.InfoContext(ctx, "User updated Successfully", "user_id", user.ID, "email", user.Email)
		return user, nil
	})
}
