package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdobak/go-xerrors"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

var (
	ErrUnauthorized = xerrors.Message("Not authorized")
	ErrInvalidToken = xerrors.Message("Invalid token")
)

func (user *User) SetPassword(plainTextPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), passwordCost)

	if err != nil {
		return xerrors.New(err)
	}

	user.PlaintextPassword = plainTextPassword
	user.Password = hashedPassword
	return nil
}

func (user *User) IsPasswordMatch(plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(user.Password, []byte(plainTextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, xerrors.New(err)
	}

	return true, nil
}

// TokenIssuer signs and verifies HS256 tokens with the server-held secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (issuer *TokenIssuer) Issue(user *User) (string, error) {
	now := issuer.now()
	claim := UserClaim{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(issuer.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)
	signedString, err := token.SignedString(issuer.secret)
	if err != nil {
		return "", xerrors.New(err)
	}
	return signedString, nil
}

// Verify checks signature and expiry and returns the user id carried in the subject.
func (issuer *TokenIssuer) Verify(tokenString string) (int64, *UserClaim, error) {
	claim := &UserClaim{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claim, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, xerrors.New("unexpected signing method")
		}
		return issuer.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(issuer.now),
	)

	if err != nil {
		return 0, nil, xerrors.New(err)
	}

	if !parsedToken.Valid {
		return 0, nil, xerrors.New(ErrInvalidToken)
	}

	userID, err := strconv.ParseInt(claim.Subject, 10, 64)
	if err != nil {
		return 0, nil, xerrors.Newf("token subject %q: %w", claim.Subject, ErrInvalidToken)
	}
	return userID, claim, nil
}
