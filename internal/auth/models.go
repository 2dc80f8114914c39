package auth

import "github.com/golang-jwt/jwt/v5"

// User is the account record. Password holds the bcrypt hash and never leaves the process.
type User struct {
	ID                int64   `json:"-"`
	Email             string  `json:"email"`
	Token             string  `json:"token,omitempty"`
	Username          string  `json:"username"`
	Bio               *string `json:"bio"`
	Image             *string `json:"image"`
	Password          []byte  `json:"-"`
	PlaintextPassword string  `json:"-"`
}

// UserClaim is the token payload; the subject carries the user id.
type UserClaim struct {
	Username string `json:"username"`
	Email    string `json:"email"`

	jwt.RegisteredClaims
}
