package auth

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the authenticated identity handlers read from the
// request context. Account is the caller's payment account id; it is
// also the passenger identity written into seat maps.
type UserClaims interface {
	Account() string
	Source() string
}

// TokenClaims are the JWT claims skyledger issues and accepts. The
// subject is the account id.
type TokenClaims struct {
	jwt.RegisteredClaims
}

func (c *TokenClaims) Account() string { return c.Subject }
func (c *TokenClaims) Source() string  { return "JWT" }
