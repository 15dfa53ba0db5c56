package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims issued by the АлёГараж backend at login and
// registration.
type Payload struct {
	// StandardClaims embeds Exp, Iat and Iss, which drive validity checks.
	jwt.StandardClaims

	// ID is the account identifier of the token holder.
	ID string `json:"id"`

	// Nickname is carried for logging only; handlers always reload the
	// profile from storage.
	Nickname string `json:"nickname,omitempty"`
}
