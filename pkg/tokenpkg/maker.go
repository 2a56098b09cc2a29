package tokenpkg

import "time"

// Maker is an interface for managing identity tokens.
type Maker interface {
	// CreateToken creates a new token for the given user id and role.
	CreateToken(userID, role string, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}
