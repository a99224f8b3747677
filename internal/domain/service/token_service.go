package service

// TokenService defines the interface for issuing and verifying signed bearer
// tokens. Tokens carry only the user id; they have no expiry and stay valid
// until removed from the user's live-token list.
type TokenService interface {
	// Issue creates a signed token for the given user id.
	Issue(userID string) (string, error)

	// Verify checks the token signature and returns the embedded user id.
	Verify(token string) (string, error)
}
