package auth

import "context"

// TokenIssuer abstracts access token creation (e.g., JWT).
// Tokens are bound to the user's email, which is the identity every
// protected request is resolved against.
type TokenIssuer interface {
	Issue(ctx context.Context, email string) (string, error)
}
