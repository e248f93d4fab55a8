// File: internal/auth/interfaces.go
package auth

import (
	"context"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// IDTokenVerifier checks a Google/Firebase ID token. A nil verifier means the
// Google flow trusts the identity asserted in the request body.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}
