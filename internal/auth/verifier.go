package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Verifier validates a bearer credential and resolves the stable user ID.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// firebaseVerifier verifies Firebase ID tokens via the Admin SDK.
type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates a verifier backed by a Firebase service
// account credentials file.
// Parameters:
//   - ctx: context for SDK initialization.
//   - credentialsFile: path to the service account JSON.
// Returns:
//   - Verifier: initialized verifier.
//   - error: non-nil when the credentials file is missing or the SDK fails
//     to initialize.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (Verifier, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("credentials file %q not found: %w", credentialsFile, err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase auth client: %w", err)
	}

	return &firebaseVerifier{client: client}, nil
}

// Verify validates an ID token and returns the token's UID.
func (v *firebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("token verification failed: %w", err)
	}
	return decoded.UID, nil
}

// Disabled is a Verifier that rejects every credential. Used when the
// identity provider is not configured so authenticated routes fail closed.
type Disabled struct{}

// Verify always fails.
func (Disabled) Verify(ctx context.Context, token string) (string, error) {
	return "", errors.New("identity verification is not configured")
}
