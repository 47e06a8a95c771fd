package auth

import (
	"context"

	"github.com/mmynk/billsplitter/internal/models"
)

// Authenticator verifies who a user is. PasswordAuthenticator is the only
// implementation; AuthService depends on this interface alone.
type Authenticator interface {
	// Register creates a new user account under a unique username.
	// The credential format depends on the implementation.
	Register(ctx context.Context, username, email, name, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
