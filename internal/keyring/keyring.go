package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/dayring/internal/constants"
)

var (
	// ErrNotFound is returned when no token is found in the keyring
	ErrNotFound = errors.New("api token not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetToken retrieves the API bearer token from the OS keyring.
// Returns ErrNotFound if no token is stored.
func GetToken() (string, error) {
	token, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return token, nil
}

// SetToken stores the API bearer token in the OS keyring.
func SetToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the API bearer token from the OS keyring.
func DeleteToken() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring answered, just with no entry.
	return err == nil || err == keyring.ErrNotFound
}

// TokenSource adapts the keyring to the API client's token interface.
// Clearing tolerates an already-missing entry so a 401 handler can call
// it unconditionally.
type TokenSource struct{}

func (TokenSource) Token() (string, error) {
	token, err := GetToken()
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return token, err
}

func (TokenSource) Clear() error {
	err := DeleteToken()
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
