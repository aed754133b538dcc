package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/timetabled/timetabled/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no token is found in the keyring
	ErrNotFound = errors.New("access token not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetToken retrieves the Mapbox access token. The OS keyring is consulted
// first, then the environment variable fallback.
func GetToken() (string, error) {
	token, err := keyring.Get(constants.AppName, constants.DefaultKeyringKey)
	if err == nil {
		return token, nil
	}
	if env := os.Getenv(constants.TokenEnvVar); env != "" {
		return env, nil
	}
	if err == keyring.ErrNotFound {
		return "", ErrNotFound
	}
	return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
}

// SetToken stores the Mapbox access token in the OS keyring.
func SetToken(token string) error {
	if token == "" {
		return errors.New("access token cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringKey, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the Mapbox access token from the OS keyring.
func DeleteToken() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringKey)
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
	// ErrNotFound means the keyring answered, which is all we need to know
	return err == nil || err == keyring.ErrNotFound
}
