package pkg

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateGameID returns a random identifier for a new game.
func GenerateGameID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}

	return id.String(), nil
}

// IsValidGameID reports whether id looks like an identifier produced by GenerateGameID.
func IsValidGameID(id string) bool {
	return uuid.Validate(id) == nil
}
