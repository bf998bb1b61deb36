package store

import (
	"fmt"

	"github.com/google/uuid"
)

const idMaxAttempts = 20

// GenerateKeyID returns a new random UUID-v4 record id.
// It retries on collisions using the provided exists function.
func GenerateKeyID(exists func(string) (bool, error)) (string, error) {
	for i := 0; i < idMaxAttempts; i++ {
		u, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		id := u.String()
		if exists == nil {
			return id, nil
		}
		ok, err := exists(id)
		if err != nil {
			return "", err
		}
		if !ok {
			return id, nil
		}
	}

	return "", fmt.Errorf("unable to generate unique id")
}
