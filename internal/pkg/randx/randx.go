/*
Package randx generates identifiers and random seeds.

Entity IDs are UUID v4; avatar seeds are short Base62 strings drawn from
crypto/rand, used to build default avatar URLs for new accounts.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	// base62Chars is the Base62 alphabet (0-9, A-Z, a-z).
	base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// AvatarSeedLength is the length of a generated avatar seed.
	AvatarSeedLength = 8
)

// ID generates a UUID v4 string for users, chats and messages.
func ID() string {
	return uuid.New().String()
}

// AvatarSeed generates a random Base62 seed for a default avatar URL.
func AvatarSeed() (string, error) {
	result := make([]byte, AvatarSeedLength)

	for i := 0; i < AvatarSeedLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(base62Chars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random avatar seed: %w", err)
		}
		result[i] = base62Chars[num.Int64()]
	}

	return string(result), nil
}

// DefaultAvatarURL builds the avatar URL assigned to accounts that never set
// one. The seed keeps distinct accounts visually distinct.
func DefaultAvatarURL(seed string) string {
	return "https://api.dicebear.com/7.x/identicon/svg?seed=" + seed
}
