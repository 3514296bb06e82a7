package launch

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// MaxUsernameLength is the longest name the game accepts
const MaxUsernameLength = 16

var (
	// ErrUsernameTooLong is returned for names over MaxUsernameLength characters
	ErrUsernameTooLong = errors.New("username is too long")
	// ErrUsernameInvalid is returned for names with characters outside [A-Za-z0-9_]
	ErrUsernameInvalid = errors.New("username contains invalid characters")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var (
	adjectives = []string{"Brave", "Quick", "Silent", "Lucky", "Clever", "Happy", "Mighty", "Swift", "Red", "Dark", "Iron", "Wild"}
	nouns      = []string{"Fox", "Wolf", "Miner", "Creeper", "Golem", "Eagle", "Bear", "Slime", "Knight", "Pig", "Bat", "Owl"}
)

// GenerateUsername returns a random offline player name such as "SwiftFox42"
func GenerateUsername() string {
	name := adjectives[rand.Intn(len(adjectives))] + nouns[rand.Intn(len(nouns))]
	return fmt.Sprintf("%s%d", name, rand.Intn(1000))
}

// ValidateUsername checks a user-entered name. A blank name is valid and is
// replaced with a generated one at launch.
func ValidateUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if len(name) > MaxUsernameLength {
		return fmt.Errorf("%w: %d characters, at most %d allowed", ErrUsernameTooLong, len(name), MaxUsernameLength)
	}
	if !usernamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrUsernameInvalid, name)
	}
	return nil
}
