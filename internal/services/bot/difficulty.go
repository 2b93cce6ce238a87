package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// ErrUnknownDifficulty is returned when a difficulty name cannot be parsed
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty selects how the computer opponent picks its shots.
type Difficulty string

const (
	// DifficultyEasy shoots uniformly at random.
	DifficultyEasy Difficulty = "easy"

	// DifficultyHard hunts wounded ships before shooting at random.
	DifficultyHard Difficulty = "hard"
)

// DefaultDifficulty is used when a match is created without one.
const DefaultDifficulty = DifficultyHard

// ParseDifficulty parses a difficulty name, mapping the empty string to the
// default.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(s)) {
	case "":
		return DefaultDifficulty, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Valid reports whether the difficulty is a known one.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyHard
}

// Targeting returns the engine targeting strategy this difficulty plays with.
func (d Difficulty) Targeting() model.TargetingStrategy {
	if d == DifficultyEasy {
		return model.TargetingRandom
	}
	return model.TargetingHunt
}
