package types

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/bub/pkg/errors"
)

// ConflictStrategy decides what happens when a link destination already
// exists.
type ConflictStrategy int

const (
	// ThrowError aborts the run. It is the zero value.
	ThrowError ConflictStrategy = iota
	// Adopt copies the existing file into the package, then links it
	Adopt
	// Ignore leaves the existing file alone and skips the link
	Ignore
	// Move renames the existing file to <name>.bak, then links
	Move
	// Overwrite deletes the existing file, then links
	Overwrite
)

var strategyNames = map[ConflictStrategy]string{
	Adopt:      "adopt",
	Ignore:     "ignore",
	Move:       "move",
	Overwrite:  "overwrite",
	ThrowError: "error",
}

// ConflictStrategyNames lists the accepted spellings.
func ConflictStrategyNames() []string {
	return []string{"adopt", "ignore", "move", "overwrite", "error"}
}

// ParseConflictStrategy parses the textual form of a conflict strategy.
func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	for cs, name := range strategyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return cs, nil
		}
	}
	return ThrowError, errors.Newf(errors.ErrInvalidInput,
		"invalid conflict strategy %q (expected one of: %s)", s, strings.Join(ConflictStrategyNames(), ", ")).
		WithDetail("value", s)
}

func (cs ConflictStrategy) String() string {
	if name, ok := strategyNames[cs]; ok {
		return name
	}
	return fmt.Sprintf("ConflictStrategy(%d)", int(cs))
}

// Describe completes the sentence "If a target file already exists, it will ...".
func (cs ConflictStrategy) Describe() string {
	switch cs {
	case Adopt:
		return "be adopted"
	case Ignore:
		return "be ignored"
	case Move:
		return "be moved to <target_file>.bak"
	case Overwrite:
		return "be overwritten"
	default:
		return "throw an error"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (cs ConflictStrategy) MarshalText() ([]byte, error) {
	return []byte(cs.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (cs *ConflictStrategy) UnmarshalText(text []byte) error {
	parsed, err := ParseConflictStrategy(string(text))
	if err != nil {
		return err
	}
	*cs = parsed
	return nil
}

// Set implements pflag.Value.
func (cs *ConflictStrategy) Set(s string) error {
	return cs.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (cs *ConflictStrategy) Type() string {
	return "strategy"
}
