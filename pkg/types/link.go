package types

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/bub/pkg/errors"
)

// LinkType selects how a package file is exposed in the target.
type LinkType int

const (
	// AbsoluteSymlink points dest at the absolute source path
	AbsoluteSymlink LinkType = iota
	// RelativeSymlink points dest at the source path relative to dest's parent
	RelativeSymlink
	// HardLink shares the source inode; source must be a regular file
	HardLink
)

var linkTypeNames = map[LinkType]string{
	AbsoluteSymlink: "absolute",
	RelativeSymlink: "relative",
	HardLink:        "hard",
}

// LinkTypeNames lists the accepted spellings, in declaration order.
func LinkTypeNames() []string {
	return []string{"absolute", "relative", "hard"}
}

// ParseLinkType parses the textual form of a link type.
func ParseLinkType(s string) (LinkType, error) {
	for lt, name := range linkTypeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return lt, nil
		}
	}
	return AbsoluteSymlink, errors.Newf(errors.ErrInvalidInput,
		"invalid link type %q (expected one of: %s)", s, strings.Join(LinkTypeNames(), ", ")).
		WithDetail("value", s)
}

func (lt LinkType) String() string {
	if name, ok := linkTypeNames[lt]; ok {
		return name
	}
	return fmt.Sprintf("LinkType(%d)", int(lt))
}

// IsSymlink reports whether the link type produces a symbolic link.
func (lt LinkType) IsSymlink() bool {
	return lt == AbsoluteSymlink || lt == RelativeSymlink
}

// MarshalText implements encoding.TextMarshaler.
func (lt LinkType) MarshalText() ([]byte, error) {
	return []byte(lt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (lt *LinkType) UnmarshalText(text []byte) error {
	parsed, err := ParseLinkType(string(text))
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}

// Set implements pflag.Value.
func (lt *LinkType) Set(s string) error {
	return lt.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (lt *LinkType) Type() string {
	return "link-type"
}

// PlannedLink is a single link the executor will create.
type PlannedLink struct {
	Src  string   `json:"src"`
	Dest string   `json:"dest"`
	Type LinkType `json:"type"`
}

// RelativeSrc returns Src expressed relative to the directory holding Dest,
// which is what a relative symlink at Dest must contain.
func (l PlannedLink) RelativeSrc() (string, error) {
	return filepath.Rel(filepath.Dir(l.Dest), l.Src)
}

// LinkTarget returns the string written into the symlink at Dest.
func (l PlannedLink) LinkTarget() (string, error) {
	if l.Type == RelativeSymlink {
		return l.RelativeSrc()
	}
	return l.Src, nil
}

func (l PlannedLink) String() string {
	return fmt.Sprintf("%s -> %s (%s)", l.Dest, l.Src, l.Type)
}
