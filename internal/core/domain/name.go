package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultContext is the reserved context denoting the unnamed/default
// workspace context. Restoring into it never relabels an existing context.
const DefaultContext = "default"

// ContextSigil prefixes contextual names in their text form.
const ContextSigil = "@"

// Name is the structured form of a bookmark name.
//
// Contextual names render as "@<context> <tag>"; free-form names carry no
// context and render as the bare tag. The tag of a contextual name is
// either a user comment or an ordinal marker "<k>" (k >= 1) used for the
// per-context bookmark stack. The text format is the storage key and must
// stay stable across versions.
type Name struct {
	// Context identifies the originating workspace context.
	// Empty for free-form names.
	Context string `json:"context,omitempty"`

	// Tag is the user comment or ordinal marker.
	Tag string `json:"tag"`
}

// ParseName parses the text form of a bookmark name.
//
// A string starting with the context sigil splits on the first space into
// context and tag; the tag may be empty. Anything else is a free-form name.
func ParseName(s string) Name {
	if !strings.HasPrefix(s, ContextSigil) {
		return Name{Tag: s}
	}
	rest := s[len(ContextSigil):]
	ctx, tag, found := strings.Cut(rest, " ")
	if !found {
		return Name{Context: rest}
	}
	return Name{Context: ctx, Tag: strings.TrimSpace(tag)}
}

// OrdinalName composes the contextual name for stack slot k.
func OrdinalName(context string, k int) Name {
	return Name{Context: context, Tag: OrdinalTag(k)}
}

// OrdinalTag renders the ordinal marker for stack slot k.
func OrdinalTag(k int) string {
	return fmt.Sprintf("<%d>", k)
}

// String renders the stable text form of the name.
func (n Name) String() string {
	if n.Context == "" {
		return n.Tag
	}
	if n.Tag == "" {
		return ContextSigil + n.Context
	}
	return ContextSigil + n.Context + " " + n.Tag
}

// IsZero reports whether the name is empty.
func (n Name) IsZero() bool {
	return n.Context == "" && n.Tag == ""
}

// Ordinal returns the stack slot if the tag is an ordinal marker "<k>".
func (n Name) Ordinal() (int, bool) {
	if len(n.Tag) < 3 || n.Tag[0] != '<' || n.Tag[len(n.Tag)-1] != '>' {
		return 0, false
	}
	k, err := strconv.Atoi(n.Tag[1 : len(n.Tag)-1])
	if err != nil || k < 1 {
		return 0, false
	}
	return k, true
}

// SplitDisplay splits the text form into a (prefix, suffix) pair on the
// first space, for columnar display during interactive selection. Names
// without a space have an empty suffix.
func SplitDisplay(s string) (prefix, suffix string) {
	prefix, suffix, _ = strings.Cut(s, " ")
	return prefix, strings.TrimSpace(suffix)
}
