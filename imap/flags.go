package imap

import (
	"strings"

	"github.com/bradenaw/juniper/xslices"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	FlagSeen     = `\Seen`
	FlagAnswered = `\Answered`
	FlagFlagged  = `\Flagged`
	FlagDeleted  = `\Deleted`
	FlagDraft    = `\Draft`
	FlagRecent   = `\Recent` // Read-only!.
)

// FlagSet represents a set of IMAP tokens. It holds message flags as well as Gmail labels.
// Tokens are case-insensitive and no duplicates are allowed; the case of the first insertion is preserved.
type FlagSet map[string]string

// NewFlagSet creates a flag set containing the specified tokens.
func NewFlagSet(flags ...string) FlagSet {
	fs := make(FlagSet, len(flags))

	for _, flag := range flags {
		fs.insert(flag)
	}

	return fs
}

// Len returns the number of tokens in the set.
func (fs FlagSet) Len() int {
	return len(fs)
}

// ToSlice returns the tokens in the set as a sorted string slice.
// The returned slice is a copy; modifying it does not modify the set.
func (fs FlagSet) ToSlice() []string {
	flags := maps.Values(fs)

	slices.Sort(flags)

	return flags
}

// Contains returns true if and only if the token is in the set.
func (fs FlagSet) Contains(flag string) bool {
	_, ok := fs[strings.ToLower(flag)]
	return ok
}

// ContainsAny returns true if and only if any of the tokens are in the set.
func (fs FlagSet) ContainsAny(flags ...string) bool {
	return xslices.Any(flags, fs.Contains)
}

// ContainsAll returns true if and only if all of the tokens are in the set.
func (fs FlagSet) ContainsAll(flags ...string) bool {
	return xslices.All(flags, fs.Contains)
}

// Equals returns true if both sets hold the same tokens, ignoring case.
func (fs FlagSet) Equals(other FlagSet) bool {
	if fs.Len() != other.Len() {
		return false
	}

	for key := range fs {
		if _, ok := other[key]; !ok {
			return false
		}
	}

	return true
}

// Add returns a copy of the set with the given tokens added.
func (fs FlagSet) Add(flags ...string) FlagSet {
	return fs.clone().insert(flags...)
}

// Remove returns a copy of the set with the given tokens removed.
func (fs FlagSet) Remove(flags ...string) FlagSet {
	clone := fs.clone()

	for _, flag := range flags {
		delete(clone, strings.ToLower(flag))
	}

	return clone
}

// Set returns a copy of the set that either contains or does not contain the given token.
func (fs FlagSet) Set(flag string, on bool) FlagSet {
	if on {
		return fs.Add(flag)
	}

	return fs.Remove(flag)
}

func (fs FlagSet) insert(flags ...string) FlagSet {
	for _, flag := range flags {
		key := strings.ToLower(flag)

		if _, ok := fs[key]; ok {
			continue
		}

		fs[key] = flag
	}

	return fs
}

func (fs FlagSet) clone() FlagSet {
	clone := make(FlagSet, len(fs))

	maps.Copy(clone, fs)

	return clone
}
