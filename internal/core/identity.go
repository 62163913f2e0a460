package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const (
	maxScopeLength = 39
	maxNameLength  = 100
)

// Scope is a validated package namespace prefix (e.g. an organization
// name). Scopes are normalized to lowercase on parse, so equality and
// map-key behavior are case-insensitive with respect to the input.
type Scope string

// ParseScope validates and normalizes a scope string.
//
// The grammar is closed: an alphanumeric first character, then
// alphanumerics or single interior hyphens, at most 39 characters.
// Brackets and every other punctuation character are illegal, which
// keeps reserved container keys like "[default]" out of scope space.
func ParseScope(raw string) (Scope, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("scope must not be empty")
	}
	if len(trimmed) > maxScopeLength {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("scope %q exceeds %d characters", trimmed, maxScopeLength))
	}
	if !validIdentifier(trimmed, scopeExtraRune) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid scope %q", trimmed))
	}
	return Scope(strings.ToLower(trimmed)), nil
}

func (s Scope) String() string {
	return string(s)
}

// PackageIdentity is an opaque, validated package identifier. Identities
// in the registry family have the form "<scope>.<name>"; other sourcing
// mechanisms produce identities outside that family.
type PackageIdentity string

// ParseIdentity validates a raw package identifier. Identities are
// normalized to lowercase; the registry-family shape is not required
// here, only non-emptiness and absence of whitespace.
func ParseIdentity(raw string) (PackageIdentity, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package identity must not be empty")
	}
	if strings.ContainsFunc(trimmed, isSpaceRune) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package identity %q must not contain whitespace", trimmed))
	}
	return PackageIdentity(strings.ToLower(trimmed)), nil
}

func (p PackageIdentity) String() string {
	return string(p)
}

// RegistryParts splits a registry-family identity into its scope and
// name. The split is at the first dot; both halves must satisfy their
// grammars. ok is false for any identity outside the registry family.
func (p PackageIdentity) RegistryParts() (scope Scope, name string, ok bool) {
	rawScope, rawName, found := strings.Cut(string(p), ".")
	if !found {
		return "", "", false
	}
	parsed, err := ParseScope(rawScope)
	if err != nil {
		return "", "", false
	}
	if len(rawName) == 0 || len(rawName) > maxNameLength {
		return "", "", false
	}
	if !validIdentifier(rawName, nameExtraRune) {
		return "", "", false
	}
	return parsed, rawName, true
}

// IsRegistryIdentity reports whether the identity belongs to the
// registry family and is therefore legal as a package-override key.
func (p PackageIdentity) IsRegistryIdentity() bool {
	_, _, ok := p.RegistryParts()
	return ok
}

// Scope returns the scope half of a registry-family identity.
func (p PackageIdentity) Scope() (Scope, bool) {
	scope, _, ok := p.RegistryParts()
	return scope, ok
}

// validIdentifier checks the shared identifier shape: alphanumeric
// first and last characters, alphanumerics or single interior
// separator runes in between.
func validIdentifier(value string, isSeparator func(byte) bool) bool {
	previousSeparator := false
	for idx := 0; idx < len(value); idx++ {
		ch := value[idx]
		if isAlphanumeric(ch) {
			previousSeparator = false
			continue
		}
		if !isSeparator(ch) {
			return false
		}
		if idx == 0 || idx == len(value)-1 || previousSeparator {
			return false
		}
		previousSeparator = true
	}
	return true
}

func scopeExtraRune(ch byte) bool {
	return ch == '-'
}

func nameExtraRune(ch byte) bool {
	return ch == '-' || ch == '_'
}

func isAlphanumeric(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
