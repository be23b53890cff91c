// Package identity defines the identity record and the rules that turn a
// CLI-supplied reference (stored key or raw delimited literal) into one.
package identity

import (
	"fmt"
	"strings"
)

// RawDelimiter separates the fields of a raw identity literal.
const RawDelimiter = ";"

// Identity is a (key, name, email) triple used to attribute a commit.
// ID is assigned by the store; an identity built from a raw literal has
// ID 0 and is never persisted.
type Identity struct {
	ID    int64
	Key   string
	Name  string
	Email string
}

func (id Identity) String() string {
	return fmt.Sprintf("%s <%s>", id.Name, id.Email)
}

// ParseError reports a raw literal with the wrong number of fields.
type ParseError struct {
	FieldCount int
	Tokens     []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expect 2 fields (name;email) or 3 fields (key;name;email); found %d fields: %q", e.FieldCount, e.Tokens)
}

// NotFoundError reports a key with no matching stored identity.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find user %q in the known users database", e.Key)
}

// ParseRaw parses a raw identity literal. Two fields are name;email with the
// name doubling as the key; three fields are key;name;email. Any other field
// count is a *ParseError. The result is ephemeral (ID 0).
func ParseRaw(text string) (Identity, error) {
	tokens := strings.Split(text, RawDelimiter)
	switch len(tokens) {
	case 2:
		return Identity{Key: tokens[0], Name: tokens[0], Email: tokens[1]}, nil
	case 3:
		return Identity{Key: tokens[0], Name: tokens[1], Email: tokens[2]}, nil
	default:
		return Identity{}, &ParseError{FieldCount: len(tokens), Tokens: tokens}
	}
}
