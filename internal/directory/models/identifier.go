package models

import (
	"strings"

	dErrors "esbresolver/pkg/domain-errors"
)

// Identifier names a directory record either by its directory-assigned key
// or by its human readable name.
type Identifier struct {
	Value string
	IsKey bool
}

// NewKey returns an identifier that looks a record up by key.
func NewKey(value string) (Identifier, error) {
	return newIdentifier(value, true)
}

// NewName returns an identifier that looks a record up by name.
func NewName(value string) (Identifier, error) {
	return newIdentifier(value, false)
}

func newIdentifier(value string, isKey bool) (Identifier, error) {
	id := Identifier{Value: value, IsKey: isKey}
	if err := id.Validate(); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// Validate rejects identifiers with an empty value.
func (i Identifier) Validate() error {
	if strings.TrimSpace(i.Value) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "identifier value is required")
	}
	return nil
}

func (i Identifier) String() string {
	if i.IsKey {
		return "key:" + i.Value
	}
	return "name:" + i.Value
}
