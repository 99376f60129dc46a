package caserecord

import (
	"strings"

	"github.com/google/uuid"
)

// YesNo is the platform's boolean. The empty value means "not answered".
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

func (y YesNo) IsYes() bool { return strings.EqualFold(string(y), string(Yes)) }
func (y YesNo) IsNo() bool  { return strings.EqualFold(string(y), string(No)) }

// YesNoOf converts a bool.
func YesNoOf(b bool) YesNo {
	if b {
		return Yes
	}
	return No
}

// CollectionItem wraps a value in the platform's list element shape.
type CollectionItem[T any] struct {
	ID    string `json:"id,omitempty"`
	Value T      `json:"value"`
}

// NewItem wraps v with a fresh id.
func NewItem[T any](v T) CollectionItem[T] {
	return CollectionItem[T]{ID: uuid.NewString(), Value: v}
}

// Values unwraps a collection.
func Values[T any](items []CollectionItem[T]) []T {
	if len(items) == 0 {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, item.Value)
	}
	return out
}

// NonBlank unwraps a string collection, dropping blank entries.
func NonBlank(items []CollectionItem[string]) []string {
	var out []string
	for _, item := range items {
		if v := strings.TrimSpace(item.Value); v != "" {
			out = append(out, v)
		}
	}
	return out
}
