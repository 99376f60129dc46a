// Package domain defines the document rendering port.
package domain

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
)

// ErrGeneratorUnavailable is returned while the rendering service is
// considered down.
var ErrGeneratorUnavailable = errors.New("document generator unavailable")

// Request asks for one document rendered from a template.
type Request struct {
	CaseID     string
	TemplateID string
	Filename   string
	Payload    any
}

// Generator renders a payload into a stored document.
type Generator interface {
	Generate(ctx context.Context, req Request) (caserecord.DocumentLink, error)
}
