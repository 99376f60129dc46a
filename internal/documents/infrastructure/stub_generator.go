package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	"github.com/felixgeelhaar/tribunal/internal/documents/domain"
)

// StubGenerator fabricates document links without rendering anything. Local
// mode uses it when DOCGEN_URL is unset.
type StubGenerator struct {
	BaseURL string

	mu       sync.Mutex
	requests []domain.Request
}

var _ domain.Generator = (*StubGenerator)(nil)

func NewStubGenerator(baseURL string) *StubGenerator {
	if baseURL == "" {
		baseURL = "http://localhost/documents"
	}
	return &StubGenerator{BaseURL: baseURL}
}

func (g *StubGenerator) Generate(_ context.Context, req domain.Request) (caserecord.DocumentLink, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()

	doc := fmt.Sprintf("%s/%s", g.BaseURL, uuid.NewString())
	return caserecord.DocumentLink{
		URL:       doc,
		BinaryURL: doc + "/binary",
		Filename:  req.Filename,
	}, nil
}

// Requests returns the payloads rendered so far.
func (g *StubGenerator) Requests() []domain.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Request(nil), g.requests...)
}
