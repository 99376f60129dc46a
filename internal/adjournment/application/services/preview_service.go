package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/tribunal/internal/adjournment/domain"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	docdomain "github.com/felixgeelhaar/tribunal/internal/documents/domain"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

// NoticeConfig selects templates and the issue-date behaviour.
type NoticeConfig struct {
	ShowIssueDate   bool
	DraftTemplateID string
	FinalTemplateID string
}

// Notice is a rendered adjournment notice.
type Notice struct {
	Body     domain.NoticeBody
	Document caserecord.CaseDocument
}

// PreviewService assembles the notice payload and has it rendered.
type PreviewService struct {
	generator docdomain.Generator
	config    NoticeConfig
	logger    *slog.Logger
	metrics   observability.Metrics
}

func NewPreviewService(generator docdomain.Generator, config NoticeConfig, logger *slog.Logger, metrics observability.Metrics) *PreviewService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &PreviewService{generator: generator, config: config, logger: logger, metrics: metrics}
}

// Render builds the draft or final notice for details. The commit gate runs
// before the generator is called.
func (s *PreviewService) Render(ctx context.Context, details caserecord.CaseDetails, resolved Resolved, today caserecord.Date, draft bool) (Notice, error) {
	res := resolved.Resolution
	body := domain.BuildNotice(domain.NoticeInput{
		Case:          details,
		Today:         today,
		Draft:         draft,
		ShowIssueDate: s.config.ShowIssueDate,
		Date:          res.Date,
		Channel:       res.Channel,
		Venue:         res.Venue,
		Previous:      res.Previous,
		PanelNames:    resolved.PanelNames,
		Interpreter:   resolved.Interpreter,
	})
	if err := domain.CheckGate(body); err != nil {
		return Notice{}, err
	}

	template, docType, kind := s.config.FinalTemplateID, caserecord.DocumentTypeAdjournmentNotice, "final"
	if draft {
		template, docType, kind = s.config.DraftTemplateID, caserecord.DocumentTypeDraftAdjournmentNotice, "draft"
	}
	filename := domain.NoticeFilename(draft, today)

	link, err := s.generator.Generate(ctx, docdomain.Request{
		CaseID:     details.ID,
		TemplateID: template,
		Filename:   filename,
		Payload:    body,
	})
	if err != nil {
		return Notice{}, fmt.Errorf("render %s adjournment notice: %w", kind, err)
	}

	s.metrics.Counter(observability.MetricNoticesGenerated, 1, observability.T("kind", kind))
	s.logger.InfoContext(ctx, "adjournment notice rendered", "kind", kind, "filename", filename)

	return Notice{
		Body: body,
		Document: caserecord.CaseDocument{
			Type:      docType,
			FileName:  filename,
			DateAdded: today.Ptr(),
			Link:      link,
		},
	}, nil
}
