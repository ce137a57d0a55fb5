package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"carbonlens/reporting-backend/internal/analytics"
	"carbonlens/reporting-backend/internal/observability"
	"carbonlens/reporting-backend/internal/render"
)

// Artifact is the rendered report, ready for delivery. It is never retained
// after the response completes.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service runs the certified report pipeline: aggregate, certify, template,
// render. Each invocation is fully independent; the service holds no
// per-request state.
type Service struct {
	engine render.Engine
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates the report service around a render engine.
func NewService(engine render.Engine, logger *zap.Logger) *Service {
	return &Service{
		engine: engine,
		logger: logger,
		now:    time.Now,
	}
}

// GenerateCertified produces the certified PDF for the given input. The
// pipeline is all-or-nothing: no partial artifact is ever returned.
func (s *Service) GenerateCertified(ctx context.Context, in *analytics.ReportInput) (*Artifact, error) {
	snapshot, err := analytics.Aggregate(in)
	if err != nil {
		observability.ReportCount.WithLabelValues("validation_error").Inc()
		return nil, err
	}

	cert := NewCertification(s.now().UTC())

	doc, err := RenderDocument(snapshot, cert)
	if err != nil {
		observability.ReportCount.WithLabelValues("template_error").Inc()
		return nil, fmt.Errorf("render certified document: %w", err)
	}

	observability.RendersInFlight.Inc()
	start := time.Now()
	pdf, err := s.engine.Render(ctx, doc)
	observability.RendersInFlight.Dec()
	if err != nil {
		observability.ReportCount.WithLabelValues("render_error").Inc()
		return nil, fmt.Errorf("render pdf for campaign %q: %w", snapshot.Campaign.ID, err)
	}
	observability.RenderDuration.Observe(time.Since(start).Seconds())
	observability.ReportCount.WithLabelValues("ok").Inc()

	s.logger.Info("Certified report generated",
		zap.String("campaign_id", snapshot.Campaign.ID),
		zap.String("certification_id", cert.ID),
		zap.Int("pdf_bytes", len(pdf)))

	return &Artifact{
		Filename:    fmt.Sprintf("%s_%s.pdf", sanitizeFilename(snapshot.Campaign.Name), cert.GeneratedAt.Format("2006-01-02")),
		ContentType: "application/pdf",
		Data:        pdf,
	}, nil
}

// sanitizeFilename reduces a campaign name to [A-Za-z0-9_]. Spaces become
// underscores before stripping so multi-word names stay readable; an empty
// result falls back to "report".
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "report"
	}
	return string(out)
}
