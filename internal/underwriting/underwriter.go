// Package underwriting drives one application from query to decision.
package underwriting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-underwriter/internal/domain"
	"github.com/couchcryptid/storm-underwriter/internal/observability"
	"github.com/google/uuid"
)

// DecisionPublisher emits a decided application to downstream consumers.
type DecisionPublisher interface {
	Publish(ctx context.Context, app *domain.Application) error
}

// Underwriter invokes the Risk Tool once per application and applies the
// decision policy to its outcome. It holds no per-application state, so a
// single Underwriter may serve concurrent callers.
type Underwriter struct {
	assessor  domain.RiskAssessor
	publisher DecisionPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	newID     func() string
}

// New creates an Underwriter. Pass a nil publisher to disable decision events.
func New(assessor domain.RiskAssessor, publisher DecisionPublisher, logger *slog.Logger, metrics *observability.Metrics) *Underwriter {
	return &Underwriter{
		assessor:  assessor,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		newID:     uuid.NewString,
	}
}

// Process underwrites a single property location. Tool failures are not
// returned as errors: they degrade to a REFER decision on the application.
func (u *Underwriter) Process(ctx context.Context, query domain.LocationQuery) (*domain.Application, error) {
	start := time.Now()
	// Invalid queries are left as-is; the assessor rejects them and the
	// application is referred.
	if q, err := domain.NewLocationQuery(query.City, query.CountryCode); err == nil {
		query = q
	}
	app := domain.NewApplication(u.newID(), query)

	report, toolErr := u.assessor.AssessWeatherRisk(ctx, query)
	if err := app.RecordAssessment(report, toolErr); err != nil {
		return nil, fmt.Errorf("application %s: %w", app.ID, err)
	}

	decision, err := app.Decide()
	if err != nil {
		return nil, fmt.Errorf("application %s: %w", app.ID, err)
	}

	u.metrics.Decisions.WithLabelValues(string(decision.Outcome)).Inc()
	u.metrics.DecisionDuration.Observe(time.Since(start).Seconds())
	u.logger.Info("underwriting decision",
		"application_id", app.ID,
		"city", query.City,
		"country_code", query.CountryCode,
		"tool_failed", app.ToolError != nil,
		"outcome", decision.Outcome,
		"rationale", decision.Rationale,
	)

	u.publish(ctx, app)
	return app, nil
}

func (u *Underwriter) publish(ctx context.Context, app *domain.Application) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, app); err != nil {
		u.metrics.PublishErrors.Inc()
		u.logger.Error("publish decision failed", "application_id", app.ID, "error", err)
	}
}
