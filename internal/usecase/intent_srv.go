package usecase

import (
	"context"
	"fmt"
	"time"

	"servicehub/internal/data/entity"
	"servicehub/internal/data/repository"
	"servicehub/internal/dto/request"
	"servicehub/internal/dto/response"
	"servicehub/pkg/utils"

	"go.uber.org/zap"
)

// IntentTTL bounds how long a captured selection waits for the user to
// finish logging in. Long enough for a registration flow, short enough
// that an abandoned selection does not linger.
const IntentTTL = 30 * time.Minute

// IntentService carries a user's selection across a login interruption.
// Intents are keyed by an opaque reference the browser holds in a
// cookie, NOT by the session: the selection is captured before the user
// authenticates and must still be there after login mints a new session.
// It only re-enters checkout with a pre-filled selection; it never
// creates a payment order or a booking itself.
type IntentService interface {
	Capture(ctx context.Context, intentRef string, req *request.CaptureIntentRequest) error
	ConsumeIfPresent(ctx context.Context, intentRef string) (*response.OrderIntentResponse, error)
}

type intentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewIntentService(repo *repository.Repository, log *zap.Logger) IntentService {
	return &intentService{
		repo: repo,
		log:  log.With(zap.String("service", "intent")),
	}
}

// Capture stores the selection under the given reference, overwriting
// any prior intent held there.
func (s *intentService) Capture(ctx context.Context, intentRef string, req *request.CaptureIntentRequest) error {
	if intentRef == "" {
		return fmt.Errorf("%w: missing intent reference", ErrInvalidInput)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Capture intent validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	intent := &entity.OrderIntent{
		ServiceID: req.ServiceID,
		PackageID: req.PackageID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Intent.Store(ctx, intentRef, intent, IntentTTL); err != nil {
		return fmt.Errorf("capture intent: %w", err)
	}

	s.log.Info("Order intent captured",
		zap.String("service_id", req.ServiceID),
		zap.String("package_id", req.PackageID))

	return nil
}

// ConsumeIfPresent atomically reads and deletes the stored intent.
// Returns nil when nothing is stored; a second call after consumption
// also returns nil.
func (s *intentService) ConsumeIfPresent(ctx context.Context, intentRef string) (*response.OrderIntentResponse, error) {
	if intentRef == "" {
		return nil, nil
	}

	intent, err := s.repo.Intent.Consume(ctx, intentRef)
	if err != nil {
		return nil, fmt.Errorf("consume intent: %w", err)
	}
	if intent == nil {
		return nil, nil
	}

	s.log.Info("Order intent consumed",
		zap.String("service_id", intent.ServiceID),
		zap.String("package_id", intent.PackageID))

	return &response.OrderIntentResponse{
		ServiceID: intent.ServiceID,
		PackageID: intent.PackageID,
	}, nil
}
