package lead

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Service validates and stores lead submissions.
type Service struct {
	repo     *Repository
	validate *validator.Validate
	limiter  *IPLimiter
	maxPerIP int64
	log      *zap.Logger
	now      func() time.Time
}

// NewService wires the store. The per-IP limit applies only when limiter is non-nil and
// maxPerIP is positive.
func NewService(repo *Repository, limiter *IPLimiter, maxPerIP int, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		validate: newValidator(),
		limiter:  limiter,
		maxPerIP: int64(maxPerIP),
		log:      log,
		now:      time.Now,
	}
}

// CreateContact validates f and inserts a ContactSubmission. Rejections are *ValidationError.
func (s *Service) CreateContact(ctx context.Context, f ContactForm, clientIP string) (*ContactSubmission, error) {
	f.normalize()
	if err := s.check(&f, f.Botcheck); err != nil {
		return nil, err
	}

	row := &ContactSubmission{
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Service:   f.Service,
		Message:   f.Message,
		IPAddress: clientIP,
	}
	err := s.withinLimit(ctx, clientIP, func(at time.Time) error {
		row.CreatedAt = at
		return s.repo.CreateContact(ctx, row)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("contact submission stored", zap.Uint("id", row.ID), zap.String("service", row.Service))
	return row, nil
}

// CreateMovingRequest validates f and inserts a MovingRequest. Rejections are *ValidationError.
func (s *Service) CreateMovingRequest(ctx context.Context, f MovingRequestForm, clientIP string) (*MovingRequest, error) {
	f.normalize()
	if err := s.check(&f, f.Botcheck); err != nil {
		return nil, err
	}
	date, err := time.Parse(time.DateOnly, f.Date)
	if err != nil {
		verr := newValidationError(ErrInvalid)
		verr.Fields["date"] = "Enter a valid date."
		return nil, verr
	}

	row := &MovingRequest{
		LocationFrom: f.LocationFrom,
		LocationTo:   f.LocationTo,
		Name:         f.Name,
		Email:        f.Email,
		Phone:        f.Phone,
		Date:         date,
		IPAddress:    clientIP,
	}
	err = s.withinLimit(ctx, clientIP, func(at time.Time) error {
		row.CreatedAt = at
		return s.repo.CreateMovingRequest(ctx, row)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("moving request stored", zap.Uint("id", row.ID))
	return row, nil
}

// check runs the honeypot before any field rule so a bot learns nothing about the form.
func (s *Service) check(form any, botcheck string) error {
	if botcheck != "" {
		verr := newValidationError(ErrBotDetected)
		verr.NonField = append(verr.NonField, msgBotDetected)
		s.log.Info("honeypot triggered")
		return verr
	}
	if err := s.validate.Struct(form); err != nil {
		return fieldErrors(err)
	}
	return nil
}

// withinLimit runs insert when the client is under its daily allowance. A counter that
// cannot be reached does not block the submission.
func (s *Service) withinLimit(ctx context.Context, ip string, insert func(at time.Time) error) error {
	at := s.now().UTC()
	if s.limiter == nil || s.maxPerIP <= 0 {
		return insert(at)
	}

	count, res, err := s.limiter.Increment(ctx, ip, at)
	if err != nil {
		if !errors.Is(err, ErrLimiterUnavailable) {
			s.log.Debug("ip limiter skipped", zap.String("ip", ip), zap.Error(err))
		} else {
			s.log.Warn("ip limiter unavailable, accepting submission", zap.Error(err))
		}
		return insert(at)
	}
	defer res.Release(context.WithoutCancel(ctx))

	if count > s.maxPerIP {
		verr := newValidationError(ErrRateLimited)
		verr.NonField = append(verr.NonField, msgRateLimited)
		s.log.Info("submission limit reached", zap.String("ip", ip), zap.Int64("count", count))
		return verr
	}
	if err := insert(at); err != nil {
		return err
	}
	res.Commit()
	return nil
}

// WarmLimiter loads the trailing day of submissions into the limiter.
func (s *Service) WarmLimiter(ctx context.Context) error {
	if s.limiter == nil || s.maxPerIP <= 0 {
		return nil
	}
	hits, err := s.repo.RecentHits(ctx, s.now().Add(-ipWindow))
	if err != nil {
		return err
	}
	return s.limiter.Rebuild(ctx, hits)
}
