package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

// CreateReview is the write-path input, as posted in the form body.
type CreateReview struct {
	ReviewBody string `validate:"required"`
	Location   string `validate:"required,location"`
}

type ReviewService struct {
	store    domain.ReviewStore
	clock    clockwork.Clock
	newID    func() string
	validate *validator.Validate
}

func NewReviewService(store domain.ReviewStore, clock clockwork.Clock) *ReviewService {
	return &ReviewService{
		store:    store,
		clock:    clock,
		newID:    uuid.NewString,
		validate: newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		return domain.IsValidLocation(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register location validator: %v", err))
	}
	return v
}

// CreateReview validates in, stamps it with a fresh id and the current
// second (UTC) and appends it. Nothing is stored when validation fails.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReview) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, err
	}
	if err := s.check(in); err != nil {
		observability.ObserveRejected(err)
		return domain.Review{}, err
	}

	r := domain.Review{
		ID:        s.newID(),
		Body:      in.ReviewBody,
		Location:  in.Location,
		Timestamp: s.clock.Now().UTC().Truncate(time.Second),
	}
	s.store.Append(r)
	observability.ObserveCreated(r.Location, s.store.Len())
	return r, nil
}

func (s *ReviewService) check(in CreateReview) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s", domain.ErrMissingField, fe.Field())
	case "location":
		return fmt.Errorf("%w: %q", domain.ErrInvalidLocation, fe.Value())
	default:
		return fmt.Errorf("invalid %s", fe.Field())
	}
}
