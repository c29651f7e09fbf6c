package service

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"strings"
)

type PlanInput struct {
	Name     string
	Price    float64
	Duration domain.PlanDuration
	Features []string
}

type PlanService interface {
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
	GetPlan(ctx context.Context, id string) (*domain.SubscriptionPlan, error)
	CreatePlan(ctx context.Context, in PlanInput) (*domain.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, id string, in PlanInput) (*domain.SubscriptionPlan, error)
	DeletePlan(ctx context.Context, id string) error
}

type planService struct {
	plans repository.PlanRepository
}

func NewPlanService(plans repository.PlanRepository) PlanService {
	return &planService{plans: plans}
}

func (s *planService) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []domain.SubscriptionPlan{}
	}
	return plans, nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*domain.SubscriptionPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrPlanNotFound)
	}
	return plan, nil
}

func (s *planService) CreatePlan(ctx context.Context, in PlanInput) (*domain.SubscriptionPlan, error) {
	in, err := normalizePlan(in)
	if err != nil {
		return nil, err
	}
	plan := &domain.SubscriptionPlan{
		Name:     in.Name,
		Price:    in.Price,
		Duration: in.Duration,
		Features: in.Features,
	}
	if _, err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// UpdatePlan edits a plan in place. Members reference plans by name, so a
// rename leaves their subscriptionPlan pointing at the old name.
func (s *planService) UpdatePlan(ctx context.Context, id string, in PlanInput) (*domain.SubscriptionPlan, error) {
	in, err := normalizePlan(in)
	if err != nil {
		return nil, err
	}
	plan, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.Name = in.Name
	plan.Price = in.Price
	plan.Duration = in.Duration
	plan.Features = in.Features
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, mapRepoErr(err, ErrPlanNotFound)
	}
	return plan, nil
}

func (s *planService) DeletePlan(ctx context.Context, id string) error {
	return mapRepoErr(s.plans.Delete(ctx, id), ErrPlanNotFound)
}

func normalizePlan(in PlanInput) (PlanInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, validationError("plan name is required")
	}
	if in.Price < 0 {
		return in, validationError("price cannot be negative")
	}
	if !in.Duration.Valid() {
		return in, validationError("duration must be monthly or yearly, got %q", in.Duration)
	}
	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	in.Features = features
	return in, nil
}
