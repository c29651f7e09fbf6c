package service

import (
	"alcyxob/gym-admin/internal/dashboard"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	Overview(ctx context.Context) (*dashboard.Overview, error)
}

type dashboardService struct {
	store *repository.Store
	opts  dashboard.Options
	now   func() time.Time
}

func NewDashboardService(store *repository.Store, opts dashboard.Options) DashboardService {
	return &dashboardService{store: store, opts: opts, now: time.Now}
}

// Overview snapshots the four collections in parallel and aggregates them.
// The snapshot is not transactional; each list is internally consistent.
func (s *dashboardService) Overview(ctx context.Context) (*dashboard.Overview, error) {
	var snap dashboard.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Users, err = s.store.Users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Plans, err = s.store.Plans.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Content, err = s.store.Content.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Meetings, err = s.store.Meetings.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := dashboard.Build(snap, s.now(), s.opts)
	return &overview, nil
}
