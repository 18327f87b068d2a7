package service

import (
	"context"
	"fmt"
	"time"

	"github.com/odesa-navmannia/walkbot/internal/config"
	"github.com/odesa-navmannia/walkbot/internal/domain"
)

// LimitsStore is the durable backend for daily quota records.
type LimitsStore interface {
	Get(ctx context.Context, userID int64, day string) (*domain.DailyLimit, error)
	Upsert(ctx context.Context, l *domain.DailyLimit) error
}

// QuotaService tracks the two per-day usage axes (full walks and quick
// recommendations). A record for a new day is created lazily on first
// access with usage zeroed and ceilings back at the base tier; there is no
// scheduled reset job.
type QuotaService struct {
	store LimitsStore
	loc   *time.Location
	now   func() time.Time
}

func NewQuotaService(store LimitsStore) *QuotaService {
	loc, err := time.LoadLocation(config.QuotaTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &QuotaService{store: store, loc: loc, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *QuotaService) WithClock(now func() time.Time) *QuotaService {
	s.now = now
	return s
}

func (s *QuotaService) today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

// load returns today's record, synthesizing a fresh base-tier one when the
// day has rolled over or the user is new.
func (s *QuotaService) load(ctx context.Context, userID int64) (*domain.DailyLimit, error) {
	day := s.today()
	l, err := s.store.Get(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("load daily limit: %w", err)
	}
	if l == nil {
		l = &domain.DailyLimit{
			UserID:      userID,
			Day:         day,
			WalkCeiling: config.WalkQuotaBase,
			RecCeiling:  config.RecQuotaBase,
		}
	}
	return l, nil
}

// CanProceed decides whether an action of the given kind may run today.
// The ceiling is enforced here, at the decision point only.
func (s *QuotaService) CanProceed(ctx context.Context, userID int64, kind domain.QuotaKind) (domain.QuotaDecision, *domain.DailyLimit, error) {
	l, err := s.load(ctx, userID)
	if err != nil {
		return domain.QuotaAllow, nil, err
	}
	if l.Used(kind) < l.Ceiling(kind) {
		return domain.QuotaAllow, l, nil
	}
	if l.Ceiling(kind) < hardCap(kind) {
		return domain.QuotaPaywall, l, nil
	}
	return domain.QuotaHardStop, l, nil
}

// RecordUse burns one unit of the given kind.
func (s *QuotaService) RecordUse(ctx context.Context, userID int64, kind domain.QuotaKind) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if kind == domain.QuotaWalk {
		l.WalksUsed++
	} else {
		l.RecsUsed++
	}
	return s.store.Upsert(ctx, l)
}

// ExtendCeiling raises today's ceiling for the given kind by the fixed
// step, clamped at the hard cap. At the cap this is a no-op.
func (s *QuotaService) ExtendCeiling(ctx context.Context, userID int64, kind domain.QuotaKind) error {
	l, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	top := hardCap(kind)
	if kind == domain.QuotaWalk {
		l.WalkCeiling = min(l.WalkCeiling+config.QuotaStep, top)
	} else {
		l.RecCeiling = min(l.RecCeiling+config.QuotaStep, top)
	}
	return s.store.Upsert(ctx, l)
}

// Usage returns today's record for display.
func (s *QuotaService) Usage(ctx context.Context, userID int64) (*domain.DailyLimit, error) {
	return s.load(ctx, userID)
}

func hardCap(kind domain.QuotaKind) int {
	if kind == domain.QuotaWalk {
		return config.WalkQuotaMax
	}
	return config.RecQuotaMax
}
