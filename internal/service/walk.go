package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/odesa-navmannia/walkbot/internal/catalog"
	"github.com/odesa-navmannia/walkbot/internal/config"
	"github.com/odesa-navmannia/walkbot/internal/domain"
	"github.com/odesa-navmannia/walkbot/internal/session"
)

// Catalog finds one acceptable place near an anchor.
type Catalog interface {
	FindNearby(ctx context.Context, q catalog.Query) (*domain.Place, error)
}

// VisitedStore is the durable per-user set of already shown place ids.
type VisitedStore interface {
	IDs(ctx context.Context, userID int64) (map[string]struct{}, error)
	Add(ctx context.Context, userID int64, placeID string) error
}

// Quota gates how many walks and quick picks a user gets per day.
type Quota interface {
	CanProceed(ctx context.Context, userID int64, kind domain.QuotaKind) (domain.QuotaDecision, *domain.DailyLimit, error)
	RecordUse(ctx context.Context, userID int64, kind domain.QuotaKind) error
	ExtendCeiling(ctx context.Context, userID int64, kind domain.QuotaKind) error
}

// FeedbackSink receives append-only analytics events.
type FeedbackSink interface {
	Append(ctx context.Context, ev domain.FeedbackEvent) error
}

// ResultKind tells the dispatcher what to render after a transition.
type ResultKind int

const (
	// ResultNone means the event was ignored (stale callback, wrong phase).
	ResultNone ResultKind = iota
	ResultChooseOrigin
	ResultAskLocation
	ResultPlace
	ResultPaywall
	ResultHardStop
	ResultNothingFound
	ResultFinished
	ResultBudget
	ResultMarked
	ResultSkipped
	// ResultFailure is a persistence problem: apologize, session unchanged.
	ResultFailure
)

// StepResult is the outcome of one state-machine transition. The walk
// service never talks to the chat transport; handlers render results.
type StepResult struct {
	Kind           ResultKind
	Place          *domain.Place
	StepIndex      int
	Total          int
	Token          string
	Budget         string
	Limit          *domain.DailyLimit
	QuotaKind      domain.QuotaKind
	CenterFallback bool
	LastStep       bool
	Route          []domain.Place
}

// WalkService drives the per-user walking session state machine.
type WalkService struct {
	sessions *session.Store
	catalog  Catalog
	visited  VisitedStore
	quota    Quota
	feedback FeedbackSink
}

func NewWalkService(sessions *session.Store, cat Catalog, visited VisitedStore, quota Quota, feedback FeedbackSink) *WalkService {
	return &WalkService{
		sessions: sessions,
		catalog:  cat,
		visited:  visited,
		quota:    quota,
		feedback: feedback,
	}
}

// Start opens a fresh session in the choosing-origin phase, superseding any
// previous one.
func (s *WalkService) Start(userID int64, mode session.Mode, count int) *StepResult {
	if mode == session.ModeSignature {
		count = 3
	}
	if mode == session.ModeSingle {
		count = 1
	}
	sess := session.New(userID, mode, count)
	s.sessions.Put(sess)
	return &StepResult{Kind: ResultChooseOrigin, Token: sess.Token, Total: count}
}

// ChooseCenter anchors the session at the city center and fetches the
// first stop. A token from a superseded session is ignored.
func (s *WalkService) ChooseCenter(ctx context.Context, userID int64, token string) *StepResult {
	sess := s.sessions.Get(userID)
	if sess == nil || sess.Token != token || sess.Phase != session.PhaseChoosingOrigin {
		return &StepResult{Kind: ResultNone}
	}
	sess.Anchor = domain.Coord{Lat: config.CenterLat, Lon: config.CenterLon}
	return s.fetchStep(ctx, sess, 0)
}

// ChooseOwnLocation moves the session to the awaiting-location phase. A
// token from a superseded session is ignored.
func (s *WalkService) ChooseOwnLocation(userID int64, token string) *StepResult {
	sess := s.sessions.Get(userID)
	if sess == nil || sess.Token != token || sess.Phase != session.PhaseChoosingOrigin {
		return &StepResult{Kind: ResultNone}
	}
	sess.Phase = session.PhaseAwaitingLocation
	return &StepResult{Kind: ResultAskLocation, Token: sess.Token}
}

// Location handles a shared geolocation. Outside the awaiting-location
// phase it is ignored. An implausibly far coordinate silently falls back
// to the city center instead of rejecting the user.
func (s *WalkService) Location(ctx context.Context, userID int64, lat, lon float64) *StepResult {
	sess := s.sessions.Get(userID)
	if sess == nil || sess.Phase != session.PhaseAwaitingLocation {
		return &StepResult{Kind: ResultNone}
	}

	center := domain.Coord{Lat: config.CenterLat, Lon: config.CenterLon}
	origin := domain.Coord{Lat: lat, Lon: lon}
	fellBack := false
	if distanceM(origin, center) > config.MaxOriginDistanceM {
		origin = center
		fellBack = true
	}
	sess.Anchor = origin

	res := s.fetchStep(ctx, sess, 0)
	res.CenterFallback = fellBack
	return res
}

// Advance moves from step i to step i+1 on an explicit "next" action. A
// stale token or step index is ignored. Leaving a step that was never
// marked interesting records a not-interesting signal; that is analytics
// only, not a state change.
func (s *WalkService) Advance(ctx context.Context, userID int64, token string, step int) *StepResult {
	sess := s.sessions.Get(userID)
	if sess == nil || !sess.IsCurrentStep(token, step) {
		return &StepResult{Kind: ResultNone}
	}

	if !sess.IsMarked(step) && sess.Current != nil {
		s.log(ctx, userID, sess.Current.ID, domain.ActionNotInteresting, "")
	}

	next := step + 1
	if sess.Mode == session.ModeSignature && next == sess.RequestedCount {
		return s.revealBudget(userID, sess)
	}
	if next >= sess.RequestedCount {
		return s.finish(userID, sess)
	}
	return s.fetchStep(ctx, sess, next)
}

// Mark records that the user found the current step interesting.
func (s *WalkService) Mark(ctx context.Context, userID int64, token string, step int) *StepResult {
	sess := s.sessions.Get(userID)
	if sess == nil || !sess.IsCurrentStep(token, step) {
		return &StepResult{Kind: ResultNone}
	}
	if sess.IsMarked(step) {
		return &StepResult{Kind: ResultNone}
	}
	sess.Marked[step] = struct{}{}
	if sess.Current != nil {
		s.log(ctx, userID, sess.Current.ID, domain.ActionInteresting, "")
	}
	return &StepResult{Kind: ResultMarked, Place: sess.Current, StepIndex: step}
}

// Skip records explicit disinterest without advancing.
func (s *WalkService) Skip(ctx context.Context, userID int64, token string, step int) *StepResult {
	sess := s.sessions.Get(userID)
	if sess == nil || !sess.IsCurrentStep(token, step) {
		return &StepResult{Kind: ResultNone}
	}
	if sess.Current != nil {
		s.log(ctx, userID, sess.Current.ID, domain.ActionSkipped, "")
	}
	return &StepResult{Kind: ResultSkipped, StepIndex: step}
}

// ExtendAndRetry is the paywall "raise ceiling and try again" path. The
// ceiling extension is honor-system; nothing is verified.
func (s *WalkService) ExtendAndRetry(ctx context.Context, userID int64) *StepResult {
	sess := s.sessions.Get(userID)
	if sess == nil {
		return &StepResult{Kind: ResultNone}
	}
	kind := quotaKindFor(sess.Mode)
	if err := s.quota.ExtendCeiling(ctx, userID, kind); err != nil {
		slog.Error("extend quota ceiling", "user_id", userID, "error", err)
		return &StepResult{Kind: ResultFailure}
	}
	return s.fetchStep(ctx, sess, sess.StepIndex)
}

// Abandon clears the session, returning the user to the menu.
func (s *WalkService) Abandon(userID int64) {
	s.sessions.Clear(userID)
}

// Active reports whether the user has a session in flight.
func (s *WalkService) Active(userID int64) bool {
	return s.sessions.Get(userID) != nil
}

// fetchStep runs the quota gate and the catalog query for the given step
// and, on success, advances the session onto it. One walk unit is consumed
// per session at the first stop, regardless of how many stops follow.
func (s *WalkService) fetchStep(ctx context.Context, sess *session.Session, step int) *StepResult {
	userID := sess.UserID
	firstStep := step == 0 && sess.Current == nil

	if firstStep {
		kind := quotaKindFor(sess.Mode)
		decision, limit, err := s.quota.CanProceed(ctx, userID, kind)
		if err != nil {
			slog.Error("quota check", "user_id", userID, "error", err)
			return &StepResult{Kind: ResultFailure}
		}
		switch decision {
		case domain.QuotaPaywall:
			return &StepResult{Kind: ResultPaywall, Limit: limit, QuotaKind: kind, Token: sess.Token}
		case domain.QuotaHardStop:
			s.sessions.Clear(userID)
			return &StepResult{Kind: ResultHardStop, Limit: limit, QuotaKind: kind}
		}
	}

	durable, err := s.visited.IDs(ctx, userID)
	if err != nil {
		slog.Error("load visited set", "user_id", userID, "error", err)
		return &StepResult{Kind: ResultFailure}
	}
	exclude := make(map[string]struct{}, len(durable)+len(sess.Picked))
	for id := range durable {
		exclude[id] = struct{}{}
	}
	for id := range sess.Picked {
		exclude[id] = struct{}{}
	}

	place, err := s.catalog.FindNearby(ctx, catalog.Query{
		Anchor:     sess.Anchor,
		RadiusM:    s.radiusFor(sess, step),
		Categories: s.categoriesFor(sess, step),
		Exclude:    exclude,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNoPlacesFound) {
			slog.Warn("catalog fetch failed", "user_id", userID, "error", err)
		}
		s.sessions.Clear(userID)
		return &StepResult{Kind: ResultNothingFound}
	}

	// Durable write before the session mutates, so a failure leaves the
	// session exactly where it was.
	if err := s.visited.Add(ctx, userID, place.ID); err != nil {
		slog.Error("record visited place", "user_id", userID, "place_id", place.ID, "error", err)
		return &StepResult{Kind: ResultFailure}
	}

	if firstStep {
		if err := s.quota.RecordUse(ctx, userID, quotaKindFor(sess.Mode)); err != nil {
			slog.Error("record quota use", "user_id", userID, "error", err)
		}
	}

	sess.StepIndex = step
	sess.Accept(place)
	s.log(ctx, userID, place.ID, domain.ActionShown, string(sess.Mode))

	return &StepResult{
		Kind:      ResultPlace,
		Place:     place,
		StepIndex: step,
		Total:     sess.RequestedCount,
		Token:     sess.Token,
		LastStep:  sess.Mode != session.ModeSignature && step == sess.RequestedCount-1,
	}
}

// revealBudget is the cosmetic final step of the signature route. No
// catalog fetch happens here.
func (s *WalkService) revealBudget(userID int64, sess *session.Session) *StepResult {
	budget := config.BudgetOptions[rand.IntN(len(config.BudgetOptions))]
	route := sess.Route
	s.sessions.Clear(userID)
	return &StepResult{Kind: ResultBudget, Budget: budget, Route: route}
}

func (s *WalkService) finish(userID int64, sess *session.Session) *StepResult {
	route := sess.Route
	s.sessions.Clear(userID)
	return &StepResult{Kind: ResultFinished, Route: route, Total: sess.RequestedCount}
}

func (s *WalkService) radiusFor(sess *session.Session, step int) int {
	if step == 0 {
		return config.InitialRadiusM
	}
	if sess.Mode == session.ModeSignature {
		return config.NearbyRadiusM
	}
	return config.StepRadiusM
}

func (s *WalkService) categoriesFor(sess *session.Session, step int) []string {
	if sess.Mode != session.ModeSignature {
		return nil
	}
	switch step {
	case 0:
		return catalog.HistoryCategories
	case 2:
		return catalog.FoodCategories
	default:
		return nil
	}
}

func (s *WalkService) log(ctx context.Context, userID int64, placeID string, action domain.FeedbackAction, note string) {
	ev := domain.FeedbackEvent{UserID: userID, PlaceID: placeID, Action: action, Context: note}
	if err := s.feedback.Append(ctx, ev); err != nil {
		slog.Error("append feedback", "user_id", userID, "action", string(action), "error", err)
	}
}

func quotaKindFor(mode session.Mode) domain.QuotaKind {
	if mode == session.ModeSingle {
		return domain.QuotaRec
	}
	return domain.QuotaWalk
}

// distanceM is the haversine distance in meters.
func distanceM(a, b domain.Coord) float64 {
	const earthRadiusM = 6_371_000
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}
