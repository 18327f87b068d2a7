// Package session holds the per-user walking session: mode, phase, anchor,
// step index and the ids already picked. Sessions are ephemeral and live in
// process memory; durable state (visited sets, quotas) lives in the
// repository layer.
package session

import (
	"github.com/google/uuid"

	"github.com/odesa-navmannia/walkbot/internal/domain"
)

// Mode selects what kind of itinerary the session drives.
type Mode string

const (
	ModeSingle     Mode = "single"
	ModeRandomWalk Mode = "random_walk"
	ModeSignature  Mode = "signature_route"
)

// Phase is the state-machine position of a session.
type Phase string

const (
	PhaseChoosingOrigin   Phase = "choosing_origin"
	PhaseAwaitingLocation Phase = "awaiting_location"
	PhaseShowingStep      Phase = "showing_step"
	PhaseFinished         Phase = "finished"
)

// Session is one user's in-progress itinerary.
type Session struct {
	Token          string
	UserID         int64
	Mode           Mode
	RequestedCount int
	Phase          Phase
	Anchor         domain.Coord
	StepIndex      int
	Current        *domain.Place

	// Picked holds ids chosen earlier in this session so a walk never
	// repeats a place even before the durable store catches up.
	Picked map[string]struct{}

	// Marked holds step indices the user explicitly confirmed as
	// interesting.
	Marked map[int]struct{}

	// Route accumulates the stops shown so far, for the final map link.
	Route []domain.Place
}

// New creates a session in the choosing-origin phase.
func New(userID int64, mode Mode, count int) *Session {
	return &Session{
		Token:          uuid.NewString(),
		UserID:         userID,
		Mode:           mode,
		RequestedCount: count,
		Phase:          PhaseChoosingOrigin,
		Picked:         make(map[string]struct{}),
		Marked:         make(map[int]struct{}),
	}
}

// Accept records a successful fetch: the anchor moves to the place and the
// place id joins the session-local exclusion set. The anchor is never
// rolled back afterwards.
func (s *Session) Accept(p *domain.Place) {
	s.Anchor = p.Coord
	s.Current = p
	s.Picked[p.ID] = struct{}{}
	s.Route = append(s.Route, *p)
	s.Phase = PhaseShowingStep
}

// IsCurrentStep reports whether a callback payload refers to the step the
// session is actually showing.
func (s *Session) IsCurrentStep(token string, step int) bool {
	return s.Token == token && s.StepIndex == step && s.Phase == PhaseShowingStep
}

// IsMarked reports whether the current step was confirmed interesting.
func (s *Session) IsMarked(step int) bool {
	_, ok := s.Marked[step]
	return ok
}
