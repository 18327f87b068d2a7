package catalog

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/odesa-navmannia/walkbot/internal/config"
	"github.com/odesa-navmannia/walkbot/internal/domain"
)

// RetryPolicy bounds a search: how many provider calls may be spent in
// total, and how the radius escalates once a full category rotation at the
// current radius comes up empty.
type RetryPolicy struct {
	MaxAttempts int
	RadiusStepM int
	MaxRadiusM  int
}

func defaultPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: config.MaxFindAttempts,
		RadiusStepM: config.RadiusStepUpM,
		MaxRadiusM:  config.MaxRadiusM,
	}
}

// Query describes one nearby search.
type Query struct {
	Anchor     domain.Coord
	RadiusM    int
	Categories []string            // nil means the master list
	Exclude    map[string]struct{} // place ids never to return
}

// Client picks acceptable places from a Provider. It rotates categories,
// shuffles provider results, filters excluded and zero-review venues and
// escalates the radius per its RetryPolicy. An empty outcome is reported
// as domain.ErrNoPlacesFound, not as a transport failure.
type Client struct {
	provider Provider
	policy   RetryPolicy

	mu  sync.Mutex
	rnd *rand.Rand
}

type Option func(*Client)

// WithPolicy overrides the default retry policy.
func WithPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.policy = p }
}

// WithRand injects a deterministic source for tests.
func WithRand(r *rand.Rand) Option {
	return func(c *Client) { c.rnd = r }
}

func New(provider Provider, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		policy:   defaultPolicy(),
		rnd:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindNearby returns one acceptable place near the anchor, or
// domain.ErrNoPlacesFound once the attempt budget runs out.
func (c *Client) FindNearby(ctx context.Context, q Query) (*domain.Place, error) {
	budget := c.policy.MaxAttempts
	exclude := cloneSet(q.Exclude)
	return c.findOne(ctx, q.Anchor, q.RadiusM, q.Categories, exclude, &budget)
}

// FindRoute picks up to count places, chaining the anchor: each accepted
// place becomes the origin of the next search at the step radius. The
// result may be shorter than count when the attempt budget is exhausted;
// that is not an error.
func (c *Client) FindRoute(ctx context.Context, q Query, count int) ([]domain.Place, error) {
	budget := c.policy.MaxAttempts
	exclude := cloneSet(q.Exclude)
	anchor := q.Anchor
	radius := q.RadiusM

	places := make([]domain.Place, 0, count)
	for len(places) < count && budget > 0 {
		p, err := c.findOne(ctx, anchor, radius, q.Categories, exclude, &budget)
		if err != nil {
			break
		}
		places = append(places, *p)
		exclude[p.ID] = struct{}{}
		anchor = p.Coord
		radius = config.StepRadiusM
	}
	return places, nil
}

// findOne spends attempts from budget rotating categories at the current
// radius; when a full rotation finds nothing the radius steps up, capped at
// the policy maximum. Provider failures count as empty results.
func (c *Client) findOne(ctx context.Context, anchor domain.Coord, radiusM int, categories []string, exclude map[string]struct{}, budget *int) (*domain.Place, error) {
	pool := categories
	if len(pool) == 0 {
		pool = Categories
	}
	used := make(map[string]struct{}, len(pool))
	radius := radiusM

	for *budget > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		*budget--

		category := c.pickCategory(pool, used)
		if category == "" {
			// Full rotation at this radius found nothing; widen and restart.
			if radius >= c.policy.MaxRadiusM {
				radius = radiusM
			} else {
				radius = min(radius+c.policy.RadiusStepM, c.policy.MaxRadiusM)
			}
			clear(used)
			category = c.pickCategory(pool, used)
		}
		used[category] = struct{}{}

		candidates, err := c.provider.Search(ctx, anchor, radius, category)
		if err != nil {
			slog.Debug("catalog search failed, treating as empty",
				"category", category, "radius_m", radius, "error", err)
			continue
		}

		c.shuffle(candidates)
		for i := range candidates {
			cand := &candidates[i]
			if _, seen := exclude[cand.ID]; seen {
				continue
			}
			if cand.Reviews == 0 {
				// Unverified or likely closed venue.
				continue
			}
			return cand, nil
		}
	}
	return nil, domain.ErrNoPlacesFound
}

// pickCategory returns a random category not yet used in this rotation, or
// "" when the rotation is complete.
func (c *Client) pickCategory(pool []string, used map[string]struct{}) string {
	fresh := make([]string, 0, len(pool))
	for _, cat := range pool {
		if _, ok := used[cat]; !ok {
			fresh = append(fresh, cat)
		}
	}
	if len(fresh) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return fresh[c.rnd.IntN(len(fresh))]
}

func (c *Client) shuffle(places []domain.Place) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rnd.Shuffle(len(places), func(i, j int) {
		places[i], places[j] = places[j], places[i]
	})
}

func cloneSet(s map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}
