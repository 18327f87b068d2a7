package catalog

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odesa-navmannia/walkbot/internal/config"
	"github.com/odesa-navmannia/walkbot/internal/domain"
)

type searchCall struct {
	center   domain.Coord
	radiusM  int
	category string
}

// fakeProvider answers every category with the same fixed result set and
// records each call.
type fakeProvider struct {
	results []domain.Place
	err     error
	calls   []searchCall
}

func (f *fakeProvider) Search(_ context.Context, center domain.Coord, radiusM int, category string) ([]domain.Place, error) {
	f.calls = append(f.calls, searchCall{center: center, radiusM: radiusM, category: category})
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Place, len(f.results))
	copy(out, f.results)
	return out, nil
}

func testClient(p Provider, policy RetryPolicy) *Client {
	return New(p, WithPolicy(policy), WithRand(rand.New(rand.NewPCG(1, 2))))
}

func place(id string, reviews int) domain.Place {
	return domain.Place{
		ID:      id,
		Name:    "place " + id,
		Coord:   domain.Coord{Lat: 46.48, Lon: 30.72},
		Reviews: reviews,
	}
}

func TestFindNearbySkipsExcludedAndZeroReview(t *testing.T) {
	provider := &fakeProvider{results: []domain.Place{
		place("excluded", 12),
		place("unrated", 0),
		place("good", 34),
	}}
	c := testClient(provider, RetryPolicy{MaxAttempts: 5, RadiusStepM: 250, MaxRadiusM: 3000})

	got, err := c.FindNearby(context.Background(), Query{
		Anchor:     domain.Coord{Lat: config.CenterLat, Lon: config.CenterLon},
		RadiusM:    1000,
		Categories: []string{"museum"},
		Exclude:    map[string]struct{}{"excluded": {}},
	})

	require.NoError(t, err)
	assert.Equal(t, "good", got.ID)
}

func TestFindNearbyReturnsNoPlacesFoundOnExhaustion(t *testing.T) {
	provider := &fakeProvider{}
	c := testClient(provider, RetryPolicy{MaxAttempts: 7, RadiusStepM: 250, MaxRadiusM: 3000})

	_, err := c.FindNearby(context.Background(), Query{
		Anchor:     domain.Coord{Lat: config.CenterLat, Lon: config.CenterLon},
		RadiusM:    1000,
		Categories: []string{"museum", "park"},
	})

	require.ErrorIs(t, err, domain.ErrNoPlacesFound)
	assert.Len(t, provider.calls, 7, "every attempt in the budget should hit the provider")
}

func TestFindNearbyTreatsProviderErrorAsEmpty(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	c := testClient(provider, RetryPolicy{MaxAttempts: 3, RadiusStepM: 250, MaxRadiusM: 3000})

	_, err := c.FindNearby(context.Background(), Query{
		Anchor:     domain.Coord{Lat: config.CenterLat, Lon: config.CenterLon},
		RadiusM:    1000,
		Categories: []string{"museum"},
	})

	require.ErrorIs(t, err, domain.ErrNoPlacesFound)
	assert.Len(t, provider.calls, 3)
}

func TestFindNearbyEscalatesRadiusAfterFullRotation(t *testing.T) {
	provider := &fakeProvider{}
	c := testClient(provider, RetryPolicy{MaxAttempts: 6, RadiusStepM: 500, MaxRadiusM: 2000})

	_, err := c.FindNearby(context.Background(), Query{
		Anchor:     domain.Coord{Lat: config.CenterLat, Lon: config.CenterLon},
		RadiusM:    1000,
		Categories: []string{"museum", "park"},
	})
	require.ErrorIs(t, err, domain.ErrNoPlacesFound)

	// Two categories at 1000m, then two at 1500m, then two at 2000m.
	var radii []int
	for _, call := range provider.calls {
		radii = append(radii, call.radiusM)
	}
	assert.Equal(t, []int{1000, 1000, 1500, 1500, 2000, 2000}, radii)
}

func TestFindNearbyRotatesCategoriesWithoutRepeats(t *testing.T) {
	provider := &fakeProvider{}
	c := testClient(provider, RetryPolicy{MaxAttempts: 3, RadiusStepM: 250, MaxRadiusM: 3000})

	_, err := c.FindNearby(context.Background(), Query{
		Anchor:     domain.Coord{Lat: config.CenterLat, Lon: config.CenterLon},
		RadiusM:    1000,
		Categories: []string{"museum", "park", "cafe"},
	})
	require.ErrorIs(t, err, domain.ErrNoPlacesFound)

	seen := make(map[string]int)
	for _, call := range provider.calls {
		seen[call.category]++
	}
	for cat, n := range seen {
		assert.Equal(t, 1, n, "category %q repeated within one rotation", cat)
	}
}

// chainProvider hands out a fresh place per call so FindRoute can chain.
type chainProvider struct {
	n     int
	calls []searchCall
}

func (f *chainProvider) Search(_ context.Context, center domain.Coord, radiusM int, category string) ([]domain.Place, error) {
	f.calls = append(f.calls, searchCall{center: center, radiusM: radiusM, category: category})
	f.n++
	return []domain.Place{{
		ID:      string(rune('a' + f.n - 1)),
		Name:    "stop",
		Coord:   domain.Coord{Lat: 46.0 + float64(f.n), Lon: 30.0 + float64(f.n)},
		Reviews: 10,
	}}, nil
}

func TestFindRouteChainsAnchorAndExcludesPicks(t *testing.T) {
	provider := &chainProvider{}
	c := testClient(provider, RetryPolicy{MaxAttempts: 30, RadiusStepM: 250, MaxRadiusM: 3000})

	start := domain.Coord{Lat: config.CenterLat, Lon: config.CenterLon}
	route, err := c.FindRoute(context.Background(), Query{
		Anchor:     start,
		RadiusM:    config.InitialRadiusM,
		Categories: []string{"museum"},
	}, 3)

	require.NoError(t, err)
	require.Len(t, route, 3)

	assert.Equal(t, start, provider.calls[0].center)
	assert.Equal(t, config.InitialRadiusM, provider.calls[0].radiusM)
	for i := 1; i < len(provider.calls); i++ {
		assert.Equal(t, route[i-1].Coord, provider.calls[i].center,
			"search %d should anchor on the previous pick", i)
		assert.Equal(t, config.StepRadiusM, provider.calls[i].radiusM)
	}

	ids := map[string]struct{}{}
	for _, p := range route {
		_, dup := ids[p.ID]
		assert.False(t, dup, "route repeated place %s", p.ID)
		ids[p.ID] = struct{}{}
	}
}

func TestFindRouteShortResultIsNotAnError(t *testing.T) {
	provider := &fakeProvider{}
	c := testClient(provider, RetryPolicy{MaxAttempts: 2, RadiusStepM: 250, MaxRadiusM: 3000})

	route, err := c.FindRoute(context.Background(), Query{
		Anchor:     domain.Coord{Lat: config.CenterLat, Lon: config.CenterLon},
		RadiusM:    1000,
		Categories: []string{"museum"},
	}, 5)

	require.NoError(t, err)
	assert.Empty(t, route)
}
