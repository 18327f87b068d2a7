package config

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// Service area
	CenterLat = 46.4825
	CenterLon = 30.7233

	// A shared location further than this from the center falls back
	// to the center coordinate.
	MaxOriginDistanceM = 25_000

	// Catalog search radii (meters)
	InitialRadiusM = 3000
	StepRadiusM    = 500
	NearbyRadiusM  = 1500
	RadiusStepUpM  = 250
	MaxRadiusM     = 3000

	// Bounded attempts across category rotation and radius escalation
	MaxFindAttempts = 30

	// Catalog provider request timeout
	CatalogTimeout = 10 * time.Second

	// Daily quotas: base tier, extension step, hard cap
	WalkQuotaBase = 3
	RecQuotaBase  = 3
	QuotaStep     = 2
	WalkQuotaMax  = 7
	RecQuotaMax   = 7

	// Quota days roll over in the city's timezone.
	QuotaTimezone = "Europe/Kyiv"

	// Durable visited set is trimmed to this many most recent entries.
	VisitedKeep = 500

	// Review text limit
	FeedbackMaxLen = 256

	// Rate limit (messages per chat per minute)
	RateLimitPerMinute = 20

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Broadcast fan-out concurrency
	BroadcastWorkers = 8
)

// DonationAmountsUAH are the suggested donation tiers in the support menu.
var DonationAmountsUAH = []decimal.Decimal{
	decimal.NewFromInt(50),
	decimal.NewFromInt(100),
	decimal.NewFromInt(200),
	decimal.NewFromInt(500),
}

// BudgetOptions revealed at the end of the signature route. Purely
// cosmetic, no selection logic behind it.
var BudgetOptions = []string{
	"10 грн — смак виживання",
	"50 грн — базарний делюкс",
	"100 грн — як місцевий",
	"300 грн — одна страва і розмова",
	"500 грн — їжа як пригода",
	"Що порадить офіціант",
}
