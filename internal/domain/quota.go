package domain

// QuotaKind distinguishes the two independently tracked daily quota axes.
type QuotaKind string

const (
	QuotaWalk QuotaKind = "walk"
	QuotaRec  QuotaKind = "rec"
)

// QuotaDecision is the outcome of a quota check.
type QuotaDecision int

const (
	// QuotaAllow means the action may proceed.
	QuotaAllow QuotaDecision = iota
	// QuotaPaywall means the daily ceiling is reached but can still be raised.
	QuotaPaywall
	// QuotaHardStop means the hard cap is reached for today.
	QuotaHardStop
)

// DailyLimit is the durable per-(user, day) usage record. A row for a new
// day starts zeroed at the base ceilings; rollover happens lazily on first
// access, there is no daily job.
type DailyLimit struct {
	UserID      int64
	Day         string
	WalksUsed   int
	RecsUsed    int
	WalkCeiling int
	RecCeiling  int
}

func (l *DailyLimit) Used(kind QuotaKind) int {
	if kind == QuotaWalk {
		return l.WalksUsed
	}
	return l.RecsUsed
}

func (l *DailyLimit) Ceiling(kind QuotaKind) int {
	if kind == QuotaWalk {
		return l.WalkCeiling
	}
	return l.RecCeiling
}
