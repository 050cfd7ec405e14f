package model

// Thresholds holds the five following-count breakpoints that drive ratio
// classification. Built once via DefaultThresholds and passed around by
// value; nothing mutates it after construction.
type Thresholds struct {
	Suspicious float64 // crossing this also raises the shame flag
	Likely     float64
	Obvious    float64
	Absurd     float64
	Legendary  float64
}

// DefaultThresholds returns the canonical breakpoints. The numbers are fixed
// on purpose; the whole point of the tool is that they are not negotiable.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Suspicious: 1000,
		Likely:     5000,
		Obvious:    10000,
		Absurd:     25000,
		Legendary:  50000,
	}
}

// WallOfShame is the public wall of shame. It has been empty since launch and
// stays that way; lookups against it always miss. Do not populate it.
var WallOfShame = []string{}

// Verdict labels a following count relative to the thresholds.
type Verdict string

const (
	VerdictNormal                Verdict = "NORMAL"
	VerdictSuspicious            Verdict = "SUSPICIOUS"
	VerdictLikelyMassFollower    Verdict = "LIKELY_MASS_FOLLOWER"
	VerdictMassFollower          Verdict = "MASS_FOLLOWER"
	VerdictEgregiousMassFollower Verdict = "EGREGIOUS_MASS_FOLLOWER"
	VerdictLegendaryMassFollower Verdict = "LEGENDARY_MASS_FOLLOWER"
)

// VerdictOrder lists ratio verdicts from harmless to legendary. Summaries
// iterate this instead of the map to keep output stable.
var VerdictOrder = []Verdict{
	VerdictNormal,
	VerdictSuspicious,
	VerdictLikelyMassFollower,
	VerdictMassFollower,
	VerdictEgregiousMassFollower,
	VerdictLegendaryMassFollower,
}

// FollowBackVerdict labels the outcome of a follow-back exchange.
type FollowBackVerdict string

const (
	FollowBackClassicFollowUnfollow FollowBackVerdict = "CLASSIC_FOLLOW_UNFOLLOW"
	FollowBackTheyGotYou            FollowBackVerdict = "THEY_GOT_YOU"
	FollowBackSeemsGenuine          FollowBackVerdict = "SEEMS_GENUINE"
)

// RatioAnalysis is one classification of a following/followers pair.
// Counts are float64 so that NaN from unparseable CLI input flows through
// the comparisons untouched instead of being rejected up front.
type RatioAnalysis struct {
	Following      float64 `json:"following"`
	Followers      float64 `json:"followers"`
	Ratio          string  `json:"ratio"` // always two fractional digits
	Verdict        Verdict `json:"verdict"`
	Description    string  `json:"description"`
	Recommendation string  `json:"recommendation"`
	Shame          bool    `json:"shame"`
	Timestamp      string  `json:"timestamp"` // RFC3339, UTC
}

// FollowBackAnalysis is one classification of a follow-back exchange.
type FollowBackAnalysis struct {
	Verdict        FollowBackVerdict `json:"verdict"`
	Description    string            `json:"description"`
	Recommendation string            `json:"recommendation"`
}
