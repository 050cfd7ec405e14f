package classify

import (
	"fmt"
	"math/rand"
	"time"

	"ratiocop/internal/model"
)

// Classifier evaluates follow counts against a fixed set of thresholds.
// The clock and the random index source are injectable so tests can pin
// timestamps and message selection; New wires the production defaults.
type Classifier struct {
	thresholds model.Thresholds
	now        func() time.Time
	randIndex  func(n int) int
}

// New returns a Classifier wired to the wall clock and the shared rand
// source.
func New(t model.Thresholds) *Classifier {
	return NewWithSources(t, time.Now, rand.Intn)
}

// NewWithSources returns a Classifier with explicit clock and random index
// sources. Tests use this to make message selection and timestamps
// deterministic.
func NewWithSources(t model.Thresholds, now func() time.Time, randIndex func(n int) int) *Classifier {
	return &Classifier{thresholds: t, now: now, randIndex: randIndex}
}

// AnalyzeRatio classifies a following count against the thresholds and
// packages the verdict with its canned copy. Inputs are not validated:
// negative counts classify as-is, and NaN fails every comparison below, so
// it lands on the legendary branch with the shame flag down.
func (c *Classifier) AnalyzeRatio(following, followers float64) model.RatioAnalysis {
	ratio := following
	if followers > 0 {
		ratio = following / followers
	}

	var verdict model.Verdict
	switch {
	case following < c.thresholds.Suspicious:
		verdict = model.VerdictNormal
	case following < c.thresholds.Likely:
		verdict = model.VerdictSuspicious
	case following < c.thresholds.Obvious:
		verdict = model.VerdictLikelyMassFollower
	case following < c.thresholds.Absurd:
		verdict = model.VerdictMassFollower
	case following < c.thresholds.Legendary:
		verdict = model.VerdictEgregiousMassFollower
	default:
		verdict = model.VerdictLegendaryMassFollower
	}

	description, recommendation := model.VerdictText(verdict)
	return model.RatioAnalysis{
		Following:      following,
		Followers:      followers,
		Ratio:          fmt.Sprintf("%.2f", ratio),
		Verdict:        verdict,
		Description:    description,
		Recommendation: recommendation,
		Shame:          following >= c.thresholds.Suspicious,
		Timestamp:      c.now().UTC().Format(time.RFC3339),
	}
}

// AnalyzeFollowBack pattern-matches a follow exchange. The rules only fire
// for accounts already past the suspicious threshold; smaller accounts get
// the benefit of the doubt no matter what the booleans say.
func (c *Classifier) AnalyzeFollowBack(theyFollowYou bool, theirFollowing int, youFollowedBack, theyStillFollowYou bool) model.FollowBackAnalysis {
	verdict := model.FollowBackSeemsGenuine
	if float64(theirFollowing) > c.thresholds.Suspicious {
		switch {
		case theyFollowYou && !youFollowedBack && !theyStillFollowYou:
			verdict = model.FollowBackClassicFollowUnfollow
		case theyFollowYou && youFollowedBack:
			verdict = model.FollowBackTheyGotYou
		}
	}

	description, recommendation := model.FollowBackText(verdict)
	return model.FollowBackAnalysis{
		Verdict:        verdict,
		Description:    description,
		Recommendation: recommendation,
	}
}
