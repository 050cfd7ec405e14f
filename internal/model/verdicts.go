package model

// Canned verdict copy. These strings are a compatibility surface: the report
// format is scraped by people who pipe it into other things, so edits here
// are breaking changes.

var ratioText = map[Verdict]struct{ description, recommendation string }{
	VerdictNormal: {
		"You follow a reasonable number of people. There is a real human being behind this account.",
		"Carry on. This tool has nothing for you.",
	},
	VerdictSuspicious: {
		"Following over 1,000 accounts. Nobody is reading 1,000 timelines. Nobody.",
		"Unfollow everyone you added during that one growth-hacking phase. You know the one.",
	},
	VerdictLikelyMassFollower: {
		"Following over 5,000 accounts. At this point the follow button is a reflex, not a decision.",
		"Put the follow button down and go outside for a while.",
	},
	VerdictMassFollower: {
		"Following over 10,000 accounts. This is industrial-scale following. There is machinery involved.",
		"Delete the automation script. It stopped noticing people years ago.",
	},
	VerdictEgregiousMassFollower: {
		"Following over 25,000 accounts. If every one were a page, you would be following an encyclopedia.",
		"Seek help. Or at least a second account.",
	},
	VerdictLegendaryMassFollower: {
		"Following over 50,000 accounts. Scientists should study whatever is happening here.",
		"Frame this report. Nobody reaches these numbers by accident.",
	},
}

var followBackText = map[FollowBackVerdict]struct{ description, recommendation string }{
	FollowBackClassicFollowUnfollow: {
		"They followed you, waited politely for the follow-back, and unfollowed the moment the transaction cleared.",
		"Unfollow them back and pretend this never happened.",
	},
	FollowBackTheyGotYou: {
		"They followed, you followed back, and now you are a line item in somebody's growth dashboard.",
		"You can unfollow. They will never notice. That is the point.",
	},
	FollowBackSeemsGenuine: {
		"No mass-follower pattern detected. This might be an actual human who likes your work.",
		"Follow back if you like theirs. That is how this was supposed to work.",
	},
}

// VerdictText returns the canned description and recommendation for v.
func VerdictText(v Verdict) (description, recommendation string) {
	t := ratioText[v]
	return t.description, t.recommendation
}

// FollowBackText returns the canned description and recommendation for v.
func FollowBackText(v FollowBackVerdict) (description, recommendation string) {
	t := followBackText[v]
	return t.description, t.recommendation
}
