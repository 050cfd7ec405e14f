package classify

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// NormalMessage is the only thing the generator says below the suspicious
// threshold.
const NormalMessage = "You seem normal. This tool isn't for you."

// shameTemplates are drawn uniformly; %s receives the comma-formatted count.
var shameTemplates = []string{
	"You follow %s people. That is not a social network, that is a phone book.",
	"%s accounts followed. Your timeline must look like television static.",
	"Following %s people and reading none of them. Bold strategy.",
	"%s follows. Somewhere a notification server is quietly weeping.",
	"You follow %s accounts. Even you don't believe that number.",
}

// GenerateMessage returns one canned line about a following count: the fixed
// all-clear below the suspicious threshold, otherwise a uniform draw over the
// shame templates.
func (c *Classifier) GenerateMessage(following float64) string {
	if following < c.thresholds.Suspicious {
		return NormalMessage
	}
	tmpl := shameTemplates[c.randIndex(len(shameTemplates))]
	return fmt.Sprintf(tmpl, humanize.Commaf(following))
}
