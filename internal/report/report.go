// Package report renders analyses for terminals and pipelines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"ratiocop/internal/model"
)

const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

const separatorWidth = 60

// WriteRatio renders a ratio analysis to w in the requested format.
// An empty format means human.
func WriteRatio(w io.Writer, a model.RatioAnalysis, format string) error {
	switch format {
	case FormatHuman, "":
		writeRatioHuman(w, a)
		return nil
	case FormatJSON:
		return writeJSON(w, a)
	case FormatYAML:
		return writeYAML(w, a)
	default:
		return fmt.Errorf("unknown output format %q (want human, json, or yaml)", format)
	}
}

// WriteFollowBack renders a follow-back analysis to w in the requested
// format.
func WriteFollowBack(w io.Writer, a model.FollowBackAnalysis, format string) error {
	switch format {
	case FormatHuman, "":
		writeFollowBackHuman(w, a)
		return nil
	case FormatJSON:
		return writeJSON(w, a)
	case FormatYAML:
		return writeYAML(w, a)
	default:
		return fmt.Errorf("unknown output format %q (want human, json, or yaml)", format)
	}
}

func writeRatioHuman(w io.Writer, a model.RatioAnalysis) {
	sep := strings.Repeat("=", separatorWidth)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, " FOLLOW RATIO REPORT")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, " %-16s%s\n", "Following:", humanize.Commaf(a.Following))
	fmt.Fprintf(w, " %-16s%s\n", "Followers:", humanize.Commaf(a.Followers))
	fmt.Fprintf(w, " %-16s%s\n", "Ratio:", a.Ratio)
	fmt.Fprintf(w, " %-16s%s\n", "Verdict:", verdictColor(a.Verdict).Sprint(string(a.Verdict)))
	fmt.Fprintf(w, " %-16s%s\n", "Analyzed:", a.Timestamp)
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s\n", a.Description)
	fmt.Fprintf(w, " %-16s%s\n", "Recommendation:", a.Recommendation)
	fmt.Fprintln(w, sep)
}

func writeFollowBackHuman(w io.Writer, a model.FollowBackAnalysis) {
	sep := strings.Repeat("=", separatorWidth)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, " FOLLOW-BACK INVESTIGATION")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, " %-16s%s\n", "Verdict:", followBackColor(a.Verdict).Sprint(string(a.Verdict)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s\n", a.Description)
	fmt.Fprintf(w, " %-16s%s\n", "Recommendation:", a.Recommendation)
	fmt.Fprintln(w, sep)
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func writeYAML(w io.Writer, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	fmt.Fprint(w, string(b))
	return nil
}

func verdictColor(v model.Verdict) *color.Color {
	switch v {
	case model.VerdictNormal:
		return color.New(color.FgGreen)
	case model.VerdictSuspicious:
		return color.New(color.FgYellow)
	case model.VerdictLikelyMassFollower:
		return color.New(color.FgYellow, color.Bold)
	case model.VerdictMassFollower:
		return color.New(color.FgRed)
	case model.VerdictEgregiousMassFollower:
		return color.New(color.FgRed, color.Bold)
	default:
		// Legendary is beyond red.
		return color.New(color.FgMagenta, color.Bold)
	}
}

func followBackColor(v model.FollowBackVerdict) *color.Color {
	switch v {
	case model.FollowBackSeemsGenuine:
		return color.New(color.FgGreen)
	case model.FollowBackTheyGotYou:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
