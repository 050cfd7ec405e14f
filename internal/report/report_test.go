package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"ratiocop/internal/model"
)

func sampleRatio() model.RatioAnalysis {
	desc, rec := model.VerdictText(model.VerdictLegendaryMassFollower)
	return model.RatioAnalysis{
		Following:      47832,
		Followers:      523,
		Ratio:          "91.46",
		Verdict:        model.VerdictLegendaryMassFollower,
		Description:    desc,
		Recommendation: rec,
		Shame:          true,
		Timestamp:      "2025-06-01T12:00:00Z",
	}
}

func TestWriteRatioHuman(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	if err := WriteRatio(&buf, sampleRatio(), FormatHuman); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	sep := strings.Repeat("=", 60)
	if n := strings.Count(out, sep); n != 3 {
		t.Fatalf("separator lines = %d, want 3\n%s", n, out)
	}
	for _, want := range []string{
		" FOLLOW RATIO REPORT",
		"Following:      47,832",
		"Followers:      523",
		"Ratio:          91.46",
		"Verdict:        LEGENDARY_MASS_FOLLOWER",
		"Analyzed:       2025-06-01T12:00:00Z",
		"Recommendation: Frame this report.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestWriteRatioHumanRendersNaN(t *testing.T) {
	color.NoColor = true
	a := sampleRatio()
	a.Ratio = "NaN"
	var buf bytes.Buffer
	if err := WriteRatio(&buf, a, ""); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "Ratio:          NaN") {
		t.Fatalf("NaN ratio not rendered:\n%s", buf.String())
	}
}

func TestWriteRatioJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRatio(&buf, sampleRatio(), FormatJSON); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got model.RatioAnalysis
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != sampleRatio() {
		t.Fatalf("json roundtrip mismatch: %+v", got)
	}
}

func TestWriteRatioYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRatio(&buf, sampleRatio(), FormatYAML); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "verdict: LEGENDARY_MASS_FOLLOWER") {
		t.Fatalf("yaml missing verdict:\n%s", out)
	}
	if !strings.Contains(out, "shame: true") {
		t.Fatalf("yaml missing shame flag:\n%s", out)
	}
}

func TestWriteRatioUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRatio(&buf, sampleRatio(), "xml")
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestWriteFollowBackHuman(t *testing.T) {
	color.NoColor = true
	desc, rec := model.FollowBackText(model.FollowBackClassicFollowUnfollow)
	a := model.FollowBackAnalysis{
		Verdict:        model.FollowBackClassicFollowUnfollow,
		Description:    desc,
		Recommendation: rec,
	}
	var buf bytes.Buffer
	if err := WriteFollowBack(&buf, a, FormatHuman); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, " FOLLOW-BACK INVESTIGATION") {
		t.Fatalf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "Verdict:        CLASSIC_FOLLOW_UNFOLLOW") {
		t.Fatalf("missing verdict:\n%s", out)
	}
}
