package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"ratiocop/internal/classify"
	"ratiocop/internal/model"
	"ratiocop/internal/store"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	outputFormat = ""
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestUsageWithTooFewArgs(t *testing.T) {
	for _, args := range [][]string{{}, {"47832"}} {
		out, err := runCLI(t, args...)
		if !errors.Is(err, errUsage) {
			t.Fatalf("args %v: err = %v, want usage error", args, err)
		}
		if !strings.Contains(out, "Usage: ratiocop <following> <followers>") {
			t.Fatalf("args %v: usage not printed:\n%s", args, out)
		}
	}
}

func TestLegendaryEndToEnd(t *testing.T) {
	out, err := runCLI(t, "47832", "523")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"LEGENDARY_MASS_FOLLOWER", "91.46", "47,832"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
	// The shame line lands after the closing separator.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := lines[len(lines)-1]
	if strings.HasPrefix(last, "=") {
		t.Fatalf("expected a shame line after the report:\n%s", out)
	}
	if !strings.Contains(last, "47,832") {
		t.Fatalf("shame line does not mention the count: %q", last)
	}
}

func TestNormalVerdictHasNoShameLine(t *testing.T) {
	out, err := runCLI(t, "250", "100")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Verdict:        NORMAL") {
		t.Fatalf("missing normal verdict:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "=") {
		t.Fatalf("unexpected trailing line %q", last)
	}
}

func TestUnparseableInputFallsToLegendary(t *testing.T) {
	out, err := runCLI(t, "banana", "10")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "LEGENDARY_MASS_FOLLOWER") {
		t.Fatalf("NaN did not land on legendary:\n%s", out)
	}
	if !strings.Contains(out, "Ratio:          NaN") {
		t.Fatalf("NaN ratio not printed:\n%s", out)
	}
	// NaN fails the shame comparison too, so no extra line.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "=") {
		t.Fatalf("unexpected shame line %q", last)
	}
}

func TestJSONOutput(t *testing.T) {
	out, err := runCLI(t, "-o", "json", "47832", "523")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var a model.RatioAnalysis
	if err := json.Unmarshal([]byte(out), &a); err != nil {
		t.Fatalf("output is not pure json: %v\n%s", err, out)
	}
	if a.Verdict != model.VerdictLegendaryMassFollower || !a.Shame {
		t.Fatalf("unexpected analysis: %+v", a)
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := runCLI(t, "-o", "xml", "2000", "10")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("err = %v", err)
	}
}

func TestFollowBackCommand(t *testing.T) {
	cases := []struct {
		args []string
		want model.FollowBackVerdict
	}{
		{[]string{"followback", "--they-follow-you", "--their-following", "2000"}, model.FollowBackClassicFollowUnfollow},
		{[]string{"followback", "--they-follow-you", "--their-following", "2000", "--followed-back"}, model.FollowBackTheyGotYou},
		{[]string{"followback", "--they-follow-you", "--their-following", "900"}, model.FollowBackSeemsGenuine},
	}
	for _, tc := range cases {
		out, err := runCLI(t, tc.args...)
		if err != nil {
			t.Fatalf("%v: %v", tc.args, err)
		}
		if !strings.Contains(out, string(tc.want)) {
			t.Fatalf("%v: missing %s in output:\n%s", tc.args, tc.want, out)
		}
	}
}

func TestMessageCommandBelowThreshold(t *testing.T) {
	out, err := runCLI(t, "message", "500")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != classify.NormalMessage {
		t.Fatalf("message = %q", strings.TrimSpace(out))
	}
}

func TestWallCommand(t *testing.T) {
	out, err := runCLI(t, "wall", "octocat")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "octocat is not on the wall of shame") {
		t.Fatalf("wall output:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "ratiocop version") {
		t.Fatalf("version output: %q", out)
	}
}

func TestBatchThenReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "accounts.jsonl")
	results := filepath.Join(dir, "results.jsonl")
	db := filepath.Join(dir, "results.db")

	data := `{"username":"casual","following":42,"followers":300}
{"username":"legend","following":60000,"followers":10}
`
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "batch", "--input", input, "--results", results, "--db", db); err != nil {
		t.Fatalf("batch: %v", err)
	}

	raw, err := os.ReadFile(results)
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("result lines = %d:\n%s", len(lines), raw)
	}
	if !strings.Contains(lines[1], `"verdict":"LEGENDARY_MASS_FOLLOWER"`) {
		t.Fatalf("second line: %s", lines[1])
	}

	sdb, err := store.Open(db)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sdb.Close()
	stored, err := sdb.LoadResults(context.Background(), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(stored) != 2 || stored[1].Username != "legend" {
		t.Fatalf("stored rows: %+v", stored)
	}

	out, err := runCLI(t, "report", "--input", results, "--top", "1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"Accounts analyzed: 2", "Top Offenders:", "legend"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in report:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "report", "--db", db)
	if err != nil {
		t.Fatalf("db report: %v", err)
	}
	if !strings.Contains(out, "Shame rate: 1 of 2 (50.0%)") {
		t.Fatalf("db report:\n%s", out)
	}
}

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratiocop.yaml")
	out, err := runCLI(t, "init", "--path", path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(out, "Config written to:") {
		t.Fatalf("init output:\n%s", out)
	}
}
