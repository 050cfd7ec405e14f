package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Diagnostics go to stderr. Stdout belongs to the verdict report and must
// stay clean enough to pipe into jq.
var out io.Writer = os.Stderr

var debug = os.Getenv("RATIOCOP_DEBUG") != ""

type entry struct {
	Level   string         `json:"level"`
	Time    string         `json:"time"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func Log(level, msg string, fields map[string]any) {
	e := entry{
		Level:   level,
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
		Message: msg,
		Fields:  fields,
	}
	b, err := json.Marshal(e)
	if err != nil {
		fmt.Fprintf(out, `{"level":"error","message":"log marshal failed: %s"}`+"\n", err)
		return
	}
	fmt.Fprintln(out, string(b))
}

func Info(msg string, fields map[string]any) {
	Log("info", msg, fields)
}

func Error(msg string, fields map[string]any) {
	Log("error", msg, fields)
}

// Debug lines only appear when RATIOCOP_DEBUG is set. A CLI that narrates
// every successful run to stderr gets piped to /dev/null and stays there.
func Debug(msg string, fields map[string]any) {
	if !debug {
		return
	}
	Log("debug", msg, fields)
}
