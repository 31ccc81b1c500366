package health

import (
	"fmt"
	"sort"
	"time"

	"verba/agent/internal/lexicon"
)

type CheckResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

type Status struct {
	OK        bool          `json:"ok"`
	Checks    []CheckResult `json:"checks"`
	CheckedAt time.Time     `json:"checked_at"`
}

func (s Status) String() string {
	status := "OK"
	if !s.OK {
		status = "FAIL"
	}
	out := fmt.Sprintf("Health: %s\n", status)
	for _, c := range s.Checks {
		mark := "✓"
		if !c.OK {
			mark = "✗"
		}
		out += fmt.Sprintf("  %s %s", mark, c.Name)
		if c.Detail != "" {
			out += fmt.Sprintf(" - %s", c.Detail)
		}
		out += "\n"
	}
	return out
}

// CheckAll runs all component checks and returns combined status.
func CheckAll(lex *lexicon.Lexicon, workers int) Status {
	checks := []CheckResult{
		checkLexicon(lex),
		{Name: "workers", OK: true, Detail: fmt.Sprintf("%d connected", workers)},
	}

	allOK := true
	for _, c := range checks {
		if !c.OK {
			allOK = false
		}
	}
	return Status{OK: allOK, Checks: checks, CheckedAt: time.Now().UTC()}
}

// checkLexicon verifies the word sets can actually drive the filter: both
// decision sets must be non-empty, and any phrase spelled identically in the
// interrupt and ignore sets is reported (interrupt priority wins at runtime,
// but the overlap usually means a configuration mistake).
func checkLexicon(lex *lexicon.Lexicon) CheckResult {
	result := CheckResult{Name: "lexicon"}
	if lex == nil {
		result.Detail = "no lexicon loaded"
		return result
	}
	if lex.Ignore.Len() == 0 || lex.Interrupt.Len() == 0 {
		result.Detail = "ignore or interrupt set is empty"
		return result
	}

	var overlap []string
	for p := range lex.Interrupt {
		if lex.Ignore.Contains(p) {
			overlap = append(overlap, p)
		}
	}
	sort.Strings(overlap)

	result.OK = true
	result.Detail = fmt.Sprintf("ignore=%d interrupt=%d filler=%d stop=%d",
		lex.Ignore.Len(), lex.Interrupt.Len(), lex.Filler.Len(), lex.StopWords.Len())
	if len(overlap) > 0 {
		result.Detail += fmt.Sprintf("; interrupt/ignore overlap: %v", overlap)
	}
	return result
}
