package checker

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/rfielding/farctl/formula"
)

// DiagnosticKind enumerates the non-fatal warnings checker can surface,
// per spec §6's "a single textual warning is emitted on empty
// EG_fair(⊤)" requirement, recast as a structured record (SPEC_FULL.md
// §6's "Design Notes: Warning channel" resolution).
type DiagnosticKind string

// DiagEmptyFairUniverse is raised when a Fair (AR)CTL path quantifier's
// EG_fair(⊤) is empty: no α-fair path exists under the stated
// fairness assumptions.
const DiagEmptyFairUniverse DiagnosticKind = "empty_fair_universe"

// Diagnostic is one structured warning. Actions/UFair/WFair/SFair hold
// pre-rendered text so a sink need not know about formula.Phi.
type Diagnostic struct {
	Kind    DiagnosticKind
	Actions string
	UFair   []string
	WFair   []string
	SFair   []string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s{actions=%s, ufair=%v, wfair=%v, sfair=%v}", d.Kind, d.Actions, d.UFair, d.WFair, d.SFair)
}

// DiagnosticSink receives non-fatal warnings. Checker never fails a
// check because of one; it is purely an injected side channel,
// keeping the evaluator itself pure per the Design Notes.
type DiagnosticSink interface {
	Warn(Diagnostic)
}

// PtermSink renders diagnostics as a colored warning line via pterm,
// the library the retrieval pack's terex REPL uses for its own
// colored console output.
type PtermSink struct{}

func (PtermSink) Warn(d Diagnostic) {
	pterm.Warning.Printfln("no α-fair path exists: %s", d.String())
}

// NopSink discards every diagnostic; useful in tests that only care
// about the returned StateSet.
type NopSink struct{}

func (NopSink) Warn(Diagnostic) {}

func renderAction(a *formula.Phi) string {
	if a == nil {
		return "true"
	}
	switch a.Kind {
	case formula.KindBool:
		return fmt.Sprintf("%v", a.Value)
	case formula.KindName:
		return fmt.Sprintf("%v", a.Value)
	case formula.KindNot:
		return "!" + renderAction(a.Children[0])
	case formula.KindAnd:
		return "(" + renderAction(a.Children[0]) + " & " + renderAction(a.Children[1]) + ")"
	case formula.KindOr:
		return "(" + renderAction(a.Children[0]) + " | " + renderAction(a.Children[1]) + ")"
	default:
		return string(a.Kind)
	}
}

func renderEvent(e *formula.Phi) string {
	if e == nil {
		return "<nil>"
	}
	if e.IsActionEvent() {
		return "@" + renderAction(e.Children[0])
	}
	return renderAction(e)
}

func renderFairness(records []formula.FairnessRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		if r.Condition == nil {
			out[i] = renderEvent(r.Then)
			continue
		}
		out[i] = renderEvent(r.Condition) + " THEN " + renderEvent(r.Then)
	}
	return out
}
