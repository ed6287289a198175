// Package chatflow is the scripted symptom interview as a pure state
// machine. Callers feed user input to Step, run the returned effects, and
// report prediction outcomes back through Resolve.
package chatflow

import (
	"fmt"
	"strings"
	"time"
)

type Phase int

const (
	AwaitingSymptom Phase = iota
	Asking
	Finalizing
	Summary
)

func (p Phase) String() string {
	switch p {
	case AwaitingSymptom:
		return "awaiting-first-symptom"
	case Asking:
		return "asking-question"
	case Finalizing:
		return "finalizing"
	case Summary:
		return "summary"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Question is one yes/no prompt and the symptom token a yes adds.
type Question struct {
	Text    string
	Symptom string
}

var Questions = []Question{
	{Text: "Do you have fever?", Symptom: "fever"},
	{Text: "Are you feeling nausea?", Symptom: "nausea"},
	{Text: "Any body fatigue?", Symptom: "fatigue"},
	{Text: "Do you have joint pain?", Symptom: "joint_pain"},
	{Text: "Any vomiting?", Symptom: "vomiting"},
	{Text: "Do you have a cough?", Symptom: "cough"},
	{Text: "Are you experiencing weight loss?", Symptom: "weight_loss"},
}

const (
	MsgGreeting    = "Hi! I'm your AI Medical Assistant."
	MsgAskSymptom  = "Tell me one symptom you're experiencing."
	MsgGotIt       = "Got it. Let me ask a few questions…"
	MsgRestarted   = "Chat restarted"
	MsgAnalyzing   = "Analyzing your symptoms…"
	MsgStillBusy   = "Still analyzing, please wait."
	MsgFailed      = "Could not get a prediction right now. Send any message to try again."
	MsgReady       = "Your summary is ready below. Type \"export\" to save it or \"restart\" to begin again."
	MsgSummaryHelp = "Type \"export\" to save your summary or \"restart\" to begin again."

	ExportFilename = "Health-Summary.txt"
)

type State struct {
	Phase    Phase
	Question int
	Symptoms []string
	// Pending is true while a Predict effect is outstanding.
	Pending    bool
	Prediction string
	At         time.Time
}

// Effect is an instruction for the caller. The reducer never performs I/O.
type Effect interface {
	isEffect()
}

// Say shows a bot message.
type Say struct{ Text string }

// Predict asks the caller to call the prediction endpoint once.
type Predict struct{ Symptoms []string }

// Export hands over the summary document to save.
type Export struct {
	Filename string
	Document string
}

func (Say) isEffect()     {}
func (Predict) isEffect() {}
func (Export) isEffect()  {}

// Outcome is the result of a Predict effect.
type Outcome struct {
	Prediction string
	Err        error
	At         time.Time
}

// Start returns the initial state and greeting.
func Start() (State, []Effect) {
	return State{}, []Effect{Say{MsgGreeting}, Say{MsgAskSymptom}}
}

// Step applies one line of user input.
func Step(s State, input string) (State, []Effect) {
	text := strings.TrimSpace(input)
	if text == "" {
		return s, nil
	}
	lower := strings.ToLower(text)

	if lower == "restart" {
		return State{}, []Effect{Say{MsgRestarted}, Say{MsgAskSymptom}}
	}

	switch s.Phase {
	case AwaitingSymptom:
		next := State{Phase: Asking, Symptoms: []string{lower}}
		return next, []Effect{Say{MsgGotIt}, Say{Questions[0].Text}}

	case Asking:
		next := s
		if isAffirmative(lower) {
			next.Symptoms = appendSymptom(s.Symptoms, Questions[s.Question].Symptom)
		}
		next.Question++
		if next.Question < len(Questions) {
			return next, []Effect{Say{Questions[next.Question].Text}}
		}
		return finalize(next)

	case Finalizing:
		if s.Pending {
			return s, []Effect{Say{MsgStillBusy}}
		}
		return finalize(s)

	case Summary:
		if lower == "export" {
			return s, []Effect{Export{Filename: ExportFilename, Document: Document(s)}}
		}
		return s, []Effect{Say{MsgSummaryHelp}}
	}

	return s, nil
}

// Resolve records the outcome of the outstanding prediction. Outcomes that
// arrive when none is pending are ignored.
func Resolve(s State, o Outcome) (State, []Effect) {
	if s.Phase != Finalizing || !s.Pending {
		return s, nil
	}

	next := s
	next.Pending = false
	if o.Err != nil {
		return next, []Effect{Say{MsgFailed}}
	}

	next.Phase = Summary
	next.Prediction = o.Prediction
	next.At = o.At
	return next, []Effect{
		Say{"Most likely disease: " + o.Prediction},
		Say{MsgReady},
	}
}

// Document renders the summary as plain text.
func Document(s State) string {
	var b strings.Builder
	b.WriteString("Health Summary\n")
	b.WriteString("==============\n")
	if !s.At.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", s.At.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "Symptoms: %s\n", strings.Join(s.Symptoms, ", "))
	fmt.Fprintf(&b, "Most likely disease: %s\n", s.Prediction)
	b.WriteString("\nThis summary is not a medical diagnosis. Please consult a doctor.\n")
	return b.String()
}

func finalize(s State) (State, []Effect) {
	s.Phase = Finalizing
	s.Pending = true
	symptoms := append([]string(nil), s.Symptoms...)
	return s, []Effect{Say{MsgAnalyzing}, Predict{Symptoms: symptoms}}
}

func isAffirmative(lower string) bool {
	switch strings.Trim(lower, ".!") {
	case "yes", "y", "yeah", "yep":
		return true
	}
	return false
}

// appendSymptom copies so earlier states stay untouched.
func appendSymptom(symptoms []string, token string) []string {
	out := make([]string, 0, len(symptoms)+1)
	out = append(out, symptoms...)
	return append(out, token)
}
