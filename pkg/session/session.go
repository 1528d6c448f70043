package session

import (
	"github.com/kriti1799/Resume-Builder/pkg/profile"
)

// Speaker values for conversation turns.
const (
	SpeakerAssistant = "assistant"
	SpeakerUser      = "user"
)

// Turn represents one entry in a session's conversation history.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// State represents the lifecycle state of an interview session. A session
// is in exactly one state at a time, derived from its fields.
type State string

const (
	// StateExtracting means the engine may call the extractor; no question
	// is outstanding and the session is not complete.
	StateExtracting State = "extracting"
	// StateAwaitingHuman means exactly one question is outstanding.
	StateAwaitingHuman State = "awaitingHuman"
	// StateDone means the interview is finished and the profile is final.
	StateDone State = "done"
)

// Session is the durable snapshot of one candidate interview, keyed by a
// caller-chosen identifier (typically an email address).
type Session struct {
	ID         string `json:"id"`
	SourceText string `json:"source_text"`

	// History is append-only; insertion order is replayed into the
	// extractor each turn and must never be rearranged.
	History []Turn `json:"history"`

	Profile profile.CandidateProfile `json:"profile"`

	// PendingPrompt holds the one outstanding question when the session is
	// paused for human input. Empty otherwise.
	PendingPrompt string `json:"pending_prompt,omitempty"`

	RemainingEstimate int    `json:"remaining_estimate"`
	FocusField        string `json:"focus_field,omitempty"`
	IsComplete        bool   `json:"is_complete"`
}

// New creates a fresh session in the extracting state.
func New(id, sourceText string) (sess Session) {
	sess = Session{
		ID:         id,
		SourceText: sourceText,
		History:    []Turn{},
	}
	return sess
}

// State derives the session's current lifecycle state.
func (s *Session) State() (state State) {
	switch {
	case s.IsComplete:
		state = StateDone
	case s.PendingPrompt != "":
		state = StateAwaitingHuman
	default:
		state = StateExtracting
	}
	return state
}

// AssistantTurns counts assistant entries in the history. The turn-budget
// governor compares this against the configured maximum.
func (s *Session) AssistantTurns() (count int) {
	for _, turn := range s.History {
		if turn.Speaker == SpeakerAssistant {
			count++
		}
	}
	return count
}

// UserTurns counts user entries in the history.
func (s *Session) UserTurns() (count int) {
	for _, turn := range s.History {
		if turn.Speaker == SpeakerUser {
			count++
		}
	}
	return count
}

// Clone returns a deep copy so callers can mutate without aliasing the
// stored snapshot.
func (s *Session) Clone() (out Session) {
	out = *s
	out.History = make([]Turn, len(s.History))
	copy(out.History, s.History)
	return out
}
