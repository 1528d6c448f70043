package engine

import (
	"context"
	"strings"

	"github.com/kriti1799/Resume-Builder/pkg/llm"
	"github.com/kriti1799/Resume-Builder/pkg/profile"
	"github.com/kriti1799/Resume-Builder/pkg/session"
	"github.com/pkg/errors"
)

// DefaultMaxAssistantTurns is the hard cap on questions asked per interview.
// The extractor's own completeness signal is advisory; this cap guarantees
// the interview terminates.
const DefaultMaxAssistantTurns = 3

// Extractor is the boundary to the language-model extraction capability.
type Extractor interface {
	Extract(ctx context.Context, resumeText string, history []llm.Message, current profile.CandidateProfile) (result llm.ExtractionResult, err error)
}

// Status values returned to callers after each turn.
const (
	// StatusWaitingForUser means a question is pending and the session is
	// paused for human input.
	StatusWaitingForUser = "waiting_for_user"
	// StatusCompleted means the interview is done and the profile is final.
	StatusCompleted = "completed"
)

// TurnResult is the outcome of one engine operation.
type TurnResult struct {
	Status         string
	Question       string
	RemainingCount int
	FocusField     string
	Profile        profile.CandidateProfile
}

// stopTokens short-circuit the interview without another extraction call.
//
//nolint:gochecknoglobals // Fixed stop vocabulary
var stopTokens = map[string]bool{
	"stop":   true,
	"quit":   true,
	"exit":   true,
	"skip":   true,
	"enough": true,
}

// Engine drives the interview state machine: extracting, paused for a
// human answer, or done.
type Engine struct {
	store             session.Store
	extractor         Extractor
	maxAssistantTurns int
	locks             *keyedLocks
}

// New creates an engine. maxAssistantTurns of 0 selects the default cap.
func New(store session.Store, extractor Extractor, maxAssistantTurns int) (engine *Engine) {
	if maxAssistantTurns <= 0 {
		maxAssistantTurns = DefaultMaxAssistantTurns
	}
	engine = &Engine{
		store:             store,
		extractor:         extractor,
		maxAssistantTurns: maxAssistantTurns,
		locks:             newKeyedLocks(),
	}
	return engine
}

// Begin creates a session for the given resume text and runs the first
// extraction step. It fails if a session with that id already exists and
// is not done; a finished session may be restarted.
func (e *Engine) Begin(ctx context.Context, sessionID, sourceText string) (result TurnResult, err error) {
	unlock := e.locks.lock(sessionID)
	defer unlock()

	existing, getErr := e.store.Get(ctx, sessionID)
	if getErr == nil && existing.State() != session.StateDone {
		err = errors.Wrapf(ErrSessionActive, "session %s", sessionID)
		return result, err
	}
	if getErr != nil && !errors.Is(getErr, session.ErrNotFound) {
		err = errors.Wrapf(getErr, "failed to check session %s", sessionID)
		return result, err
	}

	sess := session.New(sessionID, sourceText)

	result, err = e.extractionStep(ctx, &sess)
	if err != nil {
		// Session is not persisted, so a retried Begin starts clean.
		return result, err
	}

	err = e.store.Put(ctx, sess)
	if err != nil {
		err = errors.Wrapf(err, "failed to persist session %s", sessionID)
		return result, err
	}

	return result, err
}

// SubmitAnswer resumes a paused session with one human answer. A stop token
// finalizes the profile as-is without another extraction call.
func (e *Engine) SubmitAnswer(ctx context.Context, sessionID, answerText string) (result TurnResult, err error) {
	unlock := e.locks.lock(sessionID)
	defer unlock()

	var sess session.Session
	sess, err = e.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			err = errors.Wrapf(session.ErrNotFound, "session %s", sessionID)
		}
		return result, err
	}

	if sess.State() != session.StateAwaitingHuman {
		err = errors.Wrapf(ErrNotAwaitingInput, "session %s is %s", sessionID, sess.State())
		return result, err
	}

	if stopTokens[strings.ToLower(strings.TrimSpace(answerText))] {
		sess.IsComplete = true
		sess.PendingPrompt = ""

		err = e.store.Put(ctx, sess)
		if err != nil {
			err = errors.Wrapf(err, "failed to persist session %s", sessionID)
			return result, err
		}

		result = TurnResult{Status: StatusCompleted, Profile: sess.Profile}
		return result, err
	}

	// Record the answered exchange, then resume extraction.
	sess.History = append(sess.History,
		session.Turn{Speaker: session.SpeakerAssistant, Text: sess.PendingPrompt},
		session.Turn{Speaker: session.SpeakerUser, Text: answerText},
	)
	sess.PendingPrompt = ""

	result, err = e.extractionStep(ctx, &sess)
	if err != nil {
		// The stored snapshot is untouched; the caller may retry safely.
		return result, err
	}

	err = e.store.Put(ctx, sess)
	if err != nil {
		err = errors.Wrapf(err, "failed to persist session %s", sessionID)
		return result, err
	}

	return result, err
}

// extractionStep calls the extractor once and applies the routing rules:
// extractor-reported completion, implicit completion on an empty question,
// the turn-budget governor, or pause for human input.
func (e *Engine) extractionStep(ctx context.Context, sess *session.Session) (result TurnResult, err error) {
	var res llm.ExtractionResult
	res, err = e.extractor.Extract(ctx, sess.SourceText, toMessages(sess.History), sess.Profile)
	if err != nil {
		err = &extractionError{sessionID: sess.ID, cause: err}
		return result, err
	}

	sess.Profile = res.Profile
	sess.FocusField = res.CurrentFocusField
	sess.RemainingEstimate = res.RemainingQuestionsCount
	if sess.RemainingEstimate < 0 {
		sess.RemainingEstimate = 0
	}

	message := strings.TrimSpace(res.AssistantMessage)

	switch {
	case res.IsComplete:
		sess.IsComplete = true
	case message == "":
		// Nothing left to ask; treat as implicit completion.
		sess.IsComplete = true
	case sess.AssistantTurns() >= e.maxAssistantTurns:
		// Turn budget exhausted; discard the proposed question.
		sess.IsComplete = true
	default:
		sess.PendingPrompt = message
		result = TurnResult{
			Status:         StatusWaitingForUser,
			Question:       message,
			RemainingCount: sess.RemainingEstimate,
			FocusField:     sess.FocusField,
		}
		return result, err
	}

	result = TurnResult{Status: StatusCompleted, Profile: sess.Profile}
	return result, err
}

// toMessages converts history turns to the extractor's wire format.
func toMessages(history []session.Turn) (messages []llm.Message) {
	messages = make([]llm.Message, len(history))
	for i, turn := range history {
		messages[i] = llm.Message{Role: turn.Speaker, Content: turn.Text}
	}
	return messages
}
