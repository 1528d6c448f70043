package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kriti1799/Resume-Builder/pkg/config"
	"github.com/kriti1799/Resume-Builder/pkg/engine"
	"github.com/kriti1799/Resume-Builder/pkg/llm"
	"github.com/kriti1799/Resume-Builder/pkg/profile"
	"github.com/kriti1799/Resume-Builder/pkg/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var sessionID string

//nolint:gochecknoglobals // Cobra boilerplate
var profileOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var sessionDir string

//nolint:gochecknoglobals // Cobra boilerplate
var maxQuestions int

//nolint:gochecknoglobals // Cobra boilerplate
var interviewCmd = &cobra.Command{
	Use:   "interview <resume-file>",
	Short: "Interview you about your resume and build a structured profile",
	Long: `Extract a structured candidate profile from a resume text file.

Claude reads the resume, asks a few targeted questions about what's
missing or unclear, and writes the finished profile as JSON. Answer
"stop" (or quit/exit/skip/enough) at any point to finish with what has
been gathered so far.

Example:
  resume-builder interview resume.txt --output profile.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInterview,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(interviewCmd)
	interviewCmd.Flags().StringVar(&sessionID, "session", "", "Session ID (resume an interrupted interview)")
	interviewCmd.Flags().StringVar(&profileOutput, "output", "profile.json", "Output path for the profile JSON")
	interviewCmd.Flags().StringVar(&sessionDir, "session-dir", "", "Session store directory (default from config)")
	interviewCmd.Flags().IntVar(&maxQuestions, "max-questions", 0, "Maximum questions to ask (default from config)")
}

func runInterview(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	resumePath := args[0]

	// Load configuration
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	// Read resume text
	var resumeBytes []byte
	resumeBytes, err = os.ReadFile(resumePath)
	if err != nil {
		err = errors.Wrapf(err, "failed to read resume file: %s", resumePath)
		return err
	}
	resumeText := strings.TrimSpace(string(resumeBytes))
	if resumeText == "" {
		err = errors.Errorf("resume file is empty: %s", resumePath)
		return err
	}

	// Open the session store
	storeDir := sessionDir
	if storeDir == "" {
		storeDir = cfg.Defaults.SessionDir
	}

	var store *session.BadgerStore
	store, err = session.NewBadgerStore(storeDir, false)
	if err != nil {
		err = errors.Wrap(err, "failed to open session store")
		return err
	}
	defer store.Close()

	client := llm.NewClient(cfg.AnthropicAPIKey, cfg.GetExtractionModel())

	maxQ := maxQuestions
	if maxQ <= 0 {
		maxQ = cfg.Interview.MaxQuestions
	}
	eng := engine.New(store, client, maxQ)

	id := sessionID
	if id == "" {
		id = uuid.NewString()
	}

	if getVerbose() {
		fmt.Printf("Starting interview session %s\n", id)
	}

	fmt.Println("Reading your resume...")

	var result engine.TurnResult
	result, err = eng.Begin(ctx, id, resumeText)
	if errors.Is(err, engine.ErrSessionActive) {
		// A paused session with this id exists; resume it instead.
		fmt.Println("Resuming existing session.")
		result, err = resumePaused(ctx, store, id)
	}
	if err != nil {
		err = errors.Wrap(err, "failed to start interview")
		return err
	}

	result, err = answerLoop(ctx, eng, id, result)
	if err != nil {
		return err
	}

	err = profile.Save(result.Profile, profileOutput)
	if err != nil {
		err = errors.Wrap(err, "failed to save profile")
		return err
	}

	fmt.Printf("\nInterview complete. Profile saved to %s\n", profileOutput)
	return err
}

// resumePaused reconstructs a waiting-for-user turn from a stored session so
// an interrupted interview picks up at its pending question.
func resumePaused(ctx context.Context, store session.Store, id string) (result engine.TurnResult, err error) {
	var sess session.Session
	sess, err = store.Get(ctx, id)
	if err != nil {
		err = errors.Wrapf(err, "failed to load session %s", id)
		return result, err
	}

	if sess.State() != session.StateAwaitingHuman {
		err = errors.Errorf("session %s is %s, cannot resume", id, sess.State())
		return result, err
	}

	result = engine.TurnResult{
		Status:         engine.StatusWaitingForUser,
		Question:       sess.PendingPrompt,
		RemainingCount: sess.RemainingEstimate,
		FocusField:     sess.FocusField,
	}
	return result, err
}

// answerLoop runs the question-and-answer exchange until the interview
// completes.
func answerLoop(ctx context.Context, eng *engine.Engine, id string, result engine.TurnResult) (final engine.TurnResult, err error) {
	scanner := bufio.NewScanner(os.Stdin)

	for result.Status == engine.StatusWaitingForUser {
		fmt.Printf("\n%s\n", result.Question)
		if getVerbose() && result.FocusField != "" {
			fmt.Printf("(focus: %s, about %d questions left)\n", result.FocusField, result.RemainingCount)
		}
		fmt.Print("> ")

		if !scanner.Scan() {
			if scanner.Err() != nil {
				err = errors.Wrap(scanner.Err(), "failed to read answer")
				return final, err
			}
			// EOF on stdin finalizes with what we have.
			result, err = eng.SubmitAnswer(ctx, id, "stop")
			if err != nil {
				err = errors.Wrap(err, "failed to finalize interview")
				return final, err
			}
			break
		}

		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Println("(please answer, or type 'skip' to finish)")
			continue
		}

		var next engine.TurnResult
		next, err = eng.SubmitAnswer(ctx, id, answer)
		if errors.Is(err, engine.ErrExtractionFailed) {
			// Session state is untouched; the same answer may be retried.
			fmt.Printf("Warning: extraction failed (%v), please try again.\n", err)
			err = nil
			continue
		}
		if err != nil {
			err = errors.Wrap(err, "interview turn failed")
			return final, err
		}
		result = next
	}

	final = result
	return final, err
}
