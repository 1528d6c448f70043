package upskill

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kriti1799/Resume-Builder/pkg/profile"
	"github.com/kriti1799/Resume-Builder/pkg/session"
	"github.com/pkg/errors"
)

// Generator is the language-model boundary for plan generation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (responseText string, err error)
}

// Stage values of the upskilling conversation.
type Stage string

const (
	// StageTargetConfirmation confirms the role, level, and focus areas.
	StageTargetConfirmation Stage = "target_job_confirmation"
	// StageFollowUps probes skill gaps and learning capacity.
	StageFollowUps Stage = "follow_ups"
	// StagePlanGeneration produces the action plan.
	StagePlanGeneration Stage = "plan_generation"
	// StageRefinement iterates on the plan with user feedback.
	StageRefinement Stage = "refinement"
)

// ErrEmptyInput is returned when a stage receives a blank user response.
var ErrEmptyInput = errors.New("empty user input")

// Agent guides a candidate from a target job description to a concrete
// upskilling action plan through a fixed sequence of stages.
type Agent struct {
	generator Generator

	prof     profile.CandidateProfile
	targetJD string

	conversation   []session.Turn
	stage          Stage
	plan           string
	targetResponse string
}

// NewAgent creates an upskilling agent.
func NewAgent(generator Generator) (agent *Agent) {
	agent = &Agent{generator: generator}
	return agent
}

// Start begins the conversation for a profile and target job description,
// returning the opening clarifying question.
func (a *Agent) Start(ctx context.Context, prof profile.CandidateProfile, targetJD string) (question string, err error) {
	a.prof = prof
	a.targetJD = targetJD
	a.conversation = []session.Turn{}
	a.stage = StageTargetConfirmation
	a.plan = ""

	jd := a.targetJD
	if jd == "" {
		jd = "(none)"
	}
	prompt := fmt.Sprintf(`User provided target job description:
%s

Ask one concise clarifying question to confirm main role, level, and key focus areas.`, jd)

	question, err = a.generator.Generate(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "target confirmation question failed")
		return question, err
	}

	a.addTurn(session.SpeakerAssistant, question)
	return question, err
}

// HandleResponse advances the conversation with one user reply, returning
// the agent's next message. During refinement the reply is treated as plan
// feedback.
func (a *Agent) HandleResponse(ctx context.Context, userInput string) (reply string, err error) {
	if strings.TrimSpace(userInput) == "" {
		err = ErrEmptyInput
		return reply, err
	}

	switch a.stage {
	case StageTargetConfirmation:
		a.addTurn(session.SpeakerUser, userInput)
		a.targetResponse = userInput
		a.stage = StageFollowUps
		reply, err = a.askFollowUps(ctx)
	case StageFollowUps:
		a.addTurn(session.SpeakerUser, userInput)
		a.stage = StagePlanGeneration
		reply, err = a.generatePlan(ctx, userInput)
	case StageRefinement:
		reply, err = a.refinePlan(ctx, userInput)
	default:
		err = errors.Errorf("unexpected stage: %s", a.stage)
	}

	return reply, err
}

// Plan returns the current action plan, empty before plan generation.
func (a *Agent) Plan() (plan string) {
	plan = a.plan
	return plan
}

// Stage returns the current conversation stage.
func (a *Agent) Stage() (stage Stage) {
	stage = a.stage
	return stage
}

// Transcript returns the ordered conversation so far.
func (a *Agent) Transcript() (transcript []session.Turn) {
	transcript = make([]session.Turn, len(a.conversation))
	copy(transcript, a.conversation)
	return transcript
}

// askFollowUps asks focused gap-analysis questions.
func (a *Agent) askFollowUps(ctx context.Context) (reply string, err error) {
	profileJSON, _ := json.Marshal(a.prof)

	prompt := fmt.Sprintf(`Based on:
1. User profile JSON: %s
2. Target job: %s
3. User understanding: %s

Ask 3-4 focused follow-up questions to identify skill gaps, experience gaps, and realistic learning capacity.`,
		string(profileJSON), truncate(a.targetJD, 1500), truncate(a.targetResponse, 600))

	reply, err = a.generator.Generate(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "follow-up questions failed")
		return reply, err
	}

	a.addTurn(session.SpeakerAssistant, reply)
	return reply, err
}

// generatePlan produces the action plan and moves to refinement.
func (a *Agent) generatePlan(ctx context.Context, followupAnswer string) (reply string, err error) {
	profileJSON, _ := json.Marshal(a.prof)

	prompt := fmt.Sprintf(`Generate a practical upskill action plan with:
- timeline (weeks/months)
- specific skills to learn
- learning resources and project ideas
- checkpoints/milestones

User Profile: %s
Target Job: %s
User Follow-up Answers: %s`,
		string(profileJSON), truncate(a.targetJD, 1500), truncate(followupAnswer, 1200))

	var plan string
	plan, err = a.generator.Generate(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "plan generation failed")
		return reply, err
	}

	a.plan = plan
	a.stage = StageRefinement

	reply = "Here is your personalized upskill action plan:\n\n" + plan
	a.addTurn(session.SpeakerAssistant, reply)
	return reply, err
}

// refinePlan reworks the current plan from user feedback.
func (a *Agent) refinePlan(ctx context.Context, feedback string) (reply string, err error) {
	a.addTurn(session.SpeakerUser, "Refinement request: "+feedback)

	prompt := fmt.Sprintf(`Refine this action plan based on the user's feedback.

Current plan:
%s

User feedback: %s`, a.plan, feedback)

	var refined string
	refined, err = a.generator.Generate(ctx, prompt)
	if err != nil {
		err = errors.Wrap(err, "plan refinement failed")
		return reply, err
	}

	a.plan = refined

	reply = "Here is the refined plan:\n\n" + refined
	a.addTurn(session.SpeakerAssistant, reply)
	return reply, err
}

// addTurn appends to the ordered transcript.
func (a *Agent) addTurn(speaker, text string) {
	a.conversation = append(a.conversation, session.Turn{Speaker: speaker, Text: text})
}

// truncate bounds s to max runes.
func truncate(s string, max int) (out string) {
	out = s
	if len(out) <= max {
		return out
	}
	runes := []rune(out)
	if len(runes) > max {
		out = string(runes[:max])
	}
	return out
}
