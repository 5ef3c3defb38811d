package screening

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Accepted bounds for the free-text age answer. Outside the range is a
	// reject, not a disqualification.
	minAge = 1
	maxAge = 120
)

type Config struct {
	// MinWeeklyHours disqualifies availability tiers below the requirement:
	// the low tier (<15 hrs) fails when MinWeeklyHours >= 1, the part-time
	// tier (15-29 hrs) fails when MinWeeklyHours > 29.
	MinWeeklyHours int
	// MaxAge fails candidates whose reported age is >= this value.
	MaxAge int
}

func DefaultConfig() Config {
	return Config{MinWeeklyHours: 15, MaxAge: 35}
}

type Result string

const (
	ResultPass Result = "pass"
	ResultFail Result = "fail"
)

type ActionKind string

const (
	// ActionAdvance moves the session to Outcome.Next and sends that
	// step's question.
	ActionAdvance ActionKind = "advance"
	// ActionTerminate ends the session with Outcome.Result; on fail,
	// Outcome.FailStep selects the disqualification message.
	ActionTerminate ActionKind = "terminate"
	// ActionReject leaves the session untouched and re-sends the current
	// step's question with a corrective hint.
	ActionReject ActionKind = "reject"
)

type Outcome struct {
	Kind     ActionKind
	Next     Step
	Result   Result
	Reason   string
	FailStep Step
	// Answers is the updated answer record. Unchanged on reject.
	Answers Answers
}

func advance(next Step, answers Answers) Outcome {
	return Outcome{Kind: ActionAdvance, Next: next, Answers: answers}
}

func pass(answers Answers) Outcome {
	return Outcome{Kind: ActionTerminate, Result: ResultPass, Answers: answers}
}

func fail(step Step, reason string, answers Answers) Outcome {
	return Outcome{Kind: ActionTerminate, Result: ResultFail, Reason: reason, FailStep: step, Answers: answers}
}

func reject(answers Answers) Outcome {
	return Outcome{Kind: ActionReject, Answers: answers}
}

// Evaluate computes the transition for one inbound answer. It is a pure
// function: callers persist the outcome and dispatch the outbound action.
func Evaluate(step Step, answers Answers, rawInput string, cfg Config) Outcome {
	input := Normalize(rawInput)

	switch step {
	case StepQ1:
		value, ok := tokenFor(step, input)
		if !ok {
			return reject(answers)
		}
		answers.TeamRole = value
		if value == AnswerNo {
			return fail(StepQ1, "not team role", answers)
		}
		return advance(StepQ2, answers)

	case StepQ2:
		value, ok := tokenFor(step, input)
		if !ok {
			return reject(answers)
		}
		answers.WeeklyAvailability = value
		switch value {
		case AvailabilityPartTime:
			// Part-time covers 15-29 hrs; insufficient only when the
			// requirement exceeds that band.
			if cfg.MinWeeklyHours > 29 {
				return fail(StepQ2, "low", answers)
			}
		case AvailabilityLow:
			if cfg.MinWeeklyHours >= 1 {
				return fail(StepQ2, "low", answers)
			}
		}
		return advance(StepQ3, answers)

	case StepQ3:
		value, ok := tokenFor(step, input)
		if !ok {
			return reject(answers)
		}
		answers.StartDate = value
		return advance(StepQ4, answers)

	case StepQ4:
		value, ok := tokenFor(step, input)
		if !ok {
			return reject(answers)
		}
		answers.Setup = value
		if value == AnswerNo {
			return fail(StepQ4, "no stable setup", answers)
		}
		return advance(StepQ5, answers)

	case StepQ5:
		value, ok := tokenFor(step, input)
		if !ok {
			return reject(answers)
		}
		answers.SOP = value
		if value == AnswerNo {
			return fail(StepQ5, "not willing to follow SOP", answers)
		}
		return advance(StepQ6, answers)

	case StepQ6:
		value, ok := tokenFor(step, input)
		if !ok {
			return reject(answers)
		}
		answers.EnglishLevel = value
		if value == EnglishLow {
			return fail(StepQ6, "english_low", answers)
		}
		return advance(StepQ7, answers)

	case StepQ7:
		age, err := strconv.Atoi(strings.TrimSpace(rawInput))
		if err != nil || age < minAge || age > maxAge {
			return reject(answers)
		}
		answers.Age = age
		if age >= cfg.MaxAge {
			return fail(StepQ7, fmt.Sprintf("age >= %d", cfg.MaxAge), answers)
		}
		return advance(StepQ8, answers)

	case StepQ8:
		value, ok := tokenFor(step, input)
		if !ok {
			return reject(answers)
		}
		answers.StudentTypes = value
		return pass(answers)
	}

	// Unknown step in a stored session (e.g. a record written by an older
	// build). Treat as reject so the caller re-prompts rather than crashes.
	return reject(answers)
}
