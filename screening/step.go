// Package screening holds the candidate-screening state machine: a fixed
// eight-question sequence evaluated as a pure function of the current step,
// the normalized input and the configured thresholds. The package never
// performs I/O; it returns an Outcome the orchestrator executes.
package screening

type Step string

const (
	StepQ1 Step = "Q1" // team role commitment
	StepQ2 Step = "Q2" // weekly availability tier
	StepQ3 Step = "Q3" // start date
	StepQ4 Step = "Q4" // internet + quiet space
	StepQ5 Step = "Q5" // willing to follow SOPs
	StepQ6 Step = "Q6" // english level
	StepQ7 Step = "Q7" // age (free-text number)
	StepQ8 Step = "Q8" // student types taught
)

// Order is the full forward-only step sequence. Transitions either move to
// the immediately following step or jump to a terminal result; they never
// regress.
var Order = [...]Step{StepQ1, StepQ2, StepQ3, StepQ4, StepQ5, StepQ6, StepQ7, StepQ8}

func FirstStep() Step { return StepQ1 }

func (s Step) Valid() bool {
	switch s {
	case StepQ1, StepQ2, StepQ3, StepQ4, StepQ5, StepQ6, StepQ7, StepQ8:
		return true
	}
	return false
}

// next returns the step that follows s in Order. The last step has no
// successor; reaching it with an accepted answer always terminates.
func (s Step) next() (Step, bool) {
	for i, step := range Order {
		if step == s && i+1 < len(Order) {
			return Order[i+1], true
		}
	}
	return "", false
}
