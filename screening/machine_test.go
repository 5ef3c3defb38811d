package screening

import "testing"

func TestEvaluateFullPassSequence(t *testing.T) {
	cfg := DefaultConfig()
	step := FirstStep()
	answers := Answers{}

	inputs := []string{"1", "2", "1", "1", "1", "2", "24", "3"}
	var last Outcome
	for i, input := range inputs {
		last = Evaluate(step, answers, input, cfg)
		if last.Kind == ActionReject {
			t.Fatalf("input %d (%q) rejected at step %s", i, input, step)
		}
		answers = last.Answers
		if last.Kind == ActionAdvance {
			step = last.Next
		}
	}

	if last.Kind != ActionTerminate || last.Result != ResultPass {
		t.Fatalf("final outcome = %+v, want terminate pass", last)
	}
	want := Answers{
		TeamRole:           AnswerYes,
		WeeklyAvailability: AvailabilityPartTime,
		StartDate:          StartNow,
		Setup:              AnswerYes,
		SOP:                AnswerYes,
		EnglishLevel:       EnglishOK,
		Age:                24,
		StudentTypes:       StudentsAdults,
	}
	if answers != want {
		t.Fatalf("answers = %+v, want %+v", answers, want)
	}
}

func TestEvaluateDisqualifications(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name       string
		step       Step
		input      string
		wantReason string
		wantStep   Step
	}{
		{name: "Q1 no", step: StepQ1, input: "2", wantReason: "not team role", wantStep: StepQ1},
		{name: "Q1 keyword no", step: StepQ1, input: "no", wantReason: "not team role", wantStep: StepQ1},
		{name: "Q2 low tier", step: StepQ2, input: "3", wantReason: "low", wantStep: StepQ2},
		{name: "Q4 no setup", step: StepQ4, input: "2", wantReason: "no stable setup", wantStep: StepQ4},
		{name: "Q5 no sop", step: StepQ5, input: "no", wantReason: "not willing to follow SOP", wantStep: StepQ5},
		{name: "Q6 low english", step: StepQ6, input: "nada", wantReason: "english_low", wantStep: StepQ6},
		{name: "Q7 over age", step: StepQ7, input: "35", wantReason: "age >= 35", wantStep: StepQ7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Evaluate(tc.step, Answers{}, tc.input, cfg)
			if out.Kind != ActionTerminate || out.Result != ResultFail {
				t.Fatalf("Evaluate() = %+v, want terminate fail", out)
			}
			if out.Reason != tc.wantReason {
				t.Fatalf("reason = %q, want %q", out.Reason, tc.wantReason)
			}
			if out.FailStep != tc.wantStep {
				t.Fatalf("fail step = %s, want %s", out.FailStep, tc.wantStep)
			}
			if _, ok := FailMessage(out.FailStep); !ok {
				t.Fatalf("no fail message for step %s", out.FailStep)
			}
		})
	}
}

func TestEvaluateHourThresholds(t *testing.T) {
	cases := []struct {
		name     string
		minHours int
		input    string
		wantFail bool
	}{
		{name: "low tier passes with zero requirement", minHours: 0, input: "3", wantFail: false},
		{name: "low tier fails with any requirement", minHours: 1, input: "3", wantFail: true},
		{name: "part time passes at 29", minHours: 29, input: "2", wantFail: false},
		{name: "part time fails at 30", minHours: 30, input: "2", wantFail: true},
		{name: "full time passes at 30", minHours: 30, input: "1", wantFail: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{MinWeeklyHours: tc.minHours, MaxAge: 35}
			out := Evaluate(StepQ2, Answers{}, tc.input, cfg)
			gotFail := out.Kind == ActionTerminate && out.Result == ResultFail
			if gotFail != tc.wantFail {
				t.Fatalf("Evaluate(minHours=%d, %q) fail = %v, want %v", tc.minHours, tc.input, gotFail, tc.wantFail)
			}
			if !tc.wantFail && out.Next != StepQ3 {
				t.Fatalf("next = %s, want Q3", out.Next)
			}
		})
	}
}

func TestEvaluateAgeValidation(t *testing.T) {
	cfg := DefaultConfig()
	for _, input := range []string{"abc", "200", "0", "-3", ""} {
		out := Evaluate(StepQ7, Answers{}, input, cfg)
		if out.Kind != ActionReject {
			t.Fatalf("Evaluate(Q7, %q) = %+v, want reject", input, out)
		}
		if out.Answers.Age != 0 {
			t.Fatalf("Evaluate(Q7, %q) set age = %d", input, out.Answers.Age)
		}
	}

	out := Evaluate(StepQ7, Answers{}, " 24 ", cfg)
	if out.Kind != ActionAdvance || out.Next != StepQ8 {
		t.Fatalf("Evaluate(Q7, \" 24 \") = %+v, want advance to Q8", out)
	}
	if out.Answers.Age != 24 {
		t.Fatalf("age = %d, want 24", out.Answers.Age)
	}

	// Configurable boundary: inclusive at MaxAge.
	custom := Config{MinWeeklyHours: 15, MaxAge: 30}
	if got := Evaluate(StepQ7, Answers{}, "30", custom); got.Result != ResultFail {
		t.Fatalf("Evaluate(Q7, \"30\", maxAge=30) = %+v, want fail", got)
	}
	if got := Evaluate(StepQ7, Answers{}, "29", custom); got.Kind != ActionAdvance {
		t.Fatalf("Evaluate(Q7, \"29\", maxAge=30) = %+v, want advance", got)
	}
}

func TestEvaluateRejectLeavesAnswersUnchanged(t *testing.T) {
	cfg := DefaultConfig()
	before := Answers{TeamRole: AnswerYes}
	out := Evaluate(StepQ2, before, "whatever", cfg)
	if out.Kind != ActionReject {
		t.Fatalf("Evaluate() = %+v, want reject", out)
	}
	if out.Answers != before {
		t.Fatalf("answers mutated on reject: %+v", out.Answers)
	}
}

func TestEvaluateSynonyms(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		step  Step
		input string
		want  Step
	}{
		{step: StepQ1, input: " sí ", want: StepQ2},
		{step: StepQ1, input: "y", want: StepQ2},
		{step: StepQ3, input: "inmediatamente", want: StepQ4},
		{step: StepQ3, input: "1 mes", want: StepQ4},
		{step: StepQ6, input: "me defiendo", want: StepQ7},
		{step: StepQ6, input: "C1", want: StepQ7},
	}
	for _, tc := range cases {
		t.Run(string(tc.step)+"/"+tc.input, func(t *testing.T) {
			out := Evaluate(tc.step, Answers{}, tc.input, cfg)
			if out.Kind != ActionAdvance || out.Next != tc.want {
				t.Fatalf("Evaluate(%s, %q) = %+v, want advance to %s", tc.step, tc.input, out, tc.want)
			}
		})
	}
}

func TestStepOrderIsForwardOnly(t *testing.T) {
	for i, step := range Order {
		next, ok := step.next()
		if i == len(Order)-1 {
			if ok {
				t.Fatalf("last step %s reported successor %s", step, next)
			}
			continue
		}
		if !ok || next != Order[i+1] {
			t.Fatalf("next(%s) = (%s, %v), want %s", step, next, ok, Order[i+1])
		}
	}
}
