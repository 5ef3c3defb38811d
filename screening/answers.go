package screening

// Canonical answer values. Every recognized input token for a step maps to
// one of these; the result payload carries them verbatim.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"

	AvailabilityFullTime = "full_time"
	AvailabilityPartTime = "part_time"
	AvailabilityLow      = "low"

	StartNow   = "now"
	StartSoon  = "soon"
	StartLater = "later"

	EnglishGood = "good"
	EnglishOK   = "ok"
	EnglishLow  = "low"

	StudentsKids   = "kids"
	StudentsTeens  = "teens"
	StudentsAdults = "adults"
	StudentsAll    = "all"
)

// Answers is the append-only per-session answer record. A field is set at
// most once; the machine never revisits an answered question.
type Answers struct {
	TeamRole           string `json:"team_role,omitempty"`
	WeeklyAvailability string `json:"weekly_availability,omitempty"`
	StartDate          string `json:"start_date,omitempty"`
	Setup              string `json:"setup,omitempty"`
	SOP                string `json:"sop,omitempty"`
	EnglishLevel       string `json:"english_level,omitempty"`
	Age                int    `json:"age,omitempty"`
	StudentTypes       string `json:"student_types,omitempty"`
}
