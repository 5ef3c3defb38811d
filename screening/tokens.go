package screening

import "strings"

// Per-step token tables: normalized input -> canonical answer value.
// Numeric shorthand, canonical keywords and Spanish synonyms all collapse to
// the same canonical value, so "1", "YES", "SI" and "SÍ" are one answer.
// Built once as static data; Q7 (age) is a free-text number and has no table.
var stepTokens = map[Step]map[string]string{
	StepQ1: {
		"1": AnswerYes, "YES": AnswerYes, "SI": AnswerYes, "SÍ": AnswerYes, "Y": AnswerYes,
		"2": AnswerNo, "NO": AnswerNo, "N": AnswerNo,
	},
	StepQ2: {
		"1": AvailabilityFullTime, "FT": AvailabilityFullTime, "FULLTIME": AvailabilityFullTime, "FULL-TIME": AvailabilityFullTime,
		"2": AvailabilityPartTime, "PT": AvailabilityPartTime, "PARTTIME": AvailabilityPartTime, "PART-TIME": AvailabilityPartTime,
		"3": AvailabilityLow, "LOW": AvailabilityLow, "<15": AvailabilityLow, "LESS": AvailabilityLow, "MENOS": AvailabilityLow,
	},
	StepQ3: {
		"1": StartNow, "NOW": StartNow, "INMEDIATO": StartNow, "INMEDIATAMENTE": StartNow,
		"2": StartSoon, "2WEEKS": StartSoon, "SOON": StartSoon, "PRONTO": StartSoon, "1-2": StartSoon,
		"3": StartLater, "1MONTH": StartLater, "LATER": StartLater, "MAS": StartLater, "MÁS": StartLater, "1 MES": StartLater,
	},
	StepQ4: {
		"1": AnswerYes, "YES": AnswerYes, "SI": AnswerYes, "SÍ": AnswerYes,
		"2": AnswerNo, "NO": AnswerNo,
	},
	StepQ5: {
		"1": AnswerYes, "YES": AnswerYes, "SI": AnswerYes, "SÍ": AnswerYes,
		"2": AnswerNo, "NO": AnswerNo,
	},
	StepQ6: {
		"1": EnglishGood, "GOOD": EnglishGood, "BUENO": EnglishGood, "B1": EnglishGood, "B2": EnglishGood, "C1": EnglishGood, "C2": EnglishGood,
		"2": EnglishOK, "DEFENDERME": EnglishOK, "ME DEFIENDO": EnglishOK, "BASIC": EnglishOK, "BASICO": EnglishOK, "BÁSICO": EnglishOK,
		"3": EnglishLow, "POCO": EnglishLow, "NO MUCHO": EnglishLow, "NO SE": EnglishLow, "NO": EnglishLow, "NADA": EnglishLow,
	},
	StepQ8: {
		"1": StudentsKids,
		"2": StudentsTeens,
		"3": StudentsAdults,
		"4": StudentsAll,
	},
}

// Normalize prepares raw user input for token matching: trimmed, upper-cased.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// tokenFor resolves normalized input against the step's token table.
func tokenFor(step Step, normalized string) (string, bool) {
	table, ok := stepTokens[step]
	if !ok {
		return "", false
	}
	value, ok := table[normalized]
	return value, ok
}
