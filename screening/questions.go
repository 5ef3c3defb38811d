package screening

// Question texts, invalid-input hints and disqualification messages, in the
// Spanish wording the recruiting team ships. Steps without a fail branch
// (Q3, Q8) have no entry in failMessages.

var questionText = map[Step]string{
	StepQ1: "*Q1/8* 🧩\nEn SpanishVIP buscamos un rol de *equipo* (no estilo marketplace).\n¿Buscas un rol fijo y comprometido con el equipo?\n1) ✅ Sí\n2) ❌ No",
	StepQ2: "*Q2/8* 🗓️\n¿Cuántas horas por semana puedes comprometerte de forma constante?\n1) 💪 Tiempo completo (30+ hrs/sem)\n2) 🙂 Medio tiempo (15–29 hrs/sem)\n3) 🥲 Menos de 15 hrs/sem",
	StepQ3: "*Q3/8* ⏱️\n¿Cuándo podrías empezar?\n1) 🚀 Inmediatamente\n2) 📆 En 1–2 semanas\n3) 🗓️ En 1 mes o más",
	StepQ4: "*Q4/8* 💻🎧\n¿Tienes internet estable + un lugar tranquilo para enseñar?\n1) ✅ Sí\n2) ❌ No",
	StepQ5: "*Q5/8* 📚✨\n¿Estás de acuerdo en seguir el currículum y los SOPs del equipo?\n1) ✅ Sí\n2) ❌ No",
	StepQ6: "*Q6/8* 🇺🇸🗣️\n¿Cuál es tu nivel de inglés?\n1) ✅ Bueno\n2) 🙂 Me defiendo\n3) ❌ No sé mucho",
	StepQ7: "*Q7/8* 🎂\n¿Cuál es tu edad?\n(Escribe solo el número, por ejemplo: 24)",
	StepQ8: "*Q8/8* 👩‍🏫\n¿A qué tipo de estudiantes has enseñado?\n1) Niños 👧🧒\n2) Jóvenes 🎓\n3) Adultos 💼\n4) Todos los anteriores 🌟",
}

var invalidHint = map[Step]string{
	StepQ1: "😊 Responde solo con 1 o 2.",
	StepQ2: "😊 Responde solo con 1, 2 o 3.",
	StepQ3: "😊 Responde solo con 1, 2 o 3.",
	StepQ4: "😊 Responde solo con 1 o 2.",
	StepQ5: "😊 Responde solo con 1 o 2.",
	StepQ6: "😊 Responde solo con 1, 2 o 3.",
	StepQ7: "😊 Por favor escribe tu edad en números (ej: 24).",
	StepQ8: "😊 Responde solo con 1, 2, 3 o 4.",
}

var failMessages = map[Step]string{
	StepQ1: "📛 Gracias por tu sinceridad.\nEn este momento estamos buscando *miembros de equipo* con compromiso y disponibilidad constante.\n\n🙏 Te deseamos lo mejor y gracias por postularte.",
	StepQ2: "📛 ¡Gracias!\nPor ahora necesitamos mínimo *15 horas/semana* de disponibilidad constante.\n\n🙏 Te agradecemos tu tiempo y tu interés en SpanishVIP.",
	StepQ4: "📛 Gracias por tu respuesta.\nPara poder dar clases con calidad, necesitamos *internet estable* y un *espacio tranquilo*.\n\n🙏 Te agradecemos tu tiempo.",
	StepQ5: "📛 Gracias por tu sinceridad.\nPara este rol es importante seguir nuestro sistema y procesos.\n\n🙏 Te deseamos lo mejor y gracias por postularte.",
	StepQ6: "📛 ¡Gracias!\nPor ahora necesitamos al menos un nivel de inglés para comunicarnos en el equipo (aunque sea _\"me defiendo\"_).\n\n🙏 Te agradecemos tu tiempo y tu interés en SpanishVIP.",
	StepQ7: "📛 ¡Gracias!\nEn este momento estamos buscando candidatos *menores de 35 años* para este rol.\n\n🙏 Te agradecemos tu tiempo y tu interés en SpanishVIP.",
}

// Option is one quick-reply button for the interactive message format. IDs
// are the numeric shorthand, so a button tap and a typed digit resolve
// through the same token table.
type Option struct {
	ID    string
	Label string
}

var stepOptions = map[Step][]Option{
	StepQ1: {{ID: "1", Label: "✅ Sí"}, {ID: "2", Label: "❌ No"}},
	StepQ2: {{ID: "1", Label: "💪 Tiempo completo"}, {ID: "2", Label: "🙂 Medio tiempo"}, {ID: "3", Label: "🥲 Menos de 15 hrs"}},
	StepQ3: {{ID: "1", Label: "🚀 Inmediatamente"}, {ID: "2", Label: "📆 En 1–2 semanas"}, {ID: "3", Label: "🗓️ En 1 mes o más"}},
	StepQ4: {{ID: "1", Label: "✅ Sí"}, {ID: "2", Label: "❌ No"}},
	StepQ5: {{ID: "1", Label: "✅ Sí"}, {ID: "2", Label: "❌ No"}},
	StepQ6: {{ID: "1", Label: "✅ Bueno"}, {ID: "2", Label: "🙂 Me defiendo"}, {ID: "3", Label: "❌ No sé mucho"}},
	StepQ8: {{ID: "1", Label: "Niños 👧🧒"}, {ID: "2", Label: "Jóvenes 🎓"}, {ID: "3", Label: "Adultos 💼"}, {ID: "4", Label: "Todos 🌟"}},
}

func Question(step Step) string { return questionText[step] }

// Prompt combines the invalid-input hint with the question resend in one
// message to keep the outbound message count down.
func Prompt(step Step) string {
	return invalidHint[step] + "\n\n" + questionText[step]
}

// FailMessage returns the user-facing disqualification text for the step a
// fail branch fired on.
func FailMessage(step Step) (string, bool) {
	msg, ok := failMessages[step]
	return msg, ok
}

// Options returns the quick-reply buttons for the step, or nil for
// free-text questions (Q7 takes a typed number only).
func Options(step Step) []Option {
	return stepOptions[step]
}
