package bot

// Fixed user-facing texts outside the question catalog.
const (
	msgOptOutConfirmed = "Listo ✅ No te escribiremos más por aquí. Si quieres volver, escribe START."
	msgStartDuplicate  = "Ya iniciamos ✅ Responde con 1/2 según la pregunta."
	msgRateLimited     = "Estás enviando mensajes demasiado rápido. Por favor, espera un momento."
	msgNoSession       = "Escribe START para comenzar 😊"
	msgRecover         = "Lo sentimos, algo salió mal. Por favor, escribe *RESTART* para empezar de nuevo."
	msgPong            = "pong"
)

// DefaultHandoffLink is the recruiter contact the pass message points to
// when no custom link is configured.
const DefaultHandoffLink = "https://wa.me/573022379539?text=Hi%20Maria%2C%20I%20passed%20screening%20and%20would%20like%20to%20schedule%20my%20interview."

func passMessage(handoffLink string) string {
	if handoffLink == "" {
		handoffLink = DefaultHandoffLink
	}
	return "🎉 *¡Excelente! Has pasado el pre-filtro* ✅\n\n" +
		"🧑‍💼 Siguiente paso: hablar con una persona del equipo para coordinar tu *primera entrevista*.\n\n" +
		"👉 Escribe aquí a *Maria Camila* para continuar:\n" +
		handoffLink +
		"\n\n" +
		"💬 _Mensaje sugerido:_\n" +
		"\"Hola Maria, pasé el pre-filtro de SpanishVIP. Mi nombre es ___ y mi correo es ___.\""
}
