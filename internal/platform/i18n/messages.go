package i18n

// Message keys shared by the narrative fallbacks and the play loop.
const (
	KeyNarrativeStartFallback = "narrative.start_fallback"
	KeyNarrativeDeathFallback = "narrative.death_fallback"
	KeyNarrativeDegraded      = "narrative.degraded_notice"
	KeyNarrativeOfflineTurn   = "narrative.offline_turn"
	KeyRollPrompt             = "turn.roll_prompt"
)

var enUS = map[string]string{
	KeyNarrativeStartFallback: "The road behind you fades into mist. Ahead, a lantern burns in the window of a roadside inn. Your story begins here: what do you do?",
	KeyNarrativeDeathFallback: "Your strength fails and the world grows quiet. This is where the tale of your hero ends.",
	KeyNarrativeDegraded:      "The storyteller is offline; play continues with a simplified narration.",
	KeyNarrativeOfflineTurn:   "The tale presses on. Your action is noted, though the storyteller has little to add.",
	KeyRollPrompt:             "A roll is required",
}

var ptBR = map[string]string{
	KeyNarrativeStartFallback: "A estrada atrás de você some na névoa. Adiante, uma lamparina queima na janela de uma estalagem. Sua história começa aqui: o que você faz?",
	KeyNarrativeDeathFallback: "Suas forças se esvaem e o mundo silencia. É aqui que a história do seu herói termina.",
	KeyNarrativeDegraded:      "O narrador está offline; o jogo continua com uma narração simplificada.",
	KeyNarrativeOfflineTurn:   "A história segue adiante. Sua ação foi registrada, mas o narrador pouco tem a acrescentar.",
	KeyRollPrompt:             "Uma rolagem é necessária",
}

var esES = map[string]string{
	KeyNarrativeStartFallback: "El camino a tu espalda se desvanece en la niebla. Delante, un farol arde en la ventana de una posada. Tu historia comienza aquí: ¿qué haces?",
	KeyNarrativeDeathFallback: "Tus fuerzas fallan y el mundo enmudece. Aquí termina la historia de tu héroe.",
	KeyNarrativeDegraded:      "El narrador está desconectado; la partida continúa con una narración simplificada.",
	KeyNarrativeOfflineTurn:   "La historia sigue adelante. Tu acción queda registrada, aunque el narrador poco tiene que añadir.",
	KeyRollPrompt:             "Se requiere una tirada",
}
