package chatbot

// WelcomeTurnMarker is recorded as the user side of the welcome turn.
const WelcomeTurnMarker = "[INICIO_CONVERSACION]"

// WelcomeMessage opens every conversation.
const WelcomeMessage = `¡Hola! 👋 Soy tu asistente personal de tallas.

Puedo ayudarte a encontrar la talla perfecta para cualquier prenda. Solo necesito saber:
- ¿Qué producto te interesa?
- ¿Para qué cliente es la recomendación?

Puedes preguntarme cosas como:
• "¿Qué talla me recomiendas para el producto P001?"
• "Busco un abrigo para el cliente C0001"
• "¿Cuál es la mejor talla para User5 del producto P010?"`

// HelpMessage answers help requests.
const HelpMessage = `¡Estoy aquí para ayudarte! 🤗

**¿Qué puedo hacer por ti?**

📏 **Recomendaciones de talla:**
- "¿Qué talla me recomiendas para el producto P001?"
- "Talla para User5 del abrigo P010"

🔍 **Buscar productos:**
- "Busca abrigos de lana"
- "Productos con ajuste slim"

👤 **Clientes:** se identifican como C0001, C0002... o User1, User2...

🛍️ **Productos:** se identifican como P001, P002... y puedes buscarlos por material o ajuste.

🖼️ **Avatar:** añade "muéstrame cómo queda" y un color (azul, rojo, verde...) para ver una imagen.`

// Clarifying answers and failures
const (
	NeedsClientMessage = "Para darte una recomendación de talla, necesito saber para qué cliente es. " +
		"¿Podrías especificar el ID del cliente (ej: C0001) o buscar uno?"

	NeedsProductMessage = "Para recomendarte una talla, necesito saber qué producto te interesa. " +
		"¿Podrías especificar el ID del producto (ej: P001) o buscar uno?"

	NotInitializedMessage = "Lo siento, el sistema no está inicializado correctamente. " +
		"Por favor, verifica la configuración."

	ErrorMessage = "Lo siento, ocurrió un error al procesar tu mensaje. Por favor, inténtalo de nuevo."
)
