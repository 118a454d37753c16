package constant

const (
	// Message senders. SenderAssistant exists in the schema enum but no code
	// path constructs it; only user turns and normalized dispatch replies are
	// ever written.
	MessageSenderUser      = "user"
	MessageSenderSystem    = "system"
	MessageSenderAssistant = "assistant"

	// SessionTitleTimeFormat renders the creation timestamp of an untitled
	// session, e.g. "Chat Jan 2, 3:04 PM".
	SessionTitleTimeFormat = "Jan 2, 3:04 PM"
	SessionTitlePrefix     = "Chat "

	// DispatchTestMessage is the sentinel content used to validate a webhook
	// endpoint without touching conversation history.
	DispatchTestMessage = "PING"
)
