package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// Stored verbatim as the assistant reply when the upstream webhook
	// fails, times out, or returns a non-success status.
	AssistantFallbackMessage = "Sorry, an error occurred. Please try again."

	// Titles auto-derived from the first user message are cut at this
	// many runes, with an ellipsis appended when truncated.
	ConversationTitleMaxLen = 50

	DefaultConversationTitle = "New conversation"
)
