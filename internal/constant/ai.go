package constant

// Intent names (fixed taxonomy)
const (
	IntentFactualQuestion  = "factual_question"
	IntentDocumentSearch   = "document_search"
	IntentDocumentAnalysis = "document_analysis"
	IntentWebSearch        = "web_search"
	IntentAppCommand       = "app_command"
	IntentConversation     = "conversation"
)

// Chat roles
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

// Pseudo-providers reported in the response envelope when the generation
// gateway was never reached.
const (
	ProviderWebSearch  = "web_search"
	ProviderAppCommand = "app_command"
	ProviderDefault    = "default"
	ProviderError      = "error"
)

// Query processing states (one turn of the orchestrator)
const (
	StateReceived           = "RECEIVED"
	StateClassified         = "CLASSIFIED"
	StateShortcutDispatched = "SHORTCUT_DISPATCHED"
	StateSearchEnriched     = "SEARCH_ENRICHED"
	StatePlain              = "PLAIN"
	StateGenerating         = "GENERATING"
	StateRecorded           = "RECORDED"
	StateReturned           = "RETURNED"
)
