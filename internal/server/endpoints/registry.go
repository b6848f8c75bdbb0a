package endpoints

import (
	"github.com/jackzampolin/formfill/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Form catalog endpoints
		&ListFormsEndpoint{},
		&GetFormEndpoint{},

		// Session endpoints
		&CreateSessionEndpoint{},
		&ListSessionsEndpoint{},
		&GetSessionEndpoint{},
		&DeleteSessionEndpoint{},
		&UpdateFieldsEndpoint{},
		&ExtractEndpoint{},
		&NextPageEndpoint{},
		&BackPageEndpoint{},
		&SubmitSessionEndpoint{},
		&SessionSummaryEndpoint{},

		// LLM call history endpoints
		&ListLLMCallsEndpoint{},
		&GetLLMCallEndpoint{},
		&LLMCallCountsEndpoint{},
		&LLMCallStatsEndpoint{},

		// Prompt endpoints
		&ListPromptsEndpoint{},
		&GetPromptEndpoint{},

		// Settings endpoints
		&ListSettingsEndpoint{},
		&GetSettingEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},
	}
}

// FormCommands returns endpoints for form catalog operations.
// This groups form-related commands under "forms" subcommand.
func FormCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListFormsEndpoint{},
		&GetFormEndpoint{},
	}
}

// SessionCommands returns endpoints for session operations.
// This groups session-related commands under "sessions" subcommand.
func SessionCommands() []api.Endpoint {
	return []api.Endpoint{
		&CreateSessionEndpoint{},
		&ListSessionsEndpoint{},
		&GetSessionEndpoint{},
		&DeleteSessionEndpoint{},
		&UpdateFieldsEndpoint{},
		&ExtractEndpoint{},
		&NextPageEndpoint{},
		&BackPageEndpoint{},
		&SubmitSessionEndpoint{},
		&SessionSummaryEndpoint{},
	}
}

// SettingsCommands returns endpoints for settings operations.
// This groups settings-related commands under "settings" subcommand.
func SettingsCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListSettingsEndpoint{},
		&GetSettingEndpoint{},
	}
}

// LLMCallCommands returns endpoints for LLM call history operations.
// This groups llmcall-related commands under "llmcalls" subcommand.
func LLMCallCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListLLMCallsEndpoint{},
		&GetLLMCallEndpoint{},
		&LLMCallCountsEndpoint{},
		&LLMCallStatsEndpoint{},
	}
}

// PromptCommands returns endpoints for prompt operations.
func PromptCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListPromptsEndpoint{},
		&GetPromptEndpoint{},
	}
}
