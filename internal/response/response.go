package response

import "github.com/Psyborgs-git/coddle.ai-demo/internal"

// APIResponse is the envelope every endpoint returns. Exactly one of Data
// or Error is set; Meta carries endpoint-specific extras such as the
// schedule confidence.
type APIResponse struct {
	Data  interface{}        `json:"data,omitempty"`
	Meta  map[string]any     `json:"meta,omitempty"`
	Error *internal.AppError `json:"error,omitempty"`
}

func Success(data interface{}, meta map[string]any) APIResponse {
	return APIResponse{Data: data, Meta: meta}
}

func Failure(status int, msg string) APIResponse {
	return APIResponse{Error: internal.NewAppError(status, msg)}
}
