package port

import (
	"context"

	"tiktok-ads-agent/internal/domain/entity"
)

// Error types carried by Failure. Simulated backend failures are values of
// these types, never Go errors: they flow back into the transcript so the
// model can react to them conversationally.
const (
	ErrorTypeAuth       = "AUTH_ERROR"
	ErrorTypeValidation = "VALIDATION_ERROR"
	ErrorTypeMusic      = "INVALID_MUSIC_ID"
	ErrorTypeUpload     = "UPLOAD_FAILED"
	ErrorTypeRateLimit  = "RATE_LIMITED"
	ErrorTypeAPI        = "API_ERROR"
	ErrorTypeProtocol   = "PROTOCOL_ERROR"
)

// Error codes for protocol-integrity failures raised locally by the
// conversation engine when the model emits a malformed tool call. These are
// never forwarded to the ads backend.
const (
	CodeUnknownTool      = "UNKNOWN_TOOL"
	CodeInvalidArguments = "INVALID_ARGUMENTS"
	CodeToolPanic        = "TOOL_PANIC"
)

// Failure is the structured error shape shared by every backend operation.
// SuggestedAction tells the user how to recover; RetryPossible tells the
// model whether retrying the same call can succeed.
type Failure struct {
	ErrorType       string `json:"error_type"`
	ErrorCode       string `json:"error_code"`
	Message         string `json:"message"`
	SuggestedAction string `json:"suggested_action,omitempty"`
	RetryPossible   bool   `json:"retry_possible"`
}

// TokenResult is the outcome of an access token validation.
type TokenResult struct {
	Valid        bool     `json:"valid"`
	AdvertiserID string   `json:"advertiser_id,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
	*Failure
}

// MusicResult is the outcome of a music library lookup. Metadata fields are
// set only on a hit; lookups are deterministic (same id, same result).
type MusicResult struct {
	Valid           bool   `json:"valid"`
	MusicID         string `json:"music_id,omitempty"`
	Title           string `json:"music_title,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Message         string `json:"message,omitempty"`
	*Failure
}

// UploadResult is the outcome of a custom music upload. On success MusicID
// holds a freshly generated library id usable in a subsequent submission.
type UploadResult struct {
	Success bool   `json:"success"`
	MusicID string `json:"music_id,omitempty"`
	Message string `json:"message,omitempty"`
	*Failure
}

// SubmitResult is the outcome of an ad submission.
type SubmitResult struct {
	Success    bool                   `json:"success"`
	AdID       string                 `json:"ad_id,omitempty"`
	CampaignID string                 `json:"campaign_id,omitempty"`
	Message    string                 `json:"message,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	*Failure
}

// AdsAPI is the outbound dependency on the advertising platform. The mock
// implementation simulates the platform's validation and failure behavior;
// a production integration would sit behind the same interface.
//
// ValidateToken and ValidateMusicID are deterministic. UploadCustomMusic and
// SubmitAd carry randomized outcomes whose probabilities and randomness
// source are injected at construction, so tests can pin both branches.
type AdsAPI interface {
	// ValidateToken checks a bearer token and returns the advertiser
	// identity it grants.
	ValidateToken(ctx context.Context, token string) TokenResult

	// ValidateMusicID checks a music id against the platform library.
	ValidateMusicID(ctx context.Context, musicID string) MusicResult

	// UploadCustomMusic simulates uploading client audio (metadata only)
	// and returns a generated music id.
	UploadCustomMusic(ctx context.Context, fileInfo string) UploadResult

	// SubmitAd validates the draft and token, then submits the campaign.
	// Field validation always runs before the randomized outcome.
	SubmitAd(ctx context.Context, payload entity.AdPayload, accessToken string) SubmitResult
}
