package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog"

	"tiktok-ads-agent/internal/domain/entity"
	"tiktok-ads-agent/internal/domain/port"
)

// Names of the tools exposed to the model.
const (
	ToolValidateMusicID   = "validate_music_id"
	ToolUploadCustomMusic = "upload_custom_music"
	ToolSubmitAd          = "submit_tiktok_ad"
)

var ErrNilAdsAPI = errors.New("ads API cannot be nil")

// ValidateMusicInput is the argument object for validate_music_id.
type ValidateMusicInput struct {
	MusicID string `json:"music_id" jsonschema_description:"The music ID to validate (e.g. 'music_123')."`
}

// UploadMusicInput is the argument object for upload_custom_music.
type UploadMusicInput struct {
	FileInfo string `json:"file_info" jsonschema_description:"Information about the music file to upload (name, format, size)."`
}

// SubmitAdInput is the argument object for submit_tiktok_ad.
type SubmitAdInput struct {
	CampaignName string `json:"campaign_name" jsonschema_description:"Name of the campaign (minimum 3 characters)."`
	Objective    string `json:"objective" jsonschema:"enum=Traffic,enum=Conversions" jsonschema_description:"Campaign objective."`
	AdText       string `json:"ad_text" jsonschema_description:"Ad text (maximum 100 characters)."`
	CTA          string `json:"cta" jsonschema_description:"Call to action, e.g. 'Shop Now' or 'Learn More'."`
	MusicID      string `json:"music_id,omitempty" jsonschema_description:"Music ID (required for Conversions, optional for Traffic)."`
	MusicOption  string `json:"music_option" jsonschema:"enum=existing,enum=custom,enum=none" jsonschema_description:"Type of music being used."`
}

// toolHandler executes one tool against the ads backend. The returned value
// is marshaled into the tool result; isError marks structured failures.
type toolHandler func(ctx context.Context, input json.RawMessage) (result interface{}, isError bool)

// ToolRegistry declares the operations the model may call and dispatches
// requested calls into the ads backend. The descriptors are built once at
// construction and shared read-only.
//
// Dispatch is where protocol-integrity errors are contained: an unknown tool
// name, malformed arguments, or a panicking backend all come back as
// tool-result-shaped failures instead of aborting the session.
type ToolRegistry struct {
	api         port.AdsAPI
	accessToken string
	tools       []entity.Tool
	handlers    map[string]toolHandler
	logger      zerolog.Logger
}

// NewToolRegistry builds the registry over the given ads backend. The access
// token is captured here so the model never sees or supplies credentials.
func NewToolRegistry(api port.AdsAPI, accessToken string, logger zerolog.Logger) (*ToolRegistry, error) {
	if api == nil {
		return nil, ErrNilAdsAPI
	}

	r := &ToolRegistry{
		api:         api,
		accessToken: accessToken,
		handlers:    make(map[string]toolHandler),
		logger:      logger,
	}

	if err := r.register(
		ToolValidateMusicID,
		"Validate a TikTok music ID to check if it exists in the library.",
		generateSchema[ValidateMusicInput](),
		r.handleValidateMusic,
	); err != nil {
		return nil, err
	}
	if err := r.register(
		ToolUploadCustomMusic,
		"Upload a custom music file and get a music ID.",
		generateSchema[UploadMusicInput](),
		r.handleUploadMusic,
	); err != nil {
		return nil, err
	}
	if err := r.register(
		ToolSubmitAd,
		"Submit the completed ad campaign to the TikTok Ads API. Only call this when ALL required information has been collected and validated.",
		generateSchema[SubmitAdInput](),
		r.handleSubmitAd,
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *ToolRegistry) register(name, description string, schema toolSchema, handler toolHandler) error {
	tool, err := entity.NewTool(name, description)
	if err != nil {
		return err
	}
	if err := tool.AddInputSchema(schema.Properties, schema.Required); err != nil {
		return err
	}
	r.tools = append(r.tools, *tool)
	r.handlers[name] = handler
	return nil
}

// Tools returns a copy of all tool descriptors.
func (r *ToolRegistry) Tools() []entity.Tool {
	result := make([]entity.Tool, len(r.tools))
	copy(result, r.tools)
	return result
}

// ToolParams returns the descriptors in the shape the model backend consumes.
func (r *ToolRegistry) ToolParams() []port.ToolParam {
	params := make([]port.ToolParam, len(r.tools))
	for i, tool := range r.tools {
		params[i] = port.ToolParam{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
			Required:    tool.RequiredFields,
		}
	}
	return params
}

// GetTool retrieves a tool descriptor by name.
func (r *ToolRegistry) GetTool(name string) (*entity.Tool, bool) {
	for _, tool := range r.tools {
		if tool.Name == name {
			t := tool
			return &t, true
		}
	}
	return nil, false
}

// Execute dispatches one tool call and returns the serialized result plus an
// error flag. It never returns a Go error: every failure mode, including an
// unknown tool, bad arguments, or a panic inside the backend, is converted
// into a structured failure the model can read.
func (r *ToolRegistry) Execute(ctx context.Context, name string, input json.RawMessage) (result string, isError bool) {
	tool, found := r.GetTool(name)
	if !found {
		r.logger.Warn().Str("tool", name).Msg("model requested unknown tool")
		return failureJSON(port.Failure{
			ErrorType:       port.ErrorTypeProtocol,
			ErrorCode:       port.CodeUnknownTool,
			Message:         fmt.Sprintf("tool %q is not available", name),
			SuggestedAction: "Use one of the declared tools.",
			RetryPossible:   true,
		}), true
	}

	if err := tool.ValidateInput(input); err != nil {
		r.logger.Warn().Str("tool", name).Err(err).Msg("rejected tool arguments")
		return failureJSON(port.Failure{
			ErrorType:       port.ErrorTypeProtocol,
			ErrorCode:       port.CodeInvalidArguments,
			Message:         fmt.Sprintf("invalid arguments for %s: %v", name, err),
			SuggestedAction: "Resend the call with arguments matching the tool schema.",
			RetryPossible:   true,
		}), true
	}

	// The session must survive a faulting backend: recover and hand the
	// model a structured failure instead.
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Str("tool", name).Interface("panic", rec).Msg("tool execution panicked")
			result = failureJSON(port.Failure{
				ErrorType:       port.ErrorTypeAPI,
				ErrorCode:       port.CodeToolPanic,
				Message:         fmt.Sprintf("internal fault while executing %s", name),
				SuggestedAction: "Try the call again.",
				RetryPossible:   true,
			})
			isError = true
		}
	}()

	payload, failed := r.handlers[name](ctx, input)
	data, err := json.Marshal(payload)
	if err != nil {
		return failureJSON(port.Failure{
			ErrorType:     port.ErrorTypeAPI,
			ErrorCode:     "RESULT_ENCODING_FAILED",
			Message:       fmt.Sprintf("could not encode result of %s", name),
			RetryPossible: true,
		}), true
	}

	r.logger.Debug().Str("tool", name).Bool("is_error", failed).RawJSON("input", input).Msg("tool executed")
	return string(data), failed
}

func (r *ToolRegistry) handleValidateMusic(ctx context.Context, input json.RawMessage) (interface{}, bool) {
	var args ValidateMusicInput
	if err := json.Unmarshal(input, &args); err != nil {
		return badArguments(ToolValidateMusicID, err), true
	}
	res := r.api.ValidateMusicID(ctx, args.MusicID)
	return res, !res.Valid
}

func (r *ToolRegistry) handleUploadMusic(ctx context.Context, input json.RawMessage) (interface{}, bool) {
	var args UploadMusicInput
	if err := json.Unmarshal(input, &args); err != nil {
		return badArguments(ToolUploadCustomMusic, err), true
	}
	res := r.api.UploadCustomMusic(ctx, args.FileInfo)
	return res, !res.Success
}

func (r *ToolRegistry) handleSubmitAd(ctx context.Context, input json.RawMessage) (interface{}, bool) {
	var args SubmitAdInput
	if err := json.Unmarshal(input, &args); err != nil {
		return badArguments(ToolSubmitAd, err), true
	}
	payload := entity.AdPayload{
		CampaignName: args.CampaignName,
		Objective:    entity.Objective(args.Objective),
		AdText:       args.AdText,
		CTA:          args.CTA,
		MusicID:      args.MusicID,
		MusicOption:  entity.MusicOption(args.MusicOption),
	}
	res := r.api.SubmitAd(ctx, payload, r.accessToken)
	return res, !res.Success
}

func badArguments(tool string, err error) port.Failure {
	return port.Failure{
		ErrorType:       port.ErrorTypeProtocol,
		ErrorCode:       port.CodeInvalidArguments,
		Message:         fmt.Sprintf("invalid arguments for %s: %v", tool, err),
		SuggestedAction: "Resend the call with arguments matching the tool schema.",
		RetryPossible:   true,
	}
}

func failureJSON(f port.Failure) string {
	data, err := json.Marshal(f)
	if err != nil {
		return `{"error_type":"API_ERROR","error_code":"RESULT_ENCODING_FAILED","message":"failed to encode failure","retry_possible":true}`
	}
	return string(data)
}

// toolSchema is the reflected JSON schema of a tool's argument struct.
type toolSchema struct {
	Properties map[string]interface{}
	Required   []string
}

// generateSchema reflects a schema from the tool's input struct so the
// declared parameters can never drift from what the handlers decode.
func generateSchema[T any]() toolSchema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	properties := make(map[string]interface{})
	if schema.Properties != nil {
		if data, err := json.Marshal(schema.Properties); err == nil {
			_ = json.Unmarshal(data, &properties)
		}
	}

	return toolSchema{
		Properties: properties,
		Required:   schema.Required,
	}
}
