package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"tiktok-ads-agent/internal/domain/entity"
	"tiktok-ads-agent/internal/domain/port"
)

// recordingAdsAPI captures what each handler forwards to the backend.
type recordingAdsAPI struct {
	fakeAdsAPI
	lastMusicID  string
	lastFileInfo string
	lastPayload  entity.AdPayload
	lastToken    string
}

func (r *recordingAdsAPI) ValidateMusicID(ctx context.Context, musicID string) port.MusicResult {
	r.lastMusicID = musicID
	return r.fakeAdsAPI.ValidateMusicID(ctx, musicID)
}

func (r *recordingAdsAPI) UploadCustomMusic(ctx context.Context, fileInfo string) port.UploadResult {
	r.lastFileInfo = fileInfo
	return r.fakeAdsAPI.UploadCustomMusic(ctx, fileInfo)
}

func (r *recordingAdsAPI) SubmitAd(ctx context.Context, payload entity.AdPayload, accessToken string) port.SubmitResult {
	r.lastPayload = payload
	r.lastToken = accessToken
	return r.fakeAdsAPI.SubmitAd(ctx, payload, accessToken)
}

func TestToolRegistry_New(t *testing.T) {
	t.Run("should reject nil ads API", func(t *testing.T) {
		if _, err := NewToolRegistry(nil, "tok", zerolog.Nop()); !errors.Is(err, ErrNilAdsAPI) {
			t.Errorf("error = %v, want %v", err, ErrNilAdsAPI)
		}
	})

	t.Run("should expose exactly the three campaign tools", func(t *testing.T) {
		registry, err := NewToolRegistry(&fakeAdsAPI{}, "tok", zerolog.Nop())
		if err != nil {
			t.Fatalf("NewToolRegistry() failed: %v", err)
		}

		tools := registry.Tools()
		if len(tools) != 3 {
			t.Fatalf("tool count = %d, want 3", len(tools))
		}

		want := []string{ToolValidateMusicID, ToolUploadCustomMusic, ToolSubmitAd}
		for i, name := range want {
			if tools[i].Name != name {
				t.Errorf("tools[%d] = %s, want %s", i, tools[i].Name, name)
			}
		}
	})
}

func TestToolRegistry_Schemas(t *testing.T) {
	registry, _ := NewToolRegistry(&fakeAdsAPI{}, "tok", zerolog.Nop())

	tests := []struct {
		tool         string
		wantRequired []string
		optional     []string
	}{
		{
			tool:         ToolValidateMusicID,
			wantRequired: []string{"music_id"},
		},
		{
			tool:         ToolUploadCustomMusic,
			wantRequired: []string{"file_info"},
		},
		{
			tool:         ToolSubmitAd,
			wantRequired: []string{"campaign_name", "objective", "ad_text", "cta", "music_option"},
			optional:     []string{"music_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool, found := registry.GetTool(tt.tool)
			if !found {
				t.Fatalf("GetTool(%s) not found", tt.tool)
			}
			if !tool.HasSchema() {
				t.Fatal("tool has no input schema")
			}
			for _, field := range tt.wantRequired {
				if !tool.HasRequired(field) {
					t.Errorf("%s should be required", field)
				}
				if _, ok := tool.InputSchema[field]; !ok {
					t.Errorf("%s missing from schema properties", field)
				}
			}
			for _, field := range tt.optional {
				if tool.HasRequired(field) {
					t.Errorf("%s should be optional", field)
				}
				if _, ok := tool.InputSchema[field]; !ok {
					t.Errorf("%s missing from schema properties", field)
				}
			}
		})
	}
}

func TestToolRegistry_ToolParams(t *testing.T) {
	registry, _ := NewToolRegistry(&fakeAdsAPI{}, "tok", zerolog.Nop())

	params := registry.ToolParams()
	if len(params) != 3 {
		t.Fatalf("params count = %d, want 3", len(params))
	}
	for _, p := range params {
		if p.Name == "" || p.Description == "" || len(p.InputSchema) == 0 {
			t.Errorf("incomplete tool param: %+v", p)
		}
	}
}

func TestToolRegistry_Execute_Dispatch(t *testing.T) {
	api := &recordingAdsAPI{
		fakeAdsAPI: fakeAdsAPI{
			musicResult:  port.MusicResult{Valid: true, MusicID: "music_123", Title: "Track 123"},
			uploadResult: port.UploadResult{Success: true, MusicID: "music_custom_0042"},
			submitResult: port.SubmitResult{Success: true, AdID: "ad_000123", CampaignID: "cmp_00045"},
		},
	}
	registry, _ := NewToolRegistry(api, "act.test.token", zerolog.Nop())
	ctx := context.Background()

	t.Run("should dispatch validate_music_id", func(t *testing.T) {
		result, isError := registry.Execute(ctx, ToolValidateMusicID, json.RawMessage(`{"music_id":"music_123"}`))
		if isError {
			t.Errorf("unexpected error result: %s", result)
		}
		if api.lastMusicID != "music_123" {
			t.Errorf("forwarded music id = %q", api.lastMusicID)
		}
		if !strings.Contains(result, "Track 123") {
			t.Errorf("result = %s", result)
		}
	})

	t.Run("should dispatch upload_custom_music", func(t *testing.T) {
		result, isError := registry.Execute(ctx, ToolUploadCustomMusic, json.RawMessage(`{"file_info":"beat.mp3, 3.2MB"}`))
		if isError {
			t.Errorf("unexpected error result: %s", result)
		}
		if api.lastFileInfo != "beat.mp3, 3.2MB" {
			t.Errorf("forwarded file info = %q", api.lastFileInfo)
		}
	})

	t.Run("should dispatch submit_tiktok_ad with captured token", func(t *testing.T) {
		input := json.RawMessage(`{
			"campaign_name": "Summer Sale",
			"objective": "Traffic",
			"ad_text": "Big discounts!",
			"cta": "Shop Now",
			"music_option": "none"
		}`)
		result, isError := registry.Execute(ctx, ToolSubmitAd, input)
		if isError {
			t.Errorf("unexpected error result: %s", result)
		}
		if api.lastToken != "act.test.token" {
			t.Errorf("token = %q, want the registry's captured token", api.lastToken)
		}
		if api.lastPayload.CampaignName != "Summer Sale" || api.lastPayload.Objective != entity.ObjectiveTraffic {
			t.Errorf("payload = %+v", api.lastPayload)
		}
		if !strings.Contains(result, "ad_000123") {
			t.Errorf("result = %s", result)
		}
	})

	t.Run("should mark backend failures as error results", func(t *testing.T) {
		api.musicResult = port.MusicResult{
			Valid: false,
			Failure: &port.Failure{
				ErrorType: port.ErrorTypeMusic,
				ErrorCode: "MUSIC_NOT_FOUND",
				Message:   "no such track",
			},
		}
		result, isError := registry.Execute(ctx, ToolValidateMusicID, json.RawMessage(`{"music_id":"music_999"}`))
		if !isError {
			t.Error("backend failure should set the error flag")
		}
		if !strings.Contains(result, "MUSIC_NOT_FOUND") {
			t.Errorf("result = %s", result)
		}
	})
}

func TestToolRegistry_Execute_ProtocolFailures(t *testing.T) {
	registry, _ := NewToolRegistry(&fakeAdsAPI{}, "tok", zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name     string
		tool     string
		input    json.RawMessage
		wantCode string
	}{
		{
			name:     "should reject unknown tool",
			tool:     "drop_tables",
			input:    json.RawMessage(`{}`),
			wantCode: port.CodeUnknownTool,
		},
		{
			name:     "should reject missing required argument",
			tool:     ToolValidateMusicID,
			input:    json.RawMessage(`{}`),
			wantCode: port.CodeInvalidArguments,
		},
		{
			name:     "should reject malformed JSON",
			tool:     ToolValidateMusicID,
			input:    json.RawMessage(`{"music_id":`),
			wantCode: port.CodeInvalidArguments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, isError := registry.Execute(ctx, tt.tool, tt.input)
			if !isError {
				t.Fatal("expected error result")
			}
			var failure port.Failure
			if err := json.Unmarshal([]byte(result), &failure); err != nil {
				t.Fatalf("result is not a structured failure: %s", result)
			}
			if failure.ErrorCode != tt.wantCode {
				t.Errorf("error code = %s, want %s", failure.ErrorCode, tt.wantCode)
			}
			if !failure.RetryPossible {
				t.Error("protocol failures should be retryable")
			}
		})
	}
}

func TestToolRegistry_Execute_PanicContainment(t *testing.T) {
	registry, _ := NewToolRegistry(&fakeAdsAPI{panicOnMusic: true}, "tok", zerolog.Nop())

	result, isError := registry.Execute(context.Background(), ToolValidateMusicID, json.RawMessage(`{"music_id":"music_123"}`))
	if !isError {
		t.Fatal("panic should surface as an error result")
	}
	var failure port.Failure
	if err := json.Unmarshal([]byte(result), &failure); err != nil {
		t.Fatalf("result is not a structured failure: %s", result)
	}
	if failure.ErrorCode != port.CodeToolPanic {
		t.Errorf("error code = %s, want %s", failure.ErrorCode, port.CodeToolPanic)
	}
}
