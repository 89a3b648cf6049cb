// Package tiktok provides a mock implementation of the AdsAPI port that
// stands in for the real TikTok advertising platform. Results have the same
// structure a production integration would produce, but outcomes for the
// upload and submit operations are randomized to exercise the agent's
// error-handling paths.
//
// Token and music validation are deterministic. The allow-lists and success
// probabilities are configurable, and the randomness source is injected, so
// tests can pin every branch.
package tiktok

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"tiktok-ads-agent/internal/domain/entity"
	"tiktok-ads-agent/internal/domain/port"
)

// DefaultAccessToken is the demo bearer token used when none is configured.
const DefaultAccessToken = "act.demo.token.tiktok.ads.2024"

// MusicTrack is the library metadata returned for a valid music id.
type MusicTrack struct {
	Title           string
	DurationSeconds int
}

// Config controls the mock platform's behavior. Zero-value rates mean
// "always fail"; use DefaultConfig for the demo defaults.
type Config struct {
	// ValidTokens is the allow-list of accepted bearer tokens.
	ValidTokens []string

	// TokenPrefix makes any token with this prefix valid, mirroring the
	// platform's issued-token format. Empty disables the prefix rule.
	TokenPrefix string

	// AdvertiserID is the identity returned for a valid token.
	AdvertiserID string

	// Scopes is the permission set returned for a valid token.
	Scopes []string

	// MusicLibrary maps valid music ids to their metadata.
	MusicLibrary map[string]MusicTrack

	// UploadSuccessRate is the probability in [0,1] that an upload succeeds.
	UploadSuccessRate float64

	// SubmitSuccessRate is the probability in [0,1] that a structurally
	// valid submission succeeds.
	SubmitSuccessRate float64
}

// DefaultConfig returns the demo platform configuration: a small music
// library, two known tokens plus the "act." prefix rule, and the demo
// success rates (80% uploads, 75% submissions).
func DefaultConfig() Config {
	return Config{
		ValidTokens:  []string{"mock_token_12345", DefaultAccessToken},
		TokenPrefix:  "act.",
		AdvertiserID: "adv_123456",
		Scopes:       []string{"ad.create", "ad.read", "campaign.create"},
		MusicLibrary: map[string]MusicTrack{
			"music_123":          {Title: "Track 123", DurationSeconds: 30},
			"music_456":          {Title: "Track 456", DurationSeconds: 45},
			"music_789":          {Title: "Track 789", DurationSeconds: 22},
			"music_pop_2024":     {Title: "Pop 2024", DurationSeconds: 60},
			"music_trending_001": {Title: "Trending 001", DurationSeconds: 15},
			"music_viral_summer": {Title: "Viral Summer", DurationSeconds: 34},
			"music_hiphop_beat":  {Title: "Hiphop Beat", DurationSeconds: 51},
		},
		UploadSuccessRate: 0.8,
		SubmitSuccessRate: 0.75,
	}
}

// MockAdsAPI implements port.AdsAPI against in-memory state.
type MockAdsAPI struct {
	cfg    Config
	logger zerolog.Logger

	mu  sync.Mutex // guards rng, which is not goroutine safe
	rng *rand.Rand
}

// NewMockAdsAPI creates a mock platform with the given configuration.
// A nil rng gets a time-seeded source; tests pass a fixed-seed rand.New so
// randomized outcomes are exactly reproducible.
func NewMockAdsAPI(cfg Config, rng *rand.Rand, logger zerolog.Logger) *MockAdsAPI {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MockAdsAPI{
		cfg:    cfg,
		rng:    rng,
		logger: logger,
	}
}

// ValidateToken checks the bearer token against the allow-list and prefix
// rule. Deterministic: session startup depends on it.
func (m *MockAdsAPI) ValidateToken(_ context.Context, token string) port.TokenResult {
	if token == "" {
		return port.TokenResult{Failure: &port.Failure{
			ErrorType:       port.ErrorTypeAuth,
			ErrorCode:       "MISSING_TOKEN",
			Message:         "No access token provided.",
			SuggestedAction: "Set the access token and restart the session.",
			RetryPossible:   true,
		}}
	}

	for _, valid := range m.cfg.ValidTokens {
		if token == valid {
			return m.tokenAccepted()
		}
	}
	if m.cfg.TokenPrefix != "" && strings.HasPrefix(token, m.cfg.TokenPrefix) {
		return m.tokenAccepted()
	}

	if strings.Contains(strings.ToLower(token), "expired") {
		return port.TokenResult{Failure: &port.Failure{
			ErrorType:       port.ErrorTypeAuth,
			ErrorCode:       "TOKEN_EXPIRED",
			Message:         "Access token has expired.",
			SuggestedAction: "Obtain a fresh access token through OAuth.",
			RetryPossible:   true,
		}}
	}

	return port.TokenResult{Failure: &port.Failure{
		ErrorType:       port.ErrorTypeAuth,
		ErrorCode:       "INVALID_TOKEN",
		Message:         "Invalid access token.",
		SuggestedAction: "Obtain a valid access token through OAuth.",
		RetryPossible:   true,
	}}
}

func (m *MockAdsAPI) tokenAccepted() port.TokenResult {
	scopes := make([]string, len(m.cfg.Scopes))
	copy(scopes, m.cfg.Scopes)
	return port.TokenResult{
		Valid:        true,
		AdvertiserID: m.cfg.AdvertiserID,
		Scopes:       scopes,
	}
}

// ValidateMusicID checks a music id against the library. Deterministic:
// the same id always yields the same metadata or the same failure.
func (m *MockAdsAPI) ValidateMusicID(_ context.Context, musicID string) port.MusicResult {
	if track, ok := m.cfg.MusicLibrary[musicID]; ok {
		return port.MusicResult{
			Valid:           true,
			MusicID:         musicID,
			Title:           track.Title,
			DurationSeconds: track.DurationSeconds,
			Message:         "Music ID validated successfully.",
		}
	}

	if strings.HasPrefix(musicID, "music_") {
		return port.MusicResult{Failure: &port.Failure{
			ErrorType:       port.ErrorTypeMusic,
			ErrorCode:       "MUSIC_NOT_FOUND",
			Message:         "The music ID does not exist in TikTok's library.",
			SuggestedAction: "Choose a different track or upload custom music.",
			RetryPossible:   true,
		}}
	}

	return port.MusicResult{Failure: &port.Failure{
		ErrorType:       port.ErrorTypeMusic,
		ErrorCode:       "INVALID_FORMAT",
		Message:         "Invalid music ID format. Music IDs start with 'music_'.",
		SuggestedAction: "Provide an ID like 'music_123' or upload custom music.",
		RetryPossible:   true,
	}}
}

// UploadCustomMusic simulates uploading client audio. Succeeds with
// probability Config.UploadSuccessRate, returning a freshly generated id.
func (m *MockAdsAPI) UploadCustomMusic(_ context.Context, fileInfo string) port.UploadResult {
	m.mu.Lock()
	roll := m.rng.Float64()
	id := fmt.Sprintf("music_custom_%04d", m.rng.Intn(9000)+1000)
	m.mu.Unlock()

	if roll < m.cfg.UploadSuccessRate {
		m.logger.Debug().Str("music_id", id).Str("file_info", fileInfo).Msg("upload accepted")
		return port.UploadResult{
			Success: true,
			MusicID: id,
			Message: fmt.Sprintf("Music uploaded successfully. Generated ID: %s", id),
		}
	}

	return port.UploadResult{Failure: &port.Failure{
		ErrorType:       port.ErrorTypeUpload,
		ErrorCode:       "UPLOAD_FAILED",
		Message:         "Upload failed. Ensure the file is MP3/WAV and under 10MB.",
		SuggestedAction: "Check the file format and size, then try again.",
		RetryPossible:   true,
	}}
}

// fieldOrder fixes which validation failure is reported when several fields
// are invalid at once, keeping submissions deterministic for the same draft.
var fieldOrder = []string{"campaign_name", "objective", "ad_text", "cta", "music_id"}

var fieldCodes = map[string]string{
	"campaign_name": "INVALID_CAMPAIGN_NAME",
	"objective":     "INVALID_OBJECTIVE",
	"ad_text":       "AD_TEXT_TOO_LONG",
	"cta":           "MISSING_CTA",
	"music_id":      "MUSIC_REQUIRED",
}

// SubmitAd re-validates the token, enforces every field rule on the draft,
// and only then rolls the randomized outcome. Validation failures are always
// reported before any probabilistic branch runs.
func (m *MockAdsAPI) SubmitAd(ctx context.Context, payload entity.AdPayload, accessToken string) port.SubmitResult {
	if token := m.ValidateToken(ctx, accessToken); !token.Valid {
		return port.SubmitResult{Failure: token.Failure}
	}

	if err := payload.Validate(); err != nil {
		return port.SubmitResult{Failure: m.validationFailure(err)}
	}

	m.mu.Lock()
	roll := m.rng.Float64()
	adID := fmt.Sprintf("ad_%06d", m.rng.Intn(900000)+100000)
	campaignID := fmt.Sprintf("cmp_%05d", m.rng.Intn(90000)+10000)
	scenario := m.rng.Intn(len(submitFailures))
	m.mu.Unlock()

	if roll < m.cfg.SubmitSuccessRate {
		m.logger.Info().Str("ad_id", adID).Str("campaign_id", campaignID).Msg("ad campaign created")
		return port.SubmitResult{
			Success:    true,
			AdID:       adID,
			CampaignID: campaignID,
			Message:    "Ad campaign created successfully!",
			Payload:    payload.ToRequest(),
		}
	}

	failure := submitFailures[scenario]
	return port.SubmitResult{Failure: &failure}
}

// validationFailure maps the first failing field (in fixed order) to its
// field-specific error code.
func (m *MockAdsAPI) validationFailure(err error) *port.Failure {
	fieldErrs, ok := err.(validation.Errors)
	if !ok {
		return &port.Failure{
			ErrorType:     port.ErrorTypeValidation,
			ErrorCode:     "INVALID_PAYLOAD",
			Message:       err.Error(),
			RetryPossible: true,
		}
	}

	for _, field := range fieldOrder {
		fieldErr, found := fieldErrs[field]
		if !found {
			continue
		}
		code := fieldCodes[field]
		suggested := "Correct the field and submit again."
		if code == "MUSIC_REQUIRED" {
			suggested = "Validate an existing music ID or upload custom music first."
		}
		return &port.Failure{
			ErrorType:       port.ErrorTypeValidation,
			ErrorCode:       code,
			Message:         fmt.Sprintf("%s: %v", field, fieldErr),
			SuggestedAction: suggested,
			RetryPossible:   true,
		}
	}

	return &port.Failure{
		ErrorType:     port.ErrorTypeValidation,
		ErrorCode:     "INVALID_PAYLOAD",
		Message:       err.Error(),
		RetryPossible: true,
	}
}

// submitFailures is the pool of randomized submission failures.
var submitFailures = []port.Failure{
	{
		ErrorType:       port.ErrorTypeValidation,
		ErrorCode:       "INVALID_MUSIC_ID",
		Message:         "The provided music ID is invalid or no longer available.",
		SuggestedAction: "Choose a different music track or upload custom music.",
		RetryPossible:   true,
	},
	{
		ErrorType:       port.ErrorTypeRateLimit,
		ErrorCode:       "TOO_MANY_REQUESTS",
		Message:         "Rate limit exceeded.",
		SuggestedAction: "Wait a few minutes before trying again.",
		RetryPossible:   true,
	},
	{
		ErrorType:       port.ErrorTypeAPI,
		ErrorCode:       "INTERNAL_ERROR",
		Message:         "The ads platform reported an internal error.",
		SuggestedAction: "Try submitting again shortly.",
		RetryPossible:   true,
	},
}
