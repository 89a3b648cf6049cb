package entity

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Objective is the campaign goal. It determines whether music is mandatory:
// Conversions campaigns require a validated music track, Traffic campaigns
// do not.
type Objective string

const (
	ObjectiveTraffic     Objective = "Traffic"
	ObjectiveConversions Objective = "Conversions"
)

// MusicOption describes how the campaign sources its music.
type MusicOption string

const (
	MusicExisting MusicOption = "existing" // a track from the platform library
	MusicCustom   MusicOption = "custom"   // a freshly uploaded track
	MusicNone     MusicOption = "none"     // no music (Traffic only)
)

// Field limits enforced on submission.
const (
	MinCampaignNameLength = 3
	MaxAdTextLength       = 100
)

// AdPayload is the campaign draft assembled across conversation turns and
// handed to the ads backend on submission. MusicID may be empty only when the
// objective does not require music.
type AdPayload struct {
	CampaignName string      `json:"campaign_name"`
	Objective    Objective   `json:"objective"`
	AdText       string      `json:"ad_text"`
	CTA          string      `json:"cta"`
	MusicID      string      `json:"music_id,omitempty"`
	MusicOption  MusicOption `json:"music_option,omitempty"`
}

// RequiresMusic reports whether the chosen objective makes music mandatory.
func (p AdPayload) RequiresMusic() bool {
	return p.Objective == ObjectiveConversions
}

// Validate checks every business rule for the draft:
// campaign name at least MinCampaignNameLength characters, a known objective,
// ad text at most MaxAdTextLength characters, a call to action, and a music
// id whenever the objective requires one. It returns validation.Errors keyed
// by JSON field name so callers can report field-specific failures.
func (p AdPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CampaignName,
			validation.Required.Error("campaign name is required"),
			validation.Length(MinCampaignNameLength, 0).
				Error("campaign name must be at least 3 characters"),
		),
		validation.Field(&p.Objective,
			validation.Required.Error("objective is required"),
			validation.In(ObjectiveTraffic, ObjectiveConversions).
				Error("objective must be Traffic or Conversions"),
		),
		validation.Field(&p.AdText,
			validation.Required.Error("ad text is required"),
			validation.Length(1, MaxAdTextLength).
				Error("ad text must be at most 100 characters"),
		),
		validation.Field(&p.CTA,
			validation.Required.Error("call to action is required"),
		),
		validation.Field(&p.MusicID,
			validation.Required.When(p.RequiresMusic()).
				Error("music is required for Conversions campaigns"),
		),
	)
}

// ToRequest renders the draft in the wire shape the ads platform expects,
// with the creative fields nested under their own key.
func (p AdPayload) ToRequest() map[string]interface{} {
	creative := map[string]interface{}{
		"text": p.AdText,
		"cta":  p.CTA,
	}
	if p.MusicID != "" {
		creative["music_id"] = p.MusicID
	}
	return map[string]interface{}{
		"campaign_name": p.CampaignName,
		"objective":     string(p.Objective),
		"creative":      creative,
	}
}
