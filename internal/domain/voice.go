package domain

// VoiceParams carries the synthesis parameters forwarded to the TTS
// provider. Zero values are filled with server defaults at the transport
// edge, so the core always sees a fully populated set.
type VoiceParams struct {
	VoiceID string  `json:"voice_id"`
	Style   string  `json:"style"`
	Speed   float64 `json:"speed"`
	Pitch   float64 `json:"pitch"`
	Volume  float64 `json:"volume"`
}
