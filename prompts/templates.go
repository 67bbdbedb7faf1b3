package prompts

import (
	"fmt"
	"strings"

	"scriptgen-backend/quota"
)

// Params is the caller's description of the video. Topic is the only
// required field; the rest refine the prompt when present.
type Params struct {
	Topic         string `json:"topic" binding:"required"`
	Audience      string `json:"audience"`
	Tone          string `json:"tone"`
	LengthMinutes int    `json:"length_minutes"`
	Keywords      string `json:"keywords"`
	Context       string `json:"context"`
}

// TokenBudget is the max-output-token budget per content type. Scripts are
// long form; everything else is short structured output.
var TokenBudget = map[quota.Feature]int32{
	quota.FeatureScript:      4096,
	quota.FeatureHooks:       1024,
	quota.FeatureTitles:      1024,
	quota.FeatureOutline:     2048,
	quota.FeatureDescription: 1024,
	quota.FeatureTags:        512,
	quota.FeatureThumbnail:   256,
	quota.FeatureCTAs:        512,
}

// jsonListInstruction keeps structured outputs parseable. Models still wrap
// the array in code fences sometimes; the parser strips those.
const jsonListInstruction = "Respond with ONLY a JSON array of strings, no commentary."

var templates = map[quota.Feature]string{
	quota.FeatureScript: "Write a complete YouTube video script about: %s.\n%s\nInclude a strong opening hook, a structured middle, and a closing call to action. Write it as spoken narration, ready to read aloud.",
	quota.FeatureHooks: "Write 5 attention-grabbing opening hooks for a YouTube video about: %s.\n%s\nEach hook must work as the first 10 seconds of the video. " + jsonListInstruction,
	quota.FeatureTitles: "Write 10 click-worthy YouTube titles for a video about: %s.\n%s\nKeep each under 70 characters. " + jsonListInstruction,
	quota.FeatureOutline: "Write a detailed section-by-section outline for a YouTube video about: %s.\n%s\nUse numbered sections with a one-line summary each.",
	quota.FeatureDescription: "Write a YouTube video description for a video about: %s.\n%s\nInclude a two-sentence summary, then timestamps placeholder, then relevant hashtags.",
	quota.FeatureTags: "Write 20 YouTube tags for a video about: %s.\n%s\n" + jsonListInstruction,
	quota.FeatureThumbnail: "Write 3 short thumbnail text overlays (max 5 words each) for a YouTube video about: %s.\n%s\n" + jsonListInstruction,
	quota.FeatureCTAs: "Write 5 calls to action for a YouTube video about: %s.\n%s\nMix subscribe, comment and watch-next prompts. " + jsonListInstruction,
}

// Build composes the final prompt: voice fragment first, then the per-type
// template filled with the caller's params.
func Build(feature quota.Feature, voiceName string, p Params) string {
	tmpl, ok := templates[feature]
	if !ok {
		tmpl = templates[quota.FeatureScript]
	}

	var details []string
	if p.Audience != "" {
		details = append(details, "Target audience: "+p.Audience+".")
	}
	if p.Tone != "" {
		details = append(details, "Tone: "+p.Tone+".")
	}
	if p.LengthMinutes > 0 {
		details = append(details, fmt.Sprintf("Target length: about %d minutes of speaking time.", p.LengthMinutes))
	}
	if p.Keywords != "" {
		details = append(details, "Work in these keywords naturally: "+p.Keywords+".")
	}
	if p.Context != "" {
		details = append(details, "Additional context: "+p.Context)
	}

	body := fmt.Sprintf(tmpl, p.Topic, strings.Join(details, "\n"))
	return VoicePrompt(voiceName) + "\n\n" + body
}

// Structured reports whether the feature's output is a JSON string array
// that must be parsed (vs raw text returned as-is).
func Structured(feature quota.Feature) bool {
	switch feature {
	case quota.FeatureHooks, quota.FeatureTitles, quota.FeatureTags, quota.FeatureThumbnail, quota.FeatureCTAs:
		return true
	}
	return false
}
