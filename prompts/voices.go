package prompts

// Voice is a named system-prompt fragment that biases the style of the
// generated content. The catalog here is the source of truth; it is mirrored
// into the voice_presets table at startup for the listing endpoint.
type Voice struct {
	Name        string
	Description string
	Prompt      string
}

// DefaultVoice is used when a user has no preference or names a preset we
// do not know.
const DefaultVoice = "casual"

var Voices = []Voice{
	{
		Name:        "casual",
		Description: "Friendly and conversational, like talking to a friend",
		Prompt:      "Write in a casual, conversational tone. Use contractions, short sentences and everyday language. Sound like a friendly creator talking directly to the viewer.",
	},
	{
		Name:        "energetic",
		Description: "High-energy hype style for entertainment content",
		Prompt:      "Write with high energy and enthusiasm. Use punchy sentences, exclamations and momentum. Keep the viewer hyped from the first line.",
	},
	{
		Name:        "educational",
		Description: "Clear, structured explainer voice",
		Prompt:      "Write like a patient teacher. Explain concepts step by step, define terms before using them, and use concrete examples. Clarity beats flair.",
	},
	{
		Name:        "storyteller",
		Description: "Narrative-driven, builds tension and payoff",
		Prompt:      "Write as a storyteller. Open with a hook that raises a question, build tension through the middle, and land a satisfying payoff. Use vivid, sensory language.",
	},
	{
		Name:        "professional",
		Description: "Polished and authoritative for business channels",
		Prompt:      "Write in a polished, authoritative tone suitable for a business audience. Be precise, avoid slang, and back claims with reasoning.",
	},
}

// VoicePrompt resolves a preset name to its prompt fragment. Unknown or empty
// names fall back to the default preset.
func VoicePrompt(name string) string {
	for _, v := range Voices {
		if v.Name == name {
			return v.Prompt
		}
	}
	for _, v := range Voices {
		if v.Name == DefaultVoice {
			return v.Prompt
		}
	}
	return ""
}
