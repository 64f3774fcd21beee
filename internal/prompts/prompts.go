package prompts

import (
	"fmt"

	"github.com/yashovardan8harit/caption-backend/internal/domain"
)

// styleInstructions maps each preset style to its rewrite instruction.
// The custom style builds its own prompt from the caller's description.
var styleInstructions = map[domain.Style]string{
	domain.StyleCreative:  "Transform this basic image description into a creative, engaging caption that tells a story or evokes emotion:",
	domain.StyleFunny:     "Turn this image description into a humorous, witty caption that would make people smile:",
	domain.StylePoetic:    "Convert this image description into a beautiful, poetic caption with literary flair:",
	domain.StyleMarketing: "Transform this image description into compelling marketing copy that would grab attention:",
	domain.StyleSocial:    "Turn this into a perfect social media caption with personality and engagement:",
	domain.StyleArtistic:  "Elevate this description into an artistic, sophisticated caption that appreciates the visual elements:",
}

// presetTemplate is the prompt for preset styles. Arguments: instruction, basic caption.
const presetTemplate = `%s

Basic description: "%s"

Guidelines:
- Keep it concise (1-2 sentences)
- Make it engaging and memorable
- Don't just describe, add personality
- Avoid overly dramatic language
- Make it suitable for social media including instagram, facebook, twitter, youtube thumbnails, etc.
- Also add emojis to the caption

Enhanced caption:`

// customTemplate is the prompt for the custom style. Arguments: basic caption,
// caller-supplied description.
const customTemplate = `Create a caption for this image based on the user's specific request.

Basic image description: "%s"

User's specific request: "%s"

Guidelines:
- Follow the user's specific style/tone request as closely as possible
- Keep it concise and engaging (1-3 sentences)
- Make it suitable for social media (Instagram, Facebook, Twitter, YouTube thumbnails, etc.)
- Add relevant emojis to enhance the caption
- If the user's request is unclear, default to a creative engaging style
- Don't just describe the image, create content that matches their request

Caption:`

// ForStyle returns the rewrite instruction for a preset style.
// Unknown styles fall back to the creative instruction.
func ForStyle(style domain.Style) string {
	if instruction, ok := styleInstructions[style]; ok {
		return instruction
	}
	return styleInstructions[domain.StyleCreative]
}

// Enhancement builds the full enhancement prompt for a basic caption.
// Parameters:
//   - basicCaption: output of the inference step.
//   - style: selected style preset or custom marker.
//   - customDescription: caller guidance, used only for the custom style.
// Returns:
//   - string: prompt to send to the chat-completion API.
func Enhancement(basicCaption string, style domain.Style, customDescription string) string {
	if style == domain.StyleCustom && customDescription != "" {
		return fmt.Sprintf(customTemplate, basicCaption, customDescription)
	}
	return fmt.Sprintf(presetTemplate, ForStyle(style), basicCaption)
}
