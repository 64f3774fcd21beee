package prompts

import (
	"strings"
	"testing"

	"github.com/yashovardan8harit/caption-backend/internal/domain"
)

func TestForStyle(t *testing.T) {
	tests := []struct {
		name     string
		style    domain.Style
		contains string
	}{
		{name: "funny", style: domain.StyleFunny, contains: "humorous"},
		{name: "poetic", style: domain.StylePoetic, contains: "poetic"},
		{name: "marketing", style: domain.StyleMarketing, contains: "marketing copy"},
		{name: "unknown falls back to creative", style: domain.Style("vaporwave"), contains: "creative, engaging"},
		{name: "empty falls back to creative", style: domain.Style(""), contains: "creative, engaging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForStyle(tt.style)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("ForStyle(%q) = %q, expected it to contain %q", tt.style, got, tt.contains)
			}
		})
	}
}

func TestEnhancement(t *testing.T) {
	t.Run("preset style embeds caption", func(t *testing.T) {
		prompt := Enhancement("a cat sitting on a chair", domain.StyleFunny, "")

		if !strings.Contains(prompt, `Basic description: "a cat sitting on a chair"`) {
			t.Error("prompt missing quoted basic description")
		}
		if !strings.Contains(prompt, "humorous") {
			t.Error("prompt missing style instruction")
		}
		if !strings.HasSuffix(prompt, "Enhanced caption:") {
			t.Error("prompt should end with the completion cue")
		}
	})

	t.Run("custom style embeds request", func(t *testing.T) {
		prompt := Enhancement("a cat sitting on a chair", domain.StyleCustom, "noir detective voice")

		if !strings.Contains(prompt, `Basic image description: "a cat sitting on a chair"`) {
			t.Error("prompt missing quoted basic description")
		}
		if !strings.Contains(prompt, `User's specific request: "noir detective voice"`) {
			t.Error("prompt missing quoted user request")
		}
		if !strings.HasSuffix(prompt, "Caption:") {
			t.Error("prompt should end with the completion cue")
		}
	})

	t.Run("custom style without description uses preset prompt", func(t *testing.T) {
		prompt := Enhancement("a cat sitting on a chair", domain.StyleCustom, "")

		if strings.Contains(prompt, "User's specific request") {
			t.Error("expected preset prompt when no description is given")
		}
	})
}
