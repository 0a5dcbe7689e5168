package composer

import (
	"fmt"
	"strings"

	"github.com/jonathan/linkedin-post-agent/internal/profiles"
)

// Prompt builds the instruction text an LLM-backed generator would receive for
// this profile, topic, and style. Compose never consults it: generation is
// template-based. The 150-300 word requirement stated here is design intent
// only and is not enforced anywhere.
func Prompt(profile profiles.UserProfile, topic string, tmpl profiles.StyleTemplate) string {
	return fmt.Sprintf(`Write a LinkedIn post for %s about "%s".

Style: %s (%s)
Tone: %s

Profile context:
- Bio: %s
- Focus areas: %s
- Writing style: %s

Examples of their previous posts:
%s

Requirements:
- 150-300 words
- Include specific insights or takeaways
- Use line breaks for readability
- End with a question or call to action
- Match their authentic voice`,
		profile.Name, topic,
		tmpl.ID, tmpl.Structure,
		tmpl.Tone,
		profile.Bio,
		profile.Focus,
		profile.Tone,
		strings.Join(profile.Examples, "\n"))
}
