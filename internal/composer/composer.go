// Package composer produces templated LinkedIn post bodies from a user
// profile, a topic, and a style. Generation is string interpolation over fixed
// skeletons with a randomly chosen opening hook; no model call is made.
package composer

import (
	"fmt"
	"math/rand/v2"

	"github.com/jonathan/linkedin-post-agent/internal/profiles"
)

// hooks are the topic-parameterized openers. One is drawn uniformly at random
// per composition; there is no seeding or reproducibility contract.
var hooks = []string{
	"I've been thinking about %s lately.",
	"Here's an unpopular opinion about %s:",
	"Most people get %s wrong.",
	"Something interesting happened with %s this week.",
	"I see a lot of confusion around %s.",
}

// Compose generates a post body for the given user, topic, and style.
// An unknown user ID is an error. An unknown style ID is not: it falls back to
// the generic skeleton. The output always contains the topic literally; no
// length bound is enforced.
func Compose(userID, topic, styleID string) (string, error) {
	if _, err := profiles.LookupProfile(userID); err != nil {
		return "", fmt.Errorf("compose: %w", err)
	}

	hook := fmt.Sprintf(hooks[rand.IntN(len(hooks))], topic)
	return renderSkeleton(styleID, topic, hook), nil
}

func renderSkeleton(styleID, topic, hook string) string {
	switch styleID {
	case "professional":
		return fmt.Sprintf(`%s

The challenge isn't understanding %s — it's applying it effectively.

Here's what I've learned:

• Context matters more than technique
• Simple approaches often outperform complex ones
• Consistency beats perfection every time

The companies that succeed aren't necessarily the ones with the best strategy. They're the ones that execute consistently and adapt quickly.

What's been your experience with %s? What approach has worked best for you?`, hook, topic, topic)

	case "casual":
		return fmt.Sprintf(`Had a conversation about %s yesterday that got me thinking...

%s

It reminded me of something that happened early in my career. I thought I understood %s, but I was missing the bigger picture.

The real insight? It's not about having all the answers. It's about asking better questions and being willing to change course when the data tells you to.

Anyone else learned something surprising about %s recently?`, topic, hook, topic, topic)

	case "thought-leadership":
		return fmt.Sprintf(`%s

While everyone's focused on the obvious aspects of %s, they're missing the real opportunity.

Here's what's actually happening:

The fundamental assumptions we've built around %s are changing. What worked 5 years ago doesn't just need tweaking — it needs rethinking.

The companies that recognize this shift early will have a massive advantage. The ones that don't will be playing catch-up for years.

What do you think? Are we on the verge of a major shift in how we approach %s?`, hook, topic, topic, topic)

	case "controversial":
		return fmt.Sprintf(`Unpopular opinion: Most advice about %s is wrong.

Here's why:

Everyone's optimizing for the same metrics, following the same playbook, and getting the same mediocre results.

The real opportunity isn't in doing %s better — it's in questioning whether you should be doing it at all.

Sometimes the best strategy is to ignore conventional wisdom and find a completely different approach.

Disagree? Let's hear your take in the comments.`, topic, topic)

	default:
		// "story" and unrecognized styles both land here.
		return fmt.Sprintf(`%s

Here's what I've learned about %s:

It's more nuanced than most people realize. The surface-level advice you see everywhere only scratches the surface.

Real success comes from understanding the underlying principles, not just following tactics.

What's been your experience? What would you add?`, hook, topic)
	}
}
