// Package profiles holds the fixed user and style registries consulted by the
// post composer. Both mappings are closed enumerations defined at build time;
// there is no dynamic registration.
package profiles

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownUser is returned when a user ID is not in the registry.
var ErrUnknownUser = errors.New("unknown user profile")

// ErrUnknownStyle is returned when a style ID is not in the registry.
var ErrUnknownStyle = errors.New("unknown style template")

// UserProfile describes one of the predefined authors posts are written for.
// The Examples entries are descriptive context only; they are never injected
// verbatim into generated posts.
type UserProfile struct {
	ID       string
	Name     string
	Bio      string
	Focus    string
	Tone     string
	Examples []string
}

// StyleTemplate describes a rhetorical style. Structure and Tone are
// documentation strings; the executable skeletons live in the composer.
type StyleTemplate struct {
	ID        string
	Structure string
	Tone      string
}

var userProfiles = map[string]UserProfile{
	"jeremiah": {
		ID:    "jeremiah",
		Name:  "Jeremiah Smith",
		Bio:   "Founder & CEO of SimpleTiger",
		Focus: "Business strategy, AI, entrepreneurship, faith-driven leadership",
		Tone:  "Balanced - professional when it matters, casual when it doesn't, always competent",
		Examples: []string{
			"Most people think AI will replace agencies, but here's what I've learned...",
			"The one question that changed how I approach client calls",
			"Why I hire slowly but fire fast (and you should too)",
		},
	},
	"sean": {
		ID:    "sean",
		Name:  "Sean",
		Bio:   "Marketing Professional",
		Focus: "Digital marketing, agencies, growth strategies",
		Tone:  "Direct, practical, industry-focused",
		Examples: []string{
			"I see a lot of businesses taking their marketing entirely in-house, and here's why that's short-sighted",
			"The 3 things that surprised me about scaling an agency",
			"Why most marketing teams fail at execution",
		},
	},
}

var styleTemplates = map[string]StyleTemplate{
	"professional": {
		ID:        "professional",
		Structure: "Hook → Context → Insight → Takeaway",
		Tone:      "Authoritative but approachable",
	},
	"casual": {
		ID:        "casual",
		Structure: "Personal story → Lesson learned → Actionable advice",
		Tone:      "Conversational and relatable",
	},
	"thought-leadership": {
		ID:        "thought-leadership",
		Structure: "Contrarian take → Supporting evidence → Future implications",
		Tone:      "Bold and forward-thinking",
	},
	"story": {
		ID:        "story",
		Structure: "Narrative setup → Challenge/conflict → Resolution → Moral",
		Tone:      "Engaging and human",
	},
	"controversial": {
		ID:        "controversial",
		Structure: "Bold statement → Defend position → Call for discussion",
		Tone:      "Confident and debate-provoking",
	},
}

// LookupProfile returns the profile for the given user ID.
// Unknown IDs are an error, not a default.
func LookupProfile(userID string) (UserProfile, error) {
	profile, ok := userProfiles[userID]
	if !ok {
		return UserProfile{}, fmt.Errorf("%w: %q", ErrUnknownUser, userID)
	}
	return profile, nil
}

// LookupTemplate returns the style template for the given style ID.
func LookupTemplate(styleID string) (StyleTemplate, error) {
	tmpl, ok := styleTemplates[styleID]
	if !ok {
		return StyleTemplate{}, fmt.Errorf("%w: %q", ErrUnknownStyle, styleID)
	}
	return tmpl, nil
}

// UserIDs returns the registered user IDs in sorted order.
func UserIDs() []string {
	ids := make([]string, 0, len(userProfiles))
	for id := range userProfiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StyleIDs returns the registered style IDs in sorted order.
func StyleIDs() []string {
	ids := make([]string, 0, len(styleTemplates))
	for id := range styleTemplates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
