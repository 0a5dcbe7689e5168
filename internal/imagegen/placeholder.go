// Package imagegen returns placeholder image URLs for post illustrations.
// It is a stand-in for a real image-generation backend: no image is produced,
// only a URL to a public placeholder renderer that displays the prompt text.
package imagegen

import (
	"fmt"
	"net/url"
)

const (
	placeholderBase = "https://via.placeholder.com/800x400/4F46E5/FFFFFF"
	maxPromptLen    = 50
)

// PlaceholderURL builds a deterministic placeholder image URL from the prompt.
// The first 50 characters of the prompt are percent-encoded into the URL as
// display text. Identical prompts always yield identical URLs.
func PlaceholderURL(prompt string) string {
	if len(prompt) > maxPromptLen {
		prompt = prompt[:maxPromptLen]
	}
	return fmt.Sprintf("%s?text=%s", placeholderBase, url.QueryEscape(prompt))
}
