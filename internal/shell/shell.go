// Package shell orchestrates the user-facing flow: generate a draft, attach
// a placeholder image, publish the draft. It owns no network logic of its
// own; it wires the composer, the image placeholder, the history store, and
// the publish pipeline together.
package shell

import (
	"context"
	"errors"

	"github.com/jonathan/linkedin-post-agent/internal/composer"
	"github.com/jonathan/linkedin-post-agent/internal/history"
	"github.com/jonathan/linkedin-post-agent/internal/imagegen"
	"github.com/jonathan/linkedin-post-agent/internal/linkedin"
)

// ErrNoDraft is returned when an action needs a current draft and the user
// has not generated one.
var ErrNoDraft = errors.New("no draft to act on")

// Publisher is the publish pipeline the shell submits drafts through.
type Publisher interface {
	Publish(ctx context.Context, accessToken, content, imageURL string) linkedin.PublishResult
}

// Shell coordinates drafts and history for the predefined users.
// A user's current draft is always the newest history entry; regeneration
// prepends a new entry rather than rewriting the old one.
type Shell struct {
	history   *history.Store
	publisher Publisher
}

// New creates a shell around the given history store and publisher.
func New(store *history.Store, publisher Publisher) *Shell {
	return &Shell{
		history:   store,
		publisher: publisher,
	}
}

// Generate composes a new post and records it as the user's current draft.
func (s *Shell) Generate(userID, topic, styleID string) (history.Post, error) {
	content, err := composer.Compose(userID, topic, styleID)
	if err != nil {
		return history.Post{}, err
	}
	return s.history.Add(userID, content), nil
}

// AttachImage generates a placeholder image for the prompt and attaches it
// to the user's current draft.
func (s *Shell) AttachImage(userID, prompt string) (history.Post, error) {
	draft, ok := s.history.Latest(userID)
	if !ok {
		return history.Post{}, ErrNoDraft
	}

	imageURL := imagegen.PlaceholderURL(prompt)
	s.history.AttachImage(userID, draft.ID, imageURL)
	draft.ImageURL = imageURL
	return draft, nil
}

// Publish submits post content with the given access token. The result is
// surfaced unchanged; nothing is retried, and submitting the same content
// twice creates two posts on the platform.
func (s *Shell) Publish(ctx context.Context, accessToken, content, imageURL string) linkedin.PublishResult {
	return s.publisher.Publish(ctx, accessToken, content, imageURL)
}

// History returns the user's post history, newest first.
func (s *Shell) History(userID string) []history.Post {
	return s.history.List(userID)
}
