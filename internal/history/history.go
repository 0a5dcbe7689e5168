// Package history keeps the bounded per-user record of generated posts.
// Entries live only in memory for the lifetime of the process; there is no
// durable post storage anywhere in the system.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Capacity is the maximum number of posts retained per user. Inserting past
// the bound evicts the oldest entry.
const Capacity = 10

// Post is one generated post. Content is never regenerated in place:
// regeneration always produces a new Post prepended to the history.
type Post struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store holds per-user histories, newest first. Handlers run concurrently,
// so access is mutex guarded even though each logical client is sequential.
type Store struct {
	mu    sync.Mutex
	byUID map[string][]Post
}

// NewStore creates an empty history store.
func NewStore() *Store {
	return &Store{byUID: make(map[string][]Post)}
}

// Add prepends a new post to the user's history and returns it.
// The oldest entry is dropped once the history exceeds Capacity.
func (s *Store) Add(userID, content string) Post {
	post := Post{
		ID:        uuid.New().String(),
		Content:   content,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append([]Post{post}, s.byUID[userID]...)
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	s.byUID[userID] = entries
	return post
}

// List returns a copy of the user's history, newest first.
func (s *Store) List(userID string) []Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.byUID[userID]
	out := make([]Post, len(entries))
	copy(out, entries)
	return out
}

// Latest returns the newest post for the user, if any.
func (s *Store) Latest(userID string) (Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.byUID[userID]
	if len(entries) == 0 {
		return Post{}, false
	}
	return entries[0], true
}

// AttachImage sets the image URL on the given post if it is still in the
// user's history. Evicted posts are gone; attaching to them is a no-op.
func (s *Store) AttachImage(userID, postID, imageURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.byUID[userID]
	for i := range entries {
		if entries[i].ID == postID {
			entries[i].ImageURL = imageURL
			return true
		}
	}
	return false
}
