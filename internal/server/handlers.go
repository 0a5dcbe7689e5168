package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/linkedin-post-agent/internal/history"
	"github.com/jonathan/linkedin-post-agent/internal/imagegen"
	"github.com/jonathan/linkedin-post-agent/internal/profiles"
	"github.com/jonathan/linkedin-post-agent/internal/session"
	"github.com/jonathan/linkedin-post-agent/internal/shell"
)

// GeneratePostRequest represents the request body for /generate-post
type GeneratePostRequest struct {
	User  string `json:"user" validate:"required"`
	Topic string `json:"topic" validate:"required"`
	Style string `json:"style"`
}

// GeneratePostResponse represents the response for /generate-post
type GeneratePostResponse struct {
	Post string `json:"post"`
}

// GenerateImageRequest represents the request body for /generate-image.
// User is optional; when set, the image is also attached to that user's
// current draft.
type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	User   string `json:"user,omitempty"`
}

// GenerateImageResponse represents the response for /generate-image
type GenerateImageResponse struct {
	ImageURL string `json:"imageUrl"`
	Message  string `json:"message"`
}

// PostToLinkedInRequest represents the request body for /post-to-linkedin
type PostToLinkedInRequest struct {
	Content  string `json:"content" validate:"required"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// PostToLinkedInResponse represents the response for /post-to-linkedin
type PostToLinkedInResponse struct {
	Success bool   `json:"success"`
	PostID  string `json:"postId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HistoryResponse represents the response for /history
type HistoryResponse struct {
	User  string         `json:"user"`
	Posts []history.Post `json:"posts"`
}

// handleGeneratePost composes a templated post and records it in the user's
// history.
func (s *Server) handleGeneratePost(w http.ResponseWriter, r *http.Request) {
	var req GeneratePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	post, err := s.shell.Generate(req.User, req.Topic, req.Style)
	if err != nil {
		// Unknown user is a configuration problem, not a caller mistake.
		log.Printf("[generate] error for user %q: %v", req.User, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate post")
		return
	}

	s.jsonResponse(w, http.StatusOK, GeneratePostResponse{Post: post.Content})
}

// handleGenerateImage returns a placeholder image URL for the prompt.
func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req GenerateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	imageURL := imagegen.PlaceholderURL(req.Prompt)
	if req.User != "" {
		if draft, err := s.shell.AttachImage(req.User, req.Prompt); err == nil {
			imageURL = draft.ImageURL
		} else if !errors.Is(err, shell.ErrNoDraft) {
			log.Printf("[generate-image] attach failed for user %q: %v", req.User, err)
		}
	}

	s.jsonResponse(w, http.StatusOK, GenerateImageResponse{
		ImageURL: imageURL,
		Message:  "Image generation placeholder - integrate with your preferred AI service",
	})
}

// handlePostToLinkedIn publishes content through the publish pipeline using
// the session's access token. Nothing is retried; a second identical request
// creates a second post.
func (s *Server) handlePostToLinkedIn(w http.ResponseWriter, r *http.Request) {
	accessToken, err := s.sessions.AccessToken(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Not authenticated with LinkedIn")
		return
	}

	var req PostToLinkedInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Content == "" {
		s.errorResponse(w, http.StatusBadRequest, "Post content is required")
		return
	}

	result := s.shell.Publish(r.Context(), accessToken, req.Content, req.ImageURL)
	if result.Err != nil {
		log.Printf("[publish] failed: %v", result.Err)
		s.jsonResponse(w, publishStatus(result.Err), PostToLinkedInResponse{
			Success: false,
			Error:   result.Err.Error(),
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, PostToLinkedInResponse{
		Success: true,
		PostID:  result.PostID,
	})
}

// handleHistory returns the bounded post history for a registered user.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user query parameter is required")
		return
	}
	if _, err := profiles.LookupProfile(userID); err != nil {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Unknown user %q; known users: %s", userID, strings.Join(profiles.UserIDs(), ", ")))
		return
	}

	s.jsonResponse(w, http.StatusOK, HistoryResponse{
		User:  userID,
		Posts: s.shell.History(userID),
	})
}

// extractValidationErrors converts validator errors into a readable message.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// Return first validation error for simplicity
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}

// publishStatus maps a publish pipeline failure to an HTTP status.
func publishStatus(err error) int {
	if errors.Is(err, session.ErrNoSession) {
		return http.StatusUnauthorized
	}
	// Everything upstream (token rejection included, since the platform is
	// the authority) surfaces as a server-side failure.
	return http.StatusInternalServerError
}
