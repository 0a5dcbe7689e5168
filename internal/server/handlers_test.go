package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLinkedIn is a minimal fake of the LinkedIn API for handler tests.
func stubLinkedIn(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/people/~", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "member-1"})
	})
	mux.HandleFunc("POST /v2/ugcPosts", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RestLi-Id", "urn:li:share:42")
		w.WriteHeader(http.StatusCreated)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleGeneratePost(t *testing.T) {
	s := newTestServer(t, "")

	w := httptest.NewRecorder()
	s.handleGeneratePost(w, postJSON("/generate-post", `{"user":"jeremiah","topic":"AI adoption","style":"controversial"}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp GeneratePostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Post, "Unpopular opinion: Most advice about AI adoption is wrong."))

	// The generated post lands in the user's history.
	entries := s.shell.History("jeremiah")
	require.Len(t, entries, 1)
	assert.Equal(t, resp.Post, entries[0].Content)
}

func TestHandleGeneratePost_MissingFields(t *testing.T) {
	s := newTestServer(t, "")

	tests := []struct {
		name string
		body string
	}{
		{"missing user", `{"topic":"AI"}`},
		{"missing topic", `{"user":"jeremiah"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.handleGeneratePost(w, postJSON("/generate-post", tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], "validation error")
		})
	}
}

func TestHandleGeneratePost_UnknownUser(t *testing.T) {
	s := newTestServer(t, "")

	w := httptest.NewRecorder()
	s.handleGeneratePost(w, postJSON("/generate-post", `{"user":"stranger","topic":"AI"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to generate post", resp["error"])
}

func TestHandleGeneratePost_InvalidJSON(t *testing.T) {
	s := newTestServer(t, "")

	w := httptest.NewRecorder()
	s.handleGeneratePost(w, postJSON("/generate-post", `{not json`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGenerateImage(t *testing.T) {
	s := newTestServer(t, "")

	w := httptest.NewRecorder()
	s.handleGenerateImage(w, postJSON("/generate-image", `{"prompt":"a tiger with a laptop"}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp GenerateImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.ImageURL, "via.placeholder.com")
	assert.Contains(t, resp.ImageURL, "a+tiger+with+a+laptop")
	assert.Contains(t, resp.Message, "placeholder")
}

func TestHandleGenerateImage_MissingPrompt(t *testing.T) {
	s := newTestServer(t, "")

	w := httptest.NewRecorder()
	s.handleGenerateImage(w, postJSON("/generate-image", `{}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGenerateImage_AttachesToDraft(t *testing.T) {
	s := newTestServer(t, "")

	w := httptest.NewRecorder()
	s.handleGeneratePost(w, postJSON("/generate-post", `{"user":"sean","topic":"growth","style":"casual"}`))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	s.handleGenerateImage(w, postJSON("/generate-image", `{"prompt":"growth chart","user":"sean"}`))
	require.Equal(t, http.StatusOK, w.Code)

	entries := s.shell.History("sean")
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ImageURL, "growth+chart")
}

func TestHandleGenerateImage_NoDraftStillSucceeds(t *testing.T) {
	s := newTestServer(t, "")

	w := httptest.NewRecorder()
	s.handleGenerateImage(w, postJSON("/generate-image", `{"prompt":"lonely image","user":"sean"}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp GenerateImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.ImageURL, "lonely+image")
}

func TestHandlePostToLinkedIn_Unauthenticated(t *testing.T) {
	s := newTestServer(t, "")

	w := httptest.NewRecorder()
	s.handlePostToLinkedIn(w, postJSON("/post-to-linkedin", `{"content":"hello"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Not authenticated with LinkedIn", resp["error"])
}

func TestHandlePostToLinkedIn_MissingContent(t *testing.T) {
	s := newTestServer(t, "")

	req := withSession(t, s, postJSON("/post-to-linkedin", `{}`), "good-token")
	w := httptest.NewRecorder()
	s.handlePostToLinkedIn(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Post content is required", resp["error"])
}

func TestHandlePostToLinkedIn_Success(t *testing.T) {
	platform := stubLinkedIn(t)
	s := newTestServer(t, platform.URL)

	req := withSession(t, s, postJSON("/post-to-linkedin", `{"content":"hello world"}`), "good-token")
	w := httptest.NewRecorder()
	s.handlePostToLinkedIn(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp PostToLinkedInResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "urn:li:share:42", resp.PostID)
	assert.Empty(t, resp.Error)
}

func TestHandlePostToLinkedIn_RejectedToken(t *testing.T) {
	platform := stubLinkedIn(t)
	s := newTestServer(t, platform.URL)

	req := withSession(t, s, postJSON("/post-to-linkedin", `{"content":"hello"}`), "bad-token")
	w := httptest.NewRecorder()
	s.handlePostToLinkedIn(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp PostToLinkedInResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "profile")
}

func TestHandleHistory(t *testing.T) {
	s := newTestServer(t, "")

	for _, topic := range []string{"first", "second"} {
		w := httptest.NewRecorder()
		s.handleGeneratePost(w, postJSON("/generate-post", `{"user":"jeremiah","topic":"`+topic+`","style":"professional"}`))
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/history?user=jeremiah", nil)
	w := httptest.NewRecorder()
	s.handleHistory(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jeremiah", resp.User)
	require.Len(t, resp.Posts, 2)
	assert.Contains(t, resp.Posts[0].Content, "second")
	assert.Contains(t, resp.Posts[1].Content, "first")
}

func TestHandleHistory_MissingUser(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	w := httptest.NewRecorder()
	s.handleHistory(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHistory_UnknownUser(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/history?user=stranger", nil)
	w := httptest.NewRecorder()
	s.handleHistory(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "stranger")
	assert.Contains(t, resp["error"], "jeremiah, sean")
}
