package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/linkedin-post-agent/internal/fetch"
)

// PublishResult is the outcome of a single publish call. It is produced and
// consumed within one request; nothing here is persisted.
type PublishResult struct {
	Success bool
	PostID  string
	Err     error
}

// registerUploadRequest is the asset-registration payload.
type registerUploadRequest struct {
	RegisterUploadRequest registerUploadBody `json:"registerUploadRequest"`
}

type registerUploadBody struct {
	Recipes              []string              `json:"recipes"`
	Owner                string                `json:"owner"`
	ServiceRelationships []serviceRelationship `json:"serviceRelationships"`
}

type serviceRelationship struct {
	RelationshipType string `json:"relationshipType"`
	Identifier       string `json:"identifier"`
}

type registerUploadResponse struct {
	Value struct {
		UploadMechanism map[string]struct {
			UploadURL string `json:"uploadUrl"`
		} `json:"uploadMechanism"`
		Asset string `json:"asset"`
	} `json:"value"`
}

// uploadMechanismKey selects the HTTP upload mechanism from the registration
// response.
const uploadMechanismKey = "com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"

// ugcPostRequest is the post-creation payload.
type ugcPostRequest struct {
	Author          string                  `json:"author"`
	LifecycleState  string                  `json:"lifecycleState"`
	SpecificContent map[string]shareContent `json:"specificContent"`
	Visibility      map[string]string       `json:"visibility"`
}

type shareContent struct {
	ShareCommentary    shareCommentary `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory"`
	Media              []shareMedia    `json:"media,omitempty"`
}

type shareCommentary struct {
	Text string `json:"text"`
}

type shareMedia struct {
	Status string `json:"status"`
	Media  string `json:"media"`
}

// Publish runs the three-step publish sequence: identity lookup, optional
// image upload, post creation. Steps are strictly sequential and the whole
// operation aborts on the first failure; a partially registered asset is not
// released (the leak stays on the platform). No idempotency key is attached,
// so publishing the same arguments twice creates two posts.
func (c *Client) Publish(ctx context.Context, accessToken, content, imageURL string) PublishResult {
	personID, err := c.getPersonID(ctx, accessToken)
	if err != nil {
		return PublishResult{Err: err}
	}

	var assetURN string
	if imageURL != "" {
		assetURN, err = c.uploadImage(ctx, accessToken, personID, imageURL)
		if err != nil {
			return PublishResult{Err: err}
		}
	}

	postID, err := c.createPost(ctx, accessToken, personID, content, assetURN)
	if err != nil {
		return PublishResult{Err: err}
	}

	return PublishResult{Success: true, PostID: postID}
}

// uploadImage registers an upload slot, downloads the image bytes, and
// uploads them, returning the asset URN to attach to the post.
func (c *Client) uploadImage(ctx context.Context, accessToken, personID, imageURL string) (string, error) {
	payload := registerUploadRequest{
		RegisterUploadRequest: registerUploadBody{
			Recipes: []string{"urn:li:digitalmediaRecipe:feedshare-image"},
			Owner:   "urn:li:person:" + personID,
			ServiceRelationships: []serviceRelationship{
				{
					RelationshipType: "OWNER",
					Identifier:       "urn:li:userGeneratedContent",
				},
			},
		},
	}

	resp, err := c.postJSON(ctx, c.baseURL+"/v2/assets?action=registerUpload", accessToken, payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadRegistration, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrUploadRegistration, resp.StatusCode)
	}

	var registered registerUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadRegistration, err)
	}
	mechanism, ok := registered.Value.UploadMechanism[uploadMechanismKey]
	if !ok || mechanism.UploadURL == "" || registered.Value.Asset == "" {
		return "", fmt.Errorf("%w: response missing upload mechanism", ErrUploadRegistration)
	}

	image, err := fetch.Bytes(ctx, imageURL, &fetch.Options{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageFetch, err)
	}

	if err := c.uploadBytes(ctx, accessToken, mechanism.UploadURL, image.Body); err != nil {
		return "", err
	}

	return registered.Value.Asset, nil
}

// uploadBytes POSTs the raw image bytes to the registered upload URL.
func (c *Client) uploadBytes(ctx context.Context, accessToken, uploadURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpload, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUpload, resp.StatusCode)
	}
	return nil
}

// createPost submits the UGC post and extracts the assigned post identifier
// from the X-RestLi-Id response header.
func (c *Client) createPost(ctx context.Context, accessToken, personID, content, assetURN string) (string, error) {
	mediaCategory := "NONE"
	var media []shareMedia
	if assetURN != "" {
		mediaCategory = "IMAGE"
		media = []shareMedia{{Status: "READY", Media: assetURN}}
	}

	payload := ugcPostRequest{
		Author:         "urn:li:person:" + personID,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]shareContent{
			"com.linkedin.ugc.ShareContent": {
				ShareCommentary:    shareCommentary{Text: content},
				ShareMediaCategory: mediaCategory,
				Media:              media,
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	resp, err := c.postJSON(ctx, c.baseURL+"/v2/ugcPosts", accessToken, payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPostCreation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Keep the raw body for diagnostics.
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", ErrPostCreation, resp.StatusCode, string(body))
	}

	return resp.Header.Get("X-RestLi-Id"), nil
}
