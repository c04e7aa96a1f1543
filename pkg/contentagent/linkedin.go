// LinkedIn publishing client: register an upload, PUT the media bytes, then
// create the feed post.
package contentagent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

const defaultLinkedInBaseURL = "https://api.linkedin.com/v2"

const (
	linkedinImageRecipe = "urn:li:digitalmediaRecipe:feedshare-image"
	linkedinVideoRecipe = "urn:li:digitalmediaRecipe:feedshare-video"
)

type linkedinClient struct {
	accessToken string
	authorURN   string
	baseURL     string
	httpClient  *http.Client
}

func newLinkedInClient(accessToken, authorURN string, httpClient *http.Client) *linkedinClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: callTimeout}
	}
	return &linkedinClient{
		accessToken: accessToken,
		authorURN:   authorURN,
		baseURL:     defaultLinkedInBaseURL,
		httpClient:  httpClient,
	}
}

// PostImage uploads an image and publishes it with the given caption.
// Returns the created post identifier.
func (c *linkedinClient) PostImage(ctx context.Context, caption, imagePath string) (string, error) {
	return c.post(ctx, caption, imagePath, linkedinImageRecipe, "IMAGE", "Post")
}

// PostVideo uploads a video and publishes it with the given caption and title.
func (c *linkedinClient) PostVideo(ctx context.Context, caption, videoPath, title string) (string, error) {
	return c.post(ctx, caption, videoPath, linkedinVideoRecipe, "VIDEO", title)
}

func (c *linkedinClient) post(ctx context.Context, caption, path, recipe, category, title string) (string, error) {
	uploadURL, assetURN, err := c.registerUpload(ctx, recipe)
	if err != nil {
		return "", transportError(err, "linkedin upload registration failed")
	}
	if err := c.upload(ctx, uploadURL, path); err != nil {
		return "", transportError(err, "linkedin media upload failed")
	}
	postID, err := c.createPost(ctx, caption, assetURN, category, title)
	if err != nil {
		return "", transportError(err, "linkedin post creation failed")
	}
	return postID, nil
}

func (c *linkedinClient) registerUpload(ctx context.Context, recipe string) (uploadURL, assetURN string, err error) {
	payload := map[string]any{
		"registerUploadRequest": map[string]any{
			"owner":   c.authorURN,
			"recipes": []string{recipe},
			"serviceRelationships": []map[string]any{
				{
					"relationshipType": "OWNER",
					"identifier":       "urn:li:userGeneratedContent",
				},
			},
		},
	}
	body, err := c.doJSON(ctx, http.MethodPost, "/assets?action=registerUpload", payload)
	if err != nil {
		return "", "", err
	}

	uploadURL = gjson.GetBytes(body, `value.uploadMechanism.com\.linkedin\.digitalmedia\.uploading\.MediaUploadHttpRequest.uploadUrl`).String()
	assetURN = gjson.GetBytes(body, "value.asset").String()
	if uploadURL == "" || assetURN == "" {
		return "", "", fmt.Errorf("registerUpload response missing upload URL or asset URN")
	}
	return uploadURL, assetURN, nil
}

func (c *linkedinClient) upload(ctx context.Context, uploadURL, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", contentType)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return fmt.Errorf("upload returned status %d", res.StatusCode)
	}
	return nil
}

func (c *linkedinClient) createPost(ctx context.Context, text, assetURN, category, title string) (string, error) {
	payload := map[string]any{
		"author":         c.authorURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]any{"text": text},
				"shareMediaCategory": category,
				"media": []map[string]any{
					{
						"status":      "READY",
						"description": map[string]any{"text": text},
						"media":       assetURN,
						"title":       map[string]any{"text": title},
					},
				},
			},
		},
		"visibility": map[string]any{"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC"},
	}
	body, err := c.doJSON(ctx, http.MethodPost, "/ugcPosts", payload)
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(body, "id").String(), nil
}

func (c *linkedinClient) doJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return nil, fmt.Errorf("linkedin API %s %s returned status %d: %s", method, path, res.StatusCode, msg)
	}
	return body, nil
}
