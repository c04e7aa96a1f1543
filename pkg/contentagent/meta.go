// Meta Graph API client for Facebook page posts and Instagram publishing.
package contentagent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

const defaultGraphBaseURL = "https://graph.facebook.com/v24.0"

type metaClient struct {
	accessToken string
	pageID      string
	igUserID    string
	baseURL     string
	httpClient  *http.Client
}

func newMetaClient(accessToken, pageID, igUserID string, httpClient *http.Client) *metaClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: callTimeout}
	}
	return &metaClient{
		accessToken: accessToken,
		pageID:      pageID,
		igUserID:    igUserID,
		baseURL:     defaultGraphBaseURL,
		httpClient:  httpClient,
	}
}

// pageAccessToken exchanges the user token for a page token, falling back to
// the user token when the exchange fails.
func (c *metaClient) pageAccessToken(ctx context.Context) string {
	body, err := c.get(ctx, "/"+c.pageID, url.Values{
		"fields":       {"access_token"},
		"access_token": {c.accessToken},
	})
	if err != nil {
		return c.accessToken
	}
	if token := gjson.GetBytes(body, "access_token").String(); token != "" {
		return token
	}
	return c.accessToken
}

// PostFacebookImage publishes a local image to the page feed. Returns the
// created post identifier.
func (c *metaClient) PostFacebookImage(ctx context.Context, caption, imagePath string) (string, error) {
	body, err := c.uploadFile(ctx, "/"+c.pageID+"/photos", imagePath, map[string]string{
		"message":      caption,
		"published":    "true",
		"access_token": c.pageAccessToken(ctx),
	})
	if err != nil {
		return "", transportError(err, "facebook photo upload failed")
	}
	id := gjson.GetBytes(body, "post_id").String()
	if id == "" {
		id = gjson.GetBytes(body, "id").String()
	}
	if id == "" {
		return "", transportError(nil, "facebook upload did not return a post id")
	}
	return id, nil
}

// PostFacebookVideo publishes a local video to the page feed.
func (c *metaClient) PostFacebookVideo(ctx context.Context, caption, videoPath, title string) (string, error) {
	body, err := c.uploadFile(ctx, "/"+c.pageID+"/videos", videoPath, map[string]string{
		"description":  caption,
		"title":        title,
		"access_token": c.pageAccessToken(ctx),
	})
	if err != nil {
		return "", transportError(err, "facebook video upload failed")
	}
	id := gjson.GetBytes(body, "id").String()
	if id == "" {
		return "", transportError(nil, "facebook upload did not return a video id")
	}
	return id, nil
}

// PublishInstagramImage uploads the image through the page as an unpublished
// photo to obtain a public URL, creates a media container, and publishes it.
func (c *metaClient) PublishInstagramImage(ctx context.Context, caption, imagePath string) (string, error) {
	publicURL, err := c.uploadUnpublishedPhoto(ctx, imagePath)
	if err != nil {
		return "", err
	}

	body, err := c.postForm(ctx, "/"+c.igUserID+"/media", url.Values{
		"image_url":    {publicURL},
		"caption":      {caption},
		"access_token": {c.accessToken},
	})
	if err != nil {
		return "", transportError(err, "instagram media container creation failed")
	}
	containerID := gjson.GetBytes(body, "id").String()
	if containerID == "" {
		return "", transportError(nil, "instagram container response missing id")
	}

	body, err = c.postForm(ctx, "/"+c.igUserID+"/media_publish", url.Values{
		"creation_id":  {containerID},
		"access_token": {c.accessToken},
	})
	if err != nil {
		return "", transportError(err, "instagram publish failed")
	}
	return gjson.GetBytes(body, "id").String(), nil
}

// uploadUnpublishedPhoto pushes the image to the page unpublished and returns
// its CDN URL, which Instagram requires for container creation.
func (c *metaClient) uploadUnpublishedPhoto(ctx context.Context, imagePath string) (string, error) {
	pageToken := c.pageAccessToken(ctx)
	body, err := c.uploadFile(ctx, "/"+c.pageID+"/photos", imagePath, map[string]string{
		"published":    "false",
		"access_token": pageToken,
	})
	if err != nil {
		return "", transportError(err, "instagram staging upload failed")
	}
	photoID := gjson.GetBytes(body, "id").String()
	if photoID == "" {
		return "", transportError(nil, "staging upload did not return a photo id")
	}

	info, err := c.get(ctx, "/"+photoID, url.Values{
		"fields":       {"images,link"},
		"access_token": {pageToken},
	})
	if err != nil {
		return "", transportError(err, "staging photo lookup failed")
	}
	if src := gjson.GetBytes(info, "images.0.source").String(); strings.HasPrefix(src, "http") {
		return src, nil
	}
	if link := gjson.GetBytes(info, "link").String(); strings.HasPrefix(link, "http") {
		return link, nil
	}
	return "", transportError(nil, "no public URL available for staged photo")
}

func (c *metaClient) uploadFile(ctx context.Context, path, filePath string, fields map[string]string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("source", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.readResponse(req)
}

func (c *metaClient) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.readResponse(req)
}

func (c *metaClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.readResponse(req)
}

func (c *metaClient) readResponse(req *http.Request) ([]byte, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return nil, fmt.Errorf("graph API %s returned status %d: %s", req.URL.Path, res.StatusCode, msg)
	}
	return body, nil
}
