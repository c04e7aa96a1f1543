// HTTP client for the hosted video generation API.
package contentagent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"
)

const (
	defaultVideoBaseURL = "https://api.openai.com/v1"
	videoModel          = "sora-2"

	videoPollInitial = 2 * time.Second
	videoPollMax     = 10 * time.Second
	videoPollBudget  = 10 * time.Minute
)

// videoClient drives the asynchronous /videos endpoint: create a job, poll
// until it settles, download the rendered content.
type videoClient struct {
	baseURL     string
	apiKey      string
	model       string
	httpClient  *http.Client
	pollInitial time.Duration
	pollBudget  time.Duration
}

func newVideoClient(baseURL, apiKey string) *videoClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultVideoBaseURL
	}
	return &videoClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       videoModel,
		httpClient:  &http.Client{Timeout: callTimeout},
		pollInitial: videoPollInitial,
		pollBudget:  videoPollBudget,
	}
}

func (c *videoClient) Generate(ctx context.Context, prompt, size string, seconds int) (videoJob, error) {
	payload, err := json.Marshal(map[string]any{
		"model":   c.model,
		"prompt":  prompt,
		"size":    size,
		"seconds": seconds,
	})
	if err != nil {
		return videoJob{}, err
	}

	body, err := c.do(ctx, http.MethodPost, "/videos", payload)
	if err != nil {
		return videoJob{}, err
	}

	id := gjson.GetBytes(body, "id").String()
	if id == "" {
		return videoJob{}, fmt.Errorf("video create response missing id")
	}

	job := videoJob{ID: id, URL: gjson.GetBytes(body, "url").String()}
	status := gjson.GetBytes(body, "status").String()
	if status == "completed" {
		return job, nil
	}

	if err := c.waitForCompletion(ctx, &job); err != nil {
		return videoJob{}, err
	}
	return job, nil
}

// waitForCompletion polls the job status with exponential backoff until it
// completes, fails, or the poll budget runs out.
func (c *videoClient) waitForCompletion(ctx context.Context, job *videoJob) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.pollInitial
	policy.MaxInterval = videoPollMax
	policy.MaxElapsedTime = c.pollBudget

	return backoff.Retry(func() error {
		body, err := c.do(ctx, http.MethodGet, "/videos/"+job.ID, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		switch status := gjson.GetBytes(body, "status").String(); status {
		case "completed":
			if url := gjson.GetBytes(body, "url").String(); url != "" {
				job.URL = url
			}
			return nil
		case "failed":
			msg := gjson.GetBytes(body, "error.message").String()
			if msg == "" {
				msg = "video generation failed"
			}
			return backoff.Permanent(fmt.Errorf("video job %s: %s", job.ID, msg))
		default:
			return fmt.Errorf("video job %s still %s", job.ID, status)
		}
	}, backoff.WithContext(policy, ctx))
}

func (c *videoClient) Download(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/videos/"+id+"/content", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("video download returned status %d", res.StatusCode)
	}
	return io.ReadAll(res.Body)
}

func (c *videoClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := gjson.GetBytes(data, "error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		return nil, fmt.Errorf("video API %s %s returned status %d: %s", method, path, res.StatusCode, msg)
	}
	return data, nil
}
