// Package imagen generates vision-board images through the Imagen predict
// REST API on Vertex AI.
package imagen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultLocation = "us-central1"
	defaultModel    = "imagen-4.0-generate-preview-06-06"

	// promptSuffix steers generations toward usable vision-board imagery.
	promptSuffix = ", photorealistic, no text, forward-looking view"
)

// PlaceholderDataURL is a 1x1 PNG returned whenever image generation is
// unavailable, so the surrounding flow never fails on a missing image.
const PlaceholderDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type Client struct {
	projectID string
	location  string
	model     string
	baseURL   string
	tokens    oauth2.TokenSource
	client    *http.Client
}

// NewClient builds a client around an existing token source. Used directly
// by tests; production wiring goes through NewClientFromCredentials.
func NewClient(projectID string, tokens oauth2.TokenSource) *Client {
	return &Client{
		projectID: projectID,
		location:  defaultLocation,
		model:     defaultModel,
		baseURL:   fmt.Sprintf("https://%s-aiplatform.googleapis.com", defaultLocation),
		tokens:    tokens,
		client:    &http.Client{Timeout: 120 * time.Second},
	}
}

// NewClientFromCredentials decodes a base64-encoded service-account JSON
// document and builds a client with a cloud-platform token source.
func NewClientFromCredentials(ctx context.Context, projectID, encodedCredentials string) (*Client, error) {
	decoded, err := base64.StdEncoding.DecodeString(encodedCredentials)
	if err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, decoded, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return NewClient(projectID, creds.TokenSource), nil
}

// SetBaseURL points the client at a test server.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

type predictRequest struct {
	Instances []struct {
		Prompt string `json:"prompt"`
	} `json:"instances"`
	Parameters struct {
		SampleCount int `json:"sampleCount"`
	} `json:"parameters"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// Generate produces a single image for the prompt and returns it as a
// data URL. Callers fall back to PlaceholderDataURL on error; an image
// failure must never fail the surrounding request.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("access token: %w", err)
	}

	var reqBody predictRequest
	reqBody.Instances = append(reqBody.Instances, struct {
		Prompt string `json:"prompt"`
	}{Prompt: prompt + promptSuffix})
	reqBody.Parameters.SampleCount = 1

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
		c.baseURL, c.projectID, c.location, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp predictResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(apiResp.Predictions) == 0 {
		return "", fmt.Errorf("no images were generated")
	}

	return "data:image/png;base64," + apiResp.Predictions[0].BytesBase64Encoded, nil
}
