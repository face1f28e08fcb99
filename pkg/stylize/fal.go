// Package stylize wraps the fal.ai image-stylization API. Callers pay for
// every invocation, so the client is only reached after the credit-spend
// gate has granted the request.
package stylize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const cartoonifyURL = "https://fal.run/fal-ai/cartoonify"

type FalClient struct {
	apiKey string
	client *http.Client
}

func NewFalClient(apiKey string) *FalClient {
	return &FalClient{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

type cartoonifyRequest struct {
	ImageURL string `json:"image_url"`
}

type cartoonifyResponse struct {
	Image struct {
		URL string `json:"url"`
	} `json:"image"`
}

// Cartoonify submits an image and returns the URL of the stylized result.
func (c *FalClient) Cartoonify(ctx context.Context, imageURL string) (string, error) {
	payload, err := json.Marshal(cartoonifyRequest{ImageURL: imageURL})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cartoonifyURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("fal returned status %d: %s", resp.StatusCode, string(body))
	}

	var result cartoonifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode fal response: %w", err)
	}
	if result.Image.URL == "" {
		return "", fmt.Errorf("fal response missing image url")
	}

	return result.Image.URL, nil
}
