package photo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// MaxResponseSize caps how much of a remote response is read.
const MaxResponseSize = 32 << 20

var (
	defaultClient     *retryablehttp.Client
	defaultClientOnce sync.Once
)

// DefaultClient returns the shared client used when an adapter has no
// Client set: two retries and a 10 second timeout per attempt.
func DefaultClient() *retryablehttp.Client {
	defaultClientOnce.Do(func() {
		defaultClient = retryablehttp.NewClient()
		defaultClient.RetryMax = 2
		defaultClient.HTTPClient.Timeout = 10 * time.Second
		defaultClient.Logger = nil
	})
	return defaultClient
}

// RemoteSegmenter posts the portrait as PNG to URL and expects the
// segmented PNG in return.
type RemoteSegmenter struct {
	URL    string
	Client *retryablehttp.Client
}

// Segment implements Segmenter.
func (r *RemoteSegmenter) Segment(ctx context.Context, img image.Image) (image.Image, error) {
	body, err := post(ctx, r.Client, r.URL, img, "image/png")
	if err != nil {
		return nil, err
	}
	out, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("photo: decode segmentation: %w", err)
	}
	return out, nil
}

// RemoteDetector posts the portrait as PNG to URL and expects JSON:
//
//	{"face": {"left_eye": {"x": 1, "y": 2}, "right_eye": {"x": 3, "y": 4}}}
//
// A null or missing face means no face was found.
type RemoteDetector struct {
	URL    string
	Client *retryablehttp.Client
}

type detectResponse struct {
	Face *Landmarks `json:"face"`
}

// Detect implements LandmarkDetector.
func (r *RemoteDetector) Detect(ctx context.Context, img image.Image) (*Landmarks, error) {
	body, err := post(ctx, r.Client, r.URL, img, "application/json")
	if err != nil {
		return nil, err
	}
	var resp detectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("photo: decode landmarks: %w", err)
	}
	return resp.Face, nil
}

func post(ctx context.Context, client *retryablehttp.Client, url string, img image.Image, accept string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("photo: no service URL")
	}
	if client == nil {
		client = DefaultClient()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("photo: encode request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("photo: create request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("Accept", accept)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photo: post %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo: post %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("photo: read response: %w", err)
	}
	return body, nil
}
