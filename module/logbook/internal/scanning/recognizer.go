package scanning

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"
)

// Recognizer extracts raw text from a receipt image. The engine itself is
// external; implementations only fail when the image cannot be processed,
// never on unrecognized content.
type Recognizer interface {
	Recognize(ctx context.Context, img []byte) (string, error)
	Close() error
}

type recognizeRequest struct {
	Image    string `json:"image"`
	Language string `json:"language"`
}

type recognizeResponse struct {
	Text string `json:"text"`
}

// HTTPRecognizer talks to a self-hosted OCR service (tesseract behind
// HTTP). The client is reused across scans and released via Close.
type HTTPRecognizer struct {
	baseURL  string
	language string
	client   *http.Client
}

func NewHTTPRecognizer(baseURL, language string) *HTTPRecognizer {
	return &HTTPRecognizer{
		baseURL:  baseURL,
		language: language,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *HTTPRecognizer) Recognize(ctx context.Context, img []byte) (string, error) {
	// Reject anything that is not a decodable image before shipping it off.
	if _, _, err := image.Decode(bytes.NewReader(img)); err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	body, err := json.Marshal(recognizeRequest{
		Image:    base64.StdEncoding.EncodeToString(img),
		Language: r.language,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/recognize", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr service returned %d", resp.StatusCode)
	}

	var out recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Text, nil
}

func (r *HTTPRecognizer) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
