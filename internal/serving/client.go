// Package serving scores paragraphs with a model hosted behind a
// TensorFlow-Serving style REST predict endpoint.
package serving

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/recipeset/pkg/recipeset/eval"
)

// Client calls a predict endpoint such as
// http://host:8501/v1/models/paragraphs:predict.
type Client struct {
	URL string
	// TextInput and MetaInput name the model's input tensors.
	TextInput string
	MetaInput string

	HTTPClient *http.Client
}

type predictRequest struct {
	Inputs map[string][][]float64 `json:"inputs"`
}

type predictResponse struct {
	Outputs     json.RawMessage `json:"outputs"`
	Predictions json.RawMessage `json:"predictions"`
	Error       string          `json:"error"`
}

// Score implements eval.Scorer.
func (c *Client) Score(ctx context.Context, in eval.Input) ([]float64, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("serving: URL required")
	}

	inputs := map[string][][]float64{c.textInput(): rows(in.Text)}
	if in.Meta != nil {
		inputs[c.metaInput()] = rows(in.Meta)
	}
	body, err := json.Marshal(predictRequest{Inputs: inputs})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var payload predictResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("serving: decode response (status %d): %w", resp.StatusCode, err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("serving error: %s", payload.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serving: unexpected status %d", resp.StatusCode)
	}

	raw := payload.Outputs
	if len(raw) == 0 {
		raw = payload.Predictions
	}
	return decodeScores(raw)
}

// decodeScores accepts [p, ...] or [[p], ...].
func decodeScores(raw json.RawMessage) ([]float64, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("serving: empty response")
	}
	var flat []float64
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}
	var nested [][]float64
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil, fmt.Errorf("serving: unexpected output shape: %w", err)
	}
	out := make([]float64, len(nested))
	for i, row := range nested {
		if len(row) == 0 {
			return nil, fmt.Errorf("serving: empty output row %d", i)
		}
		out[i] = row[0]
	}
	return out, nil
}

func rows(m *mat.Dense) [][]float64 {
	if m == nil {
		return nil
	}
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

func (c *Client) textInput() string {
	if c.TextInput != "" {
		return c.TextInput
	}
	return "text"
}

func (c *Client) metaInput() string {
	if c.MetaInput != "" {
		return c.MetaInput
	}
	return "meta"
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	hc := rc.StandardClient()
	hc.Timeout = 30 * time.Second
	return hc
}
