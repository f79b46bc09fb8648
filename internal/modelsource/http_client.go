package modelsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
)

// HTTPClient asks a trained model service for cover probabilities. It
// satisfies the recommendation engine's ProbabilitySource contract, so
// enabling it swaps the statistical CDF estimate for the trained one without
// touching the engine.
type HTTPClient struct {
	client       *http.Client
	baseURL      string
	modelVersion string
	logger       *logrus.Logger
}

// NewHTTPClient creates an HTTP client for the model service
func NewHTTPClient(cfg *config.ModelSourceConfig, logger *logrus.Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		baseURL:      cfg.HTTPAddress,
		modelVersion: cfg.ModelVersion,
		logger:       logger,
	}
}

// probabilityRequest represents the probability request payload
type probabilityRequest struct {
	Market       string  `json:"market"`
	Edge         float64 `json:"edge"`
	Sigma        float64 `json:"sigma"`
	ModelVersion string  `json:"model_version"`
}

// probabilityResponse represents the probability response
type probabilityResponse struct {
	Probability  float64 `json:"probability"`
	ModelVersion string  `json:"model_version"`
}

// CoverProbability implements the recommendation engine's probability
// source contract against the model service.
func (c *HTTPClient) CoverProbability(ctx context.Context, market models.MarketKind, edge, sigma float64) (float64, error) {
	start := time.Now()

	jsonData, err := json.Marshal(probabilityRequest{
		Market:       string(market),
		Edge:         edge,
		Sigma:        sigma,
		ModelVersion: c.modelVersion,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/probability", bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("probability request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var probResp probabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&probResp); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if probResp.Probability < 0 || probResp.Probability > 1 {
		return 0, fmt.Errorf("%w: probability %f out of range", ErrInvalidResponse, probResp.Probability)
	}

	c.logger.WithFields(logrus.Fields{
		"market":        market,
		"probability":   probResp.Probability,
		"model_version": probResp.ModelVersion,
		"duration":      time.Since(start),
	}).Debug("Model service probability")

	return probResp.Probability, nil
}
