// Package clv captures closing lines for emitted recommendations so their
// closing-line value can be graded retrospectively.
package clv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
)

// ClosingLineSource supplies the market's final pre-tipoff line for a game
// and market. Implemented by the odds aggregator client below; tests inject
// a fake.
type ClosingLineSource interface {
	ClosingLine(ctx context.Context, game *models.Game, kind models.MarketKind) (float64, error)
}

// OddsAPIClient reads closing lines from the sportsbook-odds aggregator. The
// aggregator rate-limits aggressively, so requests flow through a limiter and
// a retrying client that backs off on 429s and server errors.
type OddsAPIClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	logger  *logrus.Logger
}

// NewOddsAPIClient creates a rate-limited odds aggregator client
func NewOddsAPIClient(cfg *config.OddsAPIConfig, logger *logrus.Logger) *OddsAPIClient {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.CheckRetry = retryPolicy()
	retryClient.Logger = nil

	return &OddsAPIClient{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// closingLineResponse represents the aggregator's closing line payload
type closingLineResponse struct {
	Line      float64   `json:"line"`
	Bookmaker string    `json:"bookmaker"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ClosingLine implements ClosingLineSource against the aggregator
func (c *OddsAPIClient) ClosingLine(ctx context.Context, game *models.Game, kind models.MarketKind) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/closing-line?%s", c.baseURL, url.Values{
		"api_key":   {c.apiKey},
		"home_team": {game.HomeTeam},
		"away_team": {game.AwayTeam},
		"market":    {string(kind.Type())},
		"period":    {string(kind.Period())},
		"date":      {game.GameDate().Format("2006-01-02")},
	}.Encode())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("closing line request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, models.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("closing line request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var line closingLineResponse
	if err := json.NewDecoder(resp.Body).Decode(&line); err != nil {
		return 0, fmt.Errorf("failed to decode closing line: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"home_team": game.HomeTeam,
		"away_team": game.AwayTeam,
		"market":    kind,
		"line":      line.Line,
		"bookmaker": line.Bookmaker,
	}).Debug("Closing line fetched")

	return line.Line, nil
}

// retryPolicy retries network errors, rate limits and server errors; other
// client errors fail immediately.
func retryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return true, err
		}
		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true, nil
		}
		return false, nil
	}
}
