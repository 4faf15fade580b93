package page

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/standingsfeed/standings-service/internal/app/models"
)

const userAgent = "golang-app"

// Client retrieves raw result pages. A response is returned for every
// completed round trip regardless of status code; errors mean the round trip
// itself failed. Classification of status codes is the caller's concern.
type Client struct {
	httpClient HTTPManager
	logger     Logger
}

func NewClient(httpClient HTTPManager, logger Logger) *Client {
	return &Client{httpClient: httpClient, logger: logger}
}

func (c *Client) Fetch(ctx context.Context, url string) (*models.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request to fetch page: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to fetch page: %w", err)
	}

	defer func() {
		err := res.Body.Close()
		if err != nil {
			c.logger.Error().Err(err).Msg("couldn't close response body")
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read page response body: %w", err)
	}

	return &models.FetchResult{
		URL:        url,
		StatusCode: res.StatusCode,
		Body:       string(body),
	}, nil
}
