package carrier

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vehicle-shipping-backend/internal/config"
	"vehicle-shipping-backend/internal/domain/tracking"
)

// Client fetches tracking details from the carrier HTTP API and implements
// tracking.Source.
type Client struct {
	cfg        *config.CarrierConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.CarrierConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		logger:     logger,
	}
}

func (c *Client) Fetch(ctx context.Context, trackingNumber string, withRoute bool) (*tracking.Details, error) {
	resp, err := c.getTrackingDetails(ctx, trackingNumber, withRoute)
	if err != nil {
		return nil, err
	}

	if len(resp.Response.Shipments) == 0 {
		return nil, tracking.ErrNoData
	}

	return Normalize(trackingNumber, &resp.Response.Shipments[0], withRoute), nil
}

func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	u, err := url.Parse(c.cfg.BaseURL + "/security/v1/oauth/token")
	if err != nil {
		return "", fmt.Errorf("invalid carrier base URL: %w", err)
	}

	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+basicAuth(c.cfg.ClientID, c.cfg.ClientSecret))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", tracking.ErrUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Carrier token request failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", bodyBytes),
		)
		return "", fmt.Errorf("%w: token endpoint returned %d", tracking.ErrUnavailable, resp.StatusCode)
	}

	var authResponse OAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResponse); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %v", tracking.ErrUnavailable, err)
	}

	return authResponse.AccessToken, nil
}

func (c *Client) getTrackingDetails(ctx context.Context, trackingNumber string, withRoute bool) (*ApiResponse, error) {
	endpoint := "/api/track/v1/details/" + trackingNumber

	u, err := url.Parse(c.cfg.BaseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid carrier base URL: %w", err)
	}

	q := u.Query()
	q.Set("locale", "en_US")
	q.Set("returnMilestones", fmt.Sprintf("%t", withRoute))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("transId", uuid.New().String())
	req.Header.Set("transactionSrc", "vehicle_shipping_backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tracking.ErrUnavailable, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil, tracking.ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Carrier tracking request failed",
			zap.String("tracking_number", trackingNumber),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", bodyBytes),
		)
		return nil, fmt.Errorf("%w: tracking endpoint returned %d", tracking.ErrUnavailable, resp.StatusCode)
	}

	var apiResponse ApiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("%w: failed to decode tracking response: %v", tracking.ErrUnavailable, err)
	}

	return &apiResponse, nil
}
