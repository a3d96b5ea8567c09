package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"core/internal/config"
	"core/internal/textutil"

	"go.uber.org/zap"
)

// PostalResolver resolves a city name to a postal code. An empty result is a
// normal branch (the assistant asks the user instead), never an error.
type PostalResolver interface {
	ResolvePostalCode(ctx context.Context, city string) string
}

// commune is one record of the public locality directory
type commune struct {
	Nom          string   `json:"nom"`
	CodesPostaux []string `json:"codesPostaux"`
}

// GeoClient queries the public commune directory (geo.api.gouv.fr shape)
type GeoClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewGeoClient creates a commune directory client
func NewGeoClient(cfg *config.GeoConfig, log *zap.Logger) *GeoClient {
	return &GeoClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		log: log,
	}
}

// ResolvePostalCode fetches the full commune list once and fuzzy-matches the
// city: folded names match when equal, containing, or contained. The first
// postal code of the first matching commune wins. Any failure is logged and
// swallowed; the caller falls back to asking the user.
func (c *GeoClient) ResolvePostalCode(ctx context.Context, city string) string {
	communes, err := c.fetchCommunes(ctx)
	if err != nil {
		c.log.Warn("commune lookup failed, falling back to asking the user",
			zap.String("city", city), zap.Error(err))
		return ""
	}

	query := textutil.Fold(city)
	for _, com := range communes {
		name := textutil.Fold(com.Nom)
		if name == query || strings.Contains(name, query) || strings.Contains(query, name) {
			if len(com.CodesPostaux) > 0 {
				return com.CodesPostaux[0]
			}
		}
	}

	c.log.Info("no commune matched city", zap.String("city", city))
	return ""
}

func (c *GeoClient) fetchCommunes(ctx context.Context) ([]commune, error) {
	url := c.baseURL + "/communes?fields=nom,code,codesPostaux&format=json&geometry=centre"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("commune directory returned status %d: %s", resp.StatusCode, string(body))
	}

	var communes []commune
	if err := json.NewDecoder(resp.Body).Decode(&communes); err != nil {
		return nil, fmt.Errorf("failed to decode commune list: %w", err)
	}
	return communes, nil
}
