// Package foodprovider реализует клиент внешней базы продуктов Edamam (food-database parser).
package foodprovider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/magabrotheeeer/calorie-tracker/internal/lib/day"
	"github.com/magabrotheeeer/calorie-tracker/internal/models"
)

const (
	parserPath = "/api/food-database/v2/parser"
	// maxBodySize ограничивает размер читаемого ответа.
	maxBodySize = 4 << 20
)

// Observer получает исход каждого запроса к внешней базе.
type Observer interface {
	ObserveFoodProvider(err error)
}

// Client выполняет поиск продуктов в Edamam.
type Client struct {
	appID      string
	appKey     string
	apiURL     string
	httpClient *http.Client
	observer   Observer
}

// NewClient создаёт новый клиент Edamam.
func NewClient(baseURL, appID, appKey string, timeout time.Duration, observer Observer) *Client {
	return &Client{
		appID:      appID,
		appKey:     appKey,
		apiURL:     strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		observer:   observer,
	}
}

// Search ищет продукты по текстовому запросу. Один запрос без повторов и кэша.
// Любой сбой внешнего сервиса возвращается как models.ErrUpstreamUnavailable.
func (c *Client) Search(ctx context.Context, query string) ([]models.FoodSearchResult, error) {
	const op = "foodprovider.Search"

	result, err := c.search(ctx, query)
	if c.observer != nil {
		c.observer.ObserveFoodProvider(err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrUpstreamUnavailable, err)
	}
	return result, nil
}

func (c *Client) search(ctx context.Context, query string) ([]models.FoodSearchResult, error) {
	params := url.Values{}
	params.Set("ingr", query)
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+parserPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	return parseHints(body)
}

// parseHints разбирает ответ parser: массив hints, в каждом food.label,
// food.nutrients.ENERC_KCAL и food.brand.
func parseHints(body []byte) ([]models.FoodSearchResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid json response")
	}
	hints := gjson.GetBytes(body, "hints")
	if !hints.IsArray() {
		return nil, fmt.Errorf("response has no hints array")
	}

	result := make([]models.FoodSearchResult, 0)
	hints.ForEach(func(_, hint gjson.Result) bool {
		food := hint.Get("food")
		label := strings.TrimSpace(food.Get("label").String())
		if label == "" {
			return true
		}
		brand := strings.TrimSpace(food.Get("brand").String())
		if brand == "" {
			brand = models.DefaultBrand
		}
		result = append(result, models.FoodSearchResult{
			Label: label,
			Cal:   day.RoundKcal(food.Get("nutrients.ENERC_KCAL").Float()),
			Brand: brand,
		})
		return true
	})
	return result, nil
}
