package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ray-remotestate/padipos/models"
)

type statsResponse models.Stats

func (s statsResponse) Validate() error {
	if s.TotalOrders < 0 || s.TotalOmzet < 0 {
		return errors.New("negative totals")
	}
	return nil
}

type topProduct models.TopProduct

func (p topProduct) Validate() error {
	if p.Name == "" {
		return errors.New("product name is missing")
	}
	return nil
}

type dailyOmzet models.DailyOmzet

func (d dailyOmzet) Validate() error {
	if d.Date.IsZero() {
		return errors.New("date is missing")
	}
	return nil
}

func (c *Client) GetStats(ctx context.Context, token string) (*models.Stats, error) {
	var stats statsResponse
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/dashboard/stats", token: token}, &stats); err != nil {
		return nil, err
	}
	out := models.Stats(stats)
	return &out, nil
}

// GetTopProducts lists best sellers, optionally restricted to one category.
func (c *Client) GetTopProducts(ctx context.Context, token string, category models.Category) ([]models.TopProduct, error) {
	path := "/api/dashboard/top-products"
	if category.IsValid() {
		path += "?category=" + url.QueryEscape(string(category))
	}
	items, err := decodeList[topProduct](ctx, c, request{method: http.MethodGet, path: path, token: token})
	if err != nil {
		return nil, err
	}
	out := make([]models.TopProduct, len(items))
	for i, p := range items {
		out[i] = models.TopProduct(p)
	}
	return out, nil
}

// GetDailyOmzet returns revenue per day. Zero days leave that bound open.
func (c *Client) GetDailyOmzet(ctx context.Context, token string, start, end models.Day) ([]models.DailyOmzet, error) {
	q := url.Values{}
	if !start.IsZero() {
		q.Set("startDate", start.String())
	}
	if !end.IsZero() {
		q.Set("endDate", end.String())
	}
	path := "/api/dashboard/daily-omzet"
	if len(q) > 0 {
		path = fmt.Sprintf("%s?%s", path, q.Encode())
	}

	days, err := decodeList[dailyOmzet](ctx, c, request{method: http.MethodGet, path: path, token: token})
	if err != nil {
		return nil, err
	}
	out := make([]models.DailyOmzet, len(days))
	for i, d := range days {
		out[i] = models.DailyOmzet(d)
	}
	return out, nil
}
