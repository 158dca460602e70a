package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/voyager/pkg/domain"
)

// Client implements ports.AssetStore against a Server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client for the server at baseURL. A nil httpClient means
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

func (c *Client) assetURL(location string) (string, error) {
	return url.JoinPath(c.BaseURL, "assets", location)
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asset server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("asset server: read response: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrAssetNotFound
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s", domain.ErrSchemaInvalid, strings.TrimSpace(string(data)))
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("asset server: %s %s: %s: %s", method, target, resp.Status, strings.TrimSpace(string(data)))
	}
	return data, nil
}

func (c *Client) Put(ctx context.Context, location string, data []byte) error {
	target, err := c.assetURL(location)
	if err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	_, err = c.do(ctx, http.MethodPut, target, data)
	return err
}

func (c *Client) Get(ctx context.Context, location string) ([]byte, error) {
	target, err := c.assetURL(location)
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return data, nil
}

func (c *Client) Delete(ctx context.Context, location string) error {
	target, err := c.assetURL(location)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, target, nil)
	return err
}

func (c *Client) List(ctx context.Context, prefix string) ([]string, error) {
	target := c.BaseURL + "/assets?prefix=" + url.QueryEscape(prefix)
	data, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	var locations []string
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, fmt.Errorf("asset server: decode list: %w", err)
	}
	return locations, nil
}
