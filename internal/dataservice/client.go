// Package dataservice is an HTTP client for the catalog API.
package dataservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/klassico/storefront/internal/logger"
	"github.com/klassico/storefront/internal/models"
	"github.com/klassico/storefront/internal/productform"
	"go.uber.org/zap"
)

var ErrLoginFailed = errors.New("login failed")

var (
	_ productform.DataService = (*Client)(nil)
	_ productform.Session     = (*Client)(nil)
)

// Client calls the catalog API. Responses with a non-2xx status are logged and
// returned as nil results with a nil error; transport and decoding failures are errors.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken uses an existing access token instead of logging in.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	var tokens struct {
		Token string `json:"token"`
	}
	ok, err := c.do(ctx, http.MethodPost, "/login", map[string]string{"username": username, "password": password}, &tokens)
	if err != nil {
		return err
	}
	if !ok || tokens.Token == "" {
		return ErrLoginFailed
	}
	c.SetToken(tokens.Token)
	return nil
}

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	ok, err := c.do(ctx, http.MethodGet, "/categories", nil, &categories)
	if err != nil || !ok {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return c.product(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil)
}

// ListProducts passes query through to the listing filters and returns the page and total count.
func (c *Client) ListProducts(ctx context.Context, query url.Values) ([]models.Product, int, error) {
	var result struct {
		Data []models.Product `json:"data"`
		Meta struct {
			TotalCount int `json:"total_count"`
		} `json:"meta"`
	}
	path := "/products"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	ok, err := c.do(ctx, http.MethodGet, path, nil, &result)
	if err != nil || !ok {
		return nil, 0, err
	}
	return result.Data, result.Meta.TotalCount, nil
}

func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	return c.product(ctx, http.MethodPost, "/products", models.PatchFrom(p))
}

func (c *Client) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	return c.product(ctx, http.MethodPatch, "/products/"+url.PathEscape(id), patch)
}

func (c *Client) UploadProductImage(ctx context.Context, file productform.File, productID string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/products/"+url.PathEscape(productID)+"/image", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result struct {
		ImageURL string `json:"image_url"`
	}
	ok, err := c.send(req, &result)
	if err != nil || !ok {
		return "", err
	}
	return result.ImageURL, nil
}

func (c *Client) product(ctx context.Context, method, path string, payload any) (*models.Product, error) {
	var p models.Product
	ok, err := c.do(ctx, method, path, payload, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, dest any) (bool, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return false, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return false, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, dest)
}

// send reports false when the service answered with a non-2xx status.
func (c *Client) send(req *http.Request, dest any) (bool, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("Catalog service rejected request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", strings.TrimSpace(string(msg))),
		)
		return false, nil
	}

	if dest == nil {
		return true, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return false, fmt.Errorf("decoding %s %s: %w", req.Method, req.URL.Path, err)
	}
	return true, nil
}
