package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/foodyou-backend/internal/pkg/httpx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

const (
	DefaultBaseURL   = "https://world.openfoodfacts.org/"
	DefaultUserAgent = "FoodYou/1.0 (foodyou-backend)"
	DefaultCountry   = "world"
	DefaultTimeout   = 10 * time.Second
)

// Client reads products from Open Food Facts.
type Client interface {
	// GetProduct returns nil, nil when the code is unknown.
	GetProduct(ctx context.Context, code string) (*Product, error)
	Search(ctx context.Context, query string, page, pageSize int) (*PageResponse, error)
}

type Config struct {
	BaseURL   string
	UserAgent string
	Country   string
	Timeout   time.Duration
	Retries   int
}

type client struct {
	log        *logger.Logger
	baseURL    *url.URL
	userAgent  string
	country    string
	httpClient *http.Client
	retry      httpx.RetryPolicy
	tracer     trace.Tracer
}

func NewClient(cfg Config, log *logger.Logger) (Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse OFF base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = DefaultUserAgent
	}
	country := strings.ToLower(strings.TrimSpace(cfg.Country))
	if country == "" {
		country = DefaultCountry
	}
	return &client{
		log:        log.With("client", "OpenFoodFacts"),
		baseURL:    u,
		userAgent:  ua,
		country:    country,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retry: httpx.RetryPolicy{
			Attempts: cfg.Retries + 1,
			Backoff:  500 * time.Millisecond,
			MaxWait:  10 * time.Second,
		},
		tracer: otel.Tracer("foodyou/openfoodfacts"),
	}, nil
}

func (c *client) GetProduct(ctx context.Context, code string) (*Product, error) {
	code = strings.TrimSpace(code)
	ctx, span := c.tracer.Start(ctx, "openfoodfacts.GetProduct", trace.WithAttributes(attribute.String("off.code", code)))
	defer span.End()

	q := url.Values{}
	q.Set("countries", c.country)
	q.Set("fields", Fields)
	endpoint := c.resolve("api/v2/product/"+url.PathEscape(code), q)

	resp, err := httpx.Do(ctx, c.httpClient, c.retry, c.newGet(endpoint), http.StatusNotFound)
	if err != nil {
		recordErr(span, err)
		return nil, fmt.Errorf("get product %s: %w", code, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		c.log.Debug("product not found", "code", code)
		return nil, nil
	}
	var out ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		recordErr(span, err)
		return nil, fmt.Errorf("decode product %s: %w", code, err)
	}
	return out.Product, nil
}

func (c *client) Search(ctx context.Context, query string, page, pageSize int) (*PageResponse, error) {
	ctx, span := c.tracer.Start(ctx, "openfoodfacts.Search", trace.WithAttributes(
		attribute.String("off.query", query),
		attribute.Int("off.page", page),
		attribute.Int("off.page_size", pageSize),
	))
	defer span.End()

	q := url.Values{}
	q.Set("search_simple", "1")
	q.Set("json", "1")
	q.Set("search_terms", query)
	q.Set("countries", c.country)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	q.Set("fields", Fields)
	endpoint := c.resolve("cgi/search.pl", q)

	resp, err := httpx.Do(ctx, c.httpClient, c.retry, c.newGet(endpoint))
	if err != nil {
		recordErr(span, err)
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer resp.Body.Close()

	var out PageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		recordErr(span, err)
		return nil, fmt.Errorf("decode search %q: %w", query, err)
	}
	span.SetAttributes(attribute.Int("off.count", int(out.Count)), attribute.Int("off.returned", len(out.Products)))
	return &out, nil
}

func (c *client) resolve(path string, q url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *client) newGet(endpoint string) func(ctx context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")
		return req, nil
	}
}

func recordErr(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
