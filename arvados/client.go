// arvados/client.go
package arvados

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/model"
)

const apiPrefix = "/arvados/v1"

// API is the subset of the Arvados REST API the explorer talks to.
type API interface {
	ClusterID() string
	List(ctx context.Context, endpoint string, params model.ListParams) (*model.ListResults, error)
	GroupContents(ctx context.Context, uuid string, params model.ListParams) (*model.ListResults, error)
	Get(ctx context.Context, endpoint string, uuid string) (model.Resource, error)
	CurrentUser(ctx context.Context) (*model.User, error)
}

// Options configures one cluster session.
type Options struct {
	ClusterID         string
	APIHost           string
	Token             string
	Insecure          bool
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
	HTTPClient        *http.Client
}

// Client is one authenticated session against an Arvados API server.
type Client struct {
	clusterID string
	baseURL   string
	token     string
	http      *http.Client
	limiter   *rate.Limiter
}

var _ API = &Client{}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if opts.Insecure {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		httpClient = &http.Client{Timeout: timeout, Transport: transport}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		clusterID: opts.ClusterID,
		baseURL:   BaseURL(opts.APIHost),
		token:     opts.Token,
		http:      httpClient,
		limiter:   limiter,
	}
}

// BaseURL turns a configured API host into a URL. Bare host:port values get
// https.
func BaseURL(apiHost string) string {
	host := strings.TrimRight(apiHost, "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}

func (c *Client) ClusterID() string {
	return c.clusterID
}

// List calls GET /arvados/v1/{endpoint}.
func (c *Client) List(ctx context.Context, endpoint string, params model.ListParams) (*model.ListResults, error) {
	query, err := EncodeListParams(params)
	if err != nil {
		return nil, err
	}
	var raw model.RawListResults
	if err := c.do(ctx, apiPrefix+"/"+endpoint, query, &raw); err != nil {
		return nil, err
	}
	return raw.Decode()
}

// GroupContents lists the mixed contents of a project. An empty uuid lists
// across every readable project, which is how search works.
func (c *Client) GroupContents(ctx context.Context, uuid string, params model.ListParams) (*model.ListResults, error) {
	path := apiPrefix + "/groups/contents"
	if uuid != "" {
		path = apiPrefix + "/groups/" + url.PathEscape(uuid) + "/contents"
	}
	query, err := EncodeListParams(params)
	if err != nil {
		return nil, err
	}
	var raw model.RawListResults
	if err := c.do(ctx, path, query, &raw); err != nil {
		return nil, err
	}
	return raw.Decode()
}

func (c *Client) Get(ctx context.Context, endpoint string, uuid string) (model.Resource, error) {
	var raw json.RawMessage
	if err := c.do(ctx, apiPrefix+"/"+endpoint+"/"+url.PathEscape(uuid), nil, &raw); err != nil {
		return nil, err
	}
	return model.DecodeResource(raw)
}

func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, apiPrefix+"/users/current", nil, &raw); err != nil {
		return nil, err
	}
	res, err := model.DecodeResource(raw)
	if err != nil {
		return nil, err
	}
	user, ok := res.(*model.User)
	if !ok {
		return nil, fmt.Errorf("%w: users/current returned %s", wb_errors.ErrInvalidResourceData, res.Header().Kind)
	}
	return user, nil
}

// EncodeListParams renders list arguments the way the API server reads them:
// scalars as strings, filters, order and select as JSON.
func EncodeListParams(params model.ListParams) (url.Values, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(params.Limit))
	q.Set("offset", strconv.Itoa(params.Offset))
	if params.Count != "" {
		q.Set("count", string(params.Count))
	}
	if params.Filters != nil {
		filters, err := json.Marshal(params.Filters)
		if err != nil {
			return nil, fmt.Errorf("encoding filters: %w", err)
		}
		q.Set("filters", string(filters))
	}
	if len(params.Order) > 0 {
		order, err := json.Marshal(params.Order)
		if err != nil {
			return nil, fmt.Errorf("encoding order: %w", err)
		}
		q.Set("order", string(order))
	}
	if len(params.Select) > 0 {
		sel, err := json.Marshal(params.Select)
		if err != nil {
			return nil, fmt.Errorf("encoding select: %w", err)
		}
		q.Set("select", string(sel))
	}
	if params.IncludeTrash {
		q.Set("include_trash", "true")
	}
	if params.IncludeOldVersions {
		q.Set("include_old_versions", "true")
	}
	if params.Distinct {
		q.Set("distinct", "true")
	}
	if params.Recursive {
		q.Set("recursive", "true")
	}
	return q, nil
}

type errorBody struct {
	Errors []string `json:"errors"`
}

func (c *Client) do(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", wb_errors.ErrTransport, err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", wb_errors.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("Arvados request failed",
			zap.String("cluster", c.clusterID),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%w: %v", wb_errors.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", wb_errors.ErrTransport, err)
	}

	logger.Debug("Arvados request",
		zap.String("cluster", c.clusterID),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &wb_errors.APIError{Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil {
			apiErr.Errors = eb.Errors
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", wb_errors.ErrInvalidResourceData, err)
	}
	return nil
}
