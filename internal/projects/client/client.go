// Package client implements the projects resource API over HTTP.
package client

import (
	"bytes"
	"context"
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

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
)

const (
	opFetchPage = "fetch_page"
	opSave      = "save"
	opCreate    = "create"

	maxResponseBytes = 4 << 20
)

// Options configures an HTTPClient. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	PageSize  int
	Timeout   time.Duration
	RateLimit rate.Limit
	Burst     int
	// InitData is sent as the Telegram init data header when set.
	InitData string
	Logger   *logging.Logger
}

// HTTPClient talks to the projects API exposed by cmd/api.
type HTTPClient struct {
	baseURL    string
	pageSize   int
	initData   string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logging.Logger
}

// New creates a client for the API rooted at opt.BaseURL (e.g. "http://localhost:8080/api/v1").
func New(opt Options) *HTTPClient {
	if opt.PageSize <= 0 {
		opt.PageSize = 20
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 30 * time.Second
	}
	if opt.RateLimit <= 0 {
		opt.RateLimit = rate.Limit(5)
	}
	if opt.Burst <= 0 {
		opt.Burst = 10
	}
	if opt.Logger == nil {
		opt.Logger = logging.Nop()
	}
	return &HTTPClient{
		baseURL:  strings.TrimRight(opt.BaseURL, "/"),
		pageSize: opt.PageSize,
		initData: opt.InitData,
		httpClient: &http.Client{
			Timeout: opt.Timeout,
		},
		limiter: rate.NewLimiter(opt.RateLimit, opt.Burst),
		log:     opt.Logger.Named("client"),
	}
}

type envelope struct {
	OK       bool             `json:"ok"`
	Error    string           `json:"error,omitempty"`
	Project  *domain.Project  `json:"project,omitempty"`
	Projects []domain.Project `json:"projects,omitempty"`
}

// FetchPage returns the projects of the given 1-based page sorted by name.
// An empty page yields an empty slice.
func (c *HTTPClient) FetchPage(ctx context.Context, page int) (out []domain.Project, err error) {
	started := time.Now()
	defer func() { recordUpstreamCall(opFetchPage, started, err) }()

	q := url.Values{}
	q.Set("_page", strconv.Itoa(page))
	q.Set("_limit", strconv.Itoa(c.pageSize))
	q.Set("_sort", "name")

	env, err := c.do(ctx, opFetchPage, http.MethodGet, "/projects?"+q.Encode(), nil, http.StatusOK, msgFetchFailed)
	if err != nil {
		return nil, err
	}
	if env.Projects == nil {
		return []domain.Project{}, nil
	}
	return env.Projects, nil
}

// Save sends p to the API and returns the confirmed project.
func (c *HTTPClient) Save(ctx context.Context, p domain.Project) (out domain.Project, err error) {
	started := time.Now()
	defer func() { recordUpstreamCall(opSave, started, err) }()

	path := fmt.Sprintf("/projects/%d", p.ID)
	env, err := c.do(ctx, opSave, http.MethodPut, path, p, http.StatusOK, msgSaveFailed)
	if err != nil {
		return domain.Project{}, err
	}
	if env.Project == nil {
		return domain.Project{}, &NetworkError{Op: opSave, Status: http.StatusOK, Message: msgSaveFailed,
			Err: fmt.Errorf("response has no project")}
	}
	return *env.Project, nil
}

// Create inserts a new project. Used for seeding.
func (c *HTTPClient) Create(ctx context.Context, p domain.Project) (out domain.Project, err error) {
	started := time.Now()
	defer func() { recordUpstreamCall(opCreate, started, err) }()

	env, err := c.do(ctx, opCreate, http.MethodPost, "/projects", p, http.StatusCreated, msgSaveFailed)
	if err != nil {
		return domain.Project{}, err
	}
	if env.Project == nil {
		return domain.Project{}, &NetworkError{Op: opCreate, Status: http.StatusCreated, Message: msgSaveFailed,
			Err: fmt.Errorf("response has no project")}
	}
	return *env.Project, nil
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, payload any, wantStatus int, userMsg string) (*envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{Op: op, Message: userMsg, Err: err}
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &NetworkError{Op: op, Message: userMsg, Err: fmt.Errorf("marshal request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &NetworkError{Op: op, Message: userMsg, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid := logging.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}
	if c.initData != "" {
		req.Header.Set("X-Telegram-Init-Data", c.initData)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Message: userMsg, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode, Message: userMsg, Err: fmt.Errorf("read response: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode != wantStatus {
		msg := userMsg
		if decodeErr == nil && env.Error != "" {
			msg = env.Error
		}
		nerr := &NetworkError{Op: op, Status: resp.StatusCode, Message: msg,
			Err: fmt.Errorf("projects api returned status %d", resp.StatusCode)}
		c.log.For(ctx).Warn(op, "unexpected status", zap.Int("status", resp.StatusCode), zap.String("path", path))
		return nil, nerr
	}
	if decodeErr != nil {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode, Message: userMsg, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	return &env, nil
}
