package riskapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/interfaces"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/utils/logging"
	"github.com/secmon-lab/riskboard/pkg/utils/safe"
)

// Endpoints of the backend risk API
const (
	EndpointStatistics     = "/api/statistics"
	EndpointMentorStats    = "/api/mentor_stats"
	EndpointStudents       = "/api/students"
	EndpointMentorStudents = "/api/mentor_students"
)

// maxErrorBody bounds how much of an error response is kept for the log
const maxErrorBody = 512

// Client implements interfaces.RiskAPI over HTTP
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	cookie  string
}

var _ interfaces.RiskAPI = &Client{}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// WithTimeout bounds each request. Zero keeps requests unbounded. It applies to
// a copy of the HTTP client, whichever option supplied it.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.timeout = d
	}
}

// WithCookie forwards a raw Cookie header on every request, e.g. the backend session
func WithCookie(cookie string) Option {
	return func(client *Client) {
		client.cookie = cookie
	}
}

// New creates a client for the backend at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("risk API base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid risk API base URL", goerr.V("base_url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("risk API base URL must be http or https", goerr.V("base_url", baseURL))
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// Statistics fetches the global category counts
func (c *Client) Statistics(ctx context.Context) (*model.Statistics, error) {
	var stats model.Statistics
	if err := c.get(ctx, EndpointStatistics, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// MentorStats fetches the workload of every mentor. Null rows are dropped.
func (c *Client) MentorStats(ctx context.Context) ([]*model.MentorWorkload, error) {
	var raw []*model.MentorWorkload
	if err := c.get(ctx, EndpointMentorStats, &raw); err != nil {
		return nil, err
	}

	workloads := make([]*model.MentorWorkload, 0, len(raw))
	for i, w := range raw {
		if w == nil {
			logging.From(ctx).Warn("skip null mentor stats record",
				"endpoint", EndpointMentorStats,
				"index", i,
			)
			continue
		}
		workloads = append(workloads, w)
	}
	return workloads, nil
}

// Students fetches the students visible to role. Records failing validation are
// dropped with a warning; the rest of the response is kept.
func (c *Client) Students(ctx context.Context, role types.Role) ([]*model.Student, error) {
	endpoint := EndpointStudents
	if role.IsMentor() {
		endpoint = EndpointMentorStudents
	}

	var raw []*model.Student
	if err := c.get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	students := make([]*model.Student, 0, len(raw))
	for i, s := range raw {
		if s == nil {
			continue
		}
		if err := s.Validate(); err != nil {
			logging.From(ctx).Warn("skip invalid student record",
				"endpoint", endpoint,
				"index", i,
				"error", err,
			)
			continue
		}
		students = append(students, s)
	}
	return students, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	u := c.baseURL.JoinPath(endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V(EndpointKey, endpoint))
	}
	req.Header.Set("Accept", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call risk API", goerr.V(EndpointKey, endpoint))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return goerr.Wrap(ErrUnexpectedStatus, "risk API returned error status",
			goerr.V(EndpointKey, endpoint),
			goerr.V(StatusKey, resp.StatusCode),
			goerr.V("body", strings.TrimSpace(string(body))),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(ErrDecodeResponse, err.Error(), goerr.V(EndpointKey, endpoint))
	}
	return nil
}
