package placeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/placeholder-explorer/internal/domain"
	"github.com/samvad-hq/placeholder-explorer/pkg/httpclient"
)

const (
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	DefaultTimeout = 10 * time.Second

	defaultUserAgent = "placeholder-explorer/1.0"
	maxBodySnippet   = 512
)

// Endpoints served by the API.
const (
	PostsEndpoint    = "posts"
	UsersEndpoint    = "users"
	CommentsEndpoint = "comments"
)

// PostEndpoint returns the endpoint of a single post.
func PostEndpoint(id int) string { return fmt.Sprintf("posts/%d", id) }

// UserEndpoint returns the endpoint of a single user.
func UserEndpoint(id int) string { return fmt.Sprintf("users/%d", id) }

// PostCommentsEndpoint returns the comments endpoint of one post. Every id,
// zero included, names a post.
func PostCommentsEndpoint(postID int) string {
	return fmt.Sprintf("posts/%d/comments", postID)
}

// Client performs one GET per call against a fixed base URL and decodes the JSON body.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     httpclient.Client
	headers  map[string]string
	recorder Recorder
	log      Logger
	now      func() time.Time
}

// Option customises a Client at construction.
type Option func(*Client)

// WithHTTPClient replaces the resty-backed transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.headers["User-Agent"] = ua
		}
	}
}

// WithRecorder attaches an observer that sees every fetch.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithLogger sets the logger used for request telemetry.
func WithLogger(log Logger) Option {
	return func(c *Client) { c.log = ensureLogger(log) }
}

// New builds a Client. An empty baseURL or non-positive timeout falls back to the defaults.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: baseURL,
		timeout: timeout,
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": defaultUserAgent,
		},
		log: noopLogger{},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(httpclient.Options{Timeout: timeout})
	}
	return c
}

// BaseURL returns the fixed base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the fixed per-request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Fetch issues a GET for endpoint and returns the decoded JSON value unchanged.
func (c *Client) Fetch(ctx context.Context, endpoint string) (any, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, ErrEmptyEndpoint
	}
	if ctx == nil {
		ctx = context.Background()
	}

	url := c.baseURL + "/" + endpoint
	start := c.now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status := 0
	value, err := c.fetch(ctx, endpoint, url, &status)
	c.observe(FetchRecord{
		Endpoint: endpoint,
		URL:      url,
		Status:   status,
		Kind:     Classify(err),
		Error:    errorText(err),
		Elapsed:  c.now().Sub(start),
		At:       start.UTC(),
	})
	return value, err
}

func (c *Client) fetch(ctx context.Context, endpoint, url string, status *int) (any, error) {
	resp, err := c.http.Get(ctx, url, c.headers)
	if err != nil {
		return nil, &NetworkError{Endpoint: endpoint, Cause: err}
	}

	*status = resp.StatusCode()
	body := resp.Body()
	if *status < 200 || *status > 299 {
		return nil, &RequestFailedError{
			Endpoint:   endpoint,
			StatusCode: *status,
			Body:       bodySnippet(body),
		}
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Cause: err}
	}
	return value, nil
}

func (c *Client) observe(rec FetchRecord) {
	if rec.Kind == KindNone {
		c.log.DebugObj("fetch completed", "fetch", map[string]any{
			"endpoint":   rec.Endpoint,
			"status":     rec.Status,
			"elapsed_ms": rec.Elapsed.Milliseconds(),
		})
	} else {
		c.log.DebugObj("fetch failed", "fetch", map[string]any{
			"endpoint":   rec.Endpoint,
			"status":     rec.Status,
			"kind":       string(rec.Kind),
			"error":      rec.Error,
			"elapsed_ms": rec.Elapsed.Milliseconds(),
		})
	}
	if c.recorder != nil {
		c.recorder.RecordFetch(rec)
	}
}

// GetPosts returns the first limit posts, or all of them when limit is not positive.
func (c *Client) GetPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	raw, err := c.Fetch(ctx, PostsEndpoint)
	if err != nil {
		return nil, err
	}
	return domain.PostsFromList(head(raw, limit))
}

// GetPost returns a single post.
func (c *Client) GetPost(ctx context.Context, id int) (domain.Post, error) {
	raw, err := c.Fetch(ctx, PostEndpoint(id))
	if err != nil {
		return domain.Post{}, err
	}
	return domain.PostFromRecord(raw)
}

// GetUsers returns every user.
func (c *Client) GetUsers(ctx context.Context) ([]domain.User, error) {
	raw, err := c.Fetch(ctx, UsersEndpoint)
	if err != nil {
		return nil, err
	}
	return domain.UsersFromList(raw)
}

// GetUser returns a single user.
func (c *Client) GetUser(ctx context.Context, id int) (domain.User, error) {
	raw, err := c.Fetch(ctx, UserEndpoint(id))
	if err != nil {
		return domain.User{}, err
	}
	return domain.UserFromRecord(raw)
}

// GetComments returns the comments of postID, sliced with the same limit rule as GetPosts.
func (c *Client) GetComments(ctx context.Context, postID, limit int) ([]domain.Comment, error) {
	return c.comments(ctx, PostCommentsEndpoint(postID), limit)
}

// GetAllComments returns comments across every post, sliced like GetComments.
func (c *Client) GetAllComments(ctx context.Context, limit int) ([]domain.Comment, error) {
	return c.comments(ctx, CommentsEndpoint, limit)
}

func (c *Client) comments(ctx context.Context, endpoint string, limit int) ([]domain.Comment, error) {
	raw, err := c.Fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return domain.CommentsFromList(head(raw, limit))
}

// head keeps the first limit elements of a decoded array. Non-arrays pass through
// so the converter can report the shape mismatch.
func head(raw any, limit int) any {
	items, ok := raw.([]any)
	if !ok || limit <= 0 || limit >= len(items) {
		return raw
	}
	return items[:limit]
}

func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodySnippet {
		return s[:maxBodySnippet] + "..."
	}
	return s
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
