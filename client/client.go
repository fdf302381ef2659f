// Package client is the HTTP layer of the session SDK. It injects the bearer
// token from the TokenStore into every outbound request and owns the global
// 401 side effect: clearing the store and pushing the visitor back to the
// login screen before the error ever reaches the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"

	"github.com/hireloop/go-session"
)

const (
	pathLogin      = "/api/v1/auth/token"
	pathRegister   = "/api/v1/auth/register"
	pathMyProfile  = "/api/v1/profile/me"
	pathCVAnalysis = "/api/v1/profile/cv-analysis"
	pathUploadCV   = "/api/v1/profile/upload-cv"

	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
)

// Client talks to the backend API. It implements session.AuthService and
// session.ProfileFetcher so it plugs directly into a session.Manager.
type Client struct {
	baseURL   string
	http      *http.Client
	store     session.TokenStore
	navigator session.Navigator
	logger    session.Logger
	debug     bool
}

var _ session.AuthService = (*Client)(nil)
var _ session.ProfileFetcher = (*Client)(nil)

// Option customizes Client construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(logger session.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNavigator sets the Navigator that receives the 401 reset redirect.
func WithNavigator(nav session.Navigator) Option {
	return func(c *Client) {
		if nav != nil {
			c.navigator = nav
		}
	}
}

// WithDebug toggles payload dumps.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// New creates a Client bound to the given token store.
func New(cfg Config, store session.TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		store:   store,
		logger:  nil,
		debug:   cfg.Debug,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.logger == nil {
		c.logger = defaultLogger{}
	}
	if c.navigator == nil {
		c.navigator = session.NavigatorFunc(nil)
	}

	return c
}

// Login exchanges credentials for a token using the form-encoded flow. A
// rejection is surfaced as ErrInvalidCredentials with no session reset: the
// login screen owns the error display.
func (c *Client) Login(ctx context.Context, creds session.LoginRequest) (*session.AuthResponse, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	req, err := c.newRequest(ctx, http.MethodPost, pathLogin, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	out := &session.AuthResponse{}
	if err := c.do(req, out, doOpts{credentialExchange: true}); err != nil {
		return nil, err
	}
	return out, nil
}

// Register creates an account. The response shares the login shape so the
// caller can establish the session immediately.
func (c *Client) Register(ctx context.Context, payload session.RegisterRequest) (*session.AuthResponse, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, pathRegister, payload)
	if err != nil {
		return nil, err
	}

	out := &session.AuthResponse{}
	if err := c.do(req, out, doOpts{credentialExchange: true}); err != nil {
		return nil, err
	}
	return out, nil
}

// MyProfile fetches the logged-in user's profile, the authoritative source
// for the session user and its role.
func (c *Client) MyProfile(ctx context.Context) (*session.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pathMyProfile, nil)
	if err != nil {
		return nil, err
	}

	out := &session.Profile{}
	if err := c.do(req, out, doOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateMyProfile updates the logged-in user's profile.
func (c *Client) UpdateMyProfile(ctx context.Context, update session.ProfileUpdate) (*session.Profile, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, pathMyProfile, update)
	if err != nil {
		return nil, err
	}

	out := &session.Profile{}
	if err := c.do(req, out, doOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

// CVAnalysis fetches the stored resume analysis. The backend reports
// improvement areas under `areas_for_improvement`; the client exposes them as
// Improvements.
func (c *Client) CVAnalysis(ctx context.Context) (*session.CVAnalysis, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pathCVAnalysis, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		session.CVAnalysis
		AreasForImprovement []string `json:"areas_for_improvement"`
	}
	if err := c.do(req, &payload, doOpts{}); err != nil {
		return nil, err
	}

	out := payload.CVAnalysis
	out.Improvements = payload.AreasForImprovement
	if out.Improvements == nil {
		out.Improvements = []string{}
	}
	return &out, nil
}

// UploadCV submits a resume file for analysis.
func (c *Client) UploadCV(ctx context.Context, filename string, file io.Reader) (*session.UploadCVResponse, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("cv_file", filename)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to build upload form")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to read upload file")
	}
	if err := writer.Close(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to finalize upload form")
	}

	req, err := c.newRequest(ctx, http.MethodPost, pathUploadCV, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	out := &session.UploadCVResponse{}
	if err := c.do(req, out, doOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

type doOpts struct {
	// credentialExchange marks login/register calls: their 401 is a rejected
	// credential, not a revoked session, so the global reset does not fire.
	credentialExchange bool
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())

	if token, ok := c.store.Get(); ok {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}

	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to encode payload")
	}

	if c.debug {
		c.logger.Debug("%s %s payload: %s", method, path, print.MaybePrettyJSON(payload))
	}

	req, err := c.newRequest(ctx, method, path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any, opts doOpts) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "request failed").
			WithMetadata(map[string]any{"url": req.URL.String()})
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !opts.credentialExchange {
		return c.resetSession(req, resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(req, resp, opts)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to decode response").
			WithMetadata(map[string]any{
				"url":    req.URL.String(),
				"status": resp.StatusCode,
			})
	}

	if c.debug {
		c.logger.Debug("%s %s response: %s", req.Method, req.URL.Path, print.MaybePrettyJSON(out))
	}

	return nil
}

// resetSession is the sole mechanism by which server-side token invalidation
// propagates back into client state: clear the store, push the visitor to the
// login screen, then hand the caller the error. It bypasses the Manager on
// purpose; in-flight callers must tolerate this external reset.
func (c *Client) resetSession(req *http.Request, resp *http.Response) error {
	c.logger.Warn("401 on %s %s, resetting session", req.Method, req.URL.Path)

	if err := c.store.Clear(); err != nil {
		c.logger.Warn("session reset: token clear failed: %v", err)
	}
	c.navigator.Navigate(session.NavToLogin)

	detail := readDetail(resp.Body)
	return session.ErrUnauthorized.WithMetadata(map[string]any{
		"url":    req.URL.String(),
		"detail": detail,
	})
}

func (c *Client) statusError(req *http.Request, resp *http.Response, opts doOpts) error {
	detail := readDetail(resp.Body)

	c.logger.Error("API error: %s %s status=%d detail=%q",
		req.Method, req.URL.Path, resp.StatusCode, detail)

	meta := map[string]any{
		"url":    req.URL.String(),
		"status": resp.StatusCode,
		"detail": detail,
	}

	if opts.credentialExchange && resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return session.ErrInvalidCredentials.WithMetadata(meta)
	}

	return goerrors.New(
		fmt.Sprintf("unexpected status %d", resp.StatusCode),
		goerrors.CategoryOperation,
	).WithMetadata(meta)
}

// readDetail extracts the backend's error message, if any.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Detail == "" {
		return strings.TrimSpace(string(raw))
	}
	return payload.Detail
}

type defaultLogger struct{}

func (defaultLogger) Debug(format string, args ...any) { fmt.Printf("[DBG] API "+format+"\n", args...) }
func (defaultLogger) Info(format string, args ...any)  { fmt.Printf("[INF] API "+format+"\n", args...) }
func (defaultLogger) Warn(format string, args ...any)  { fmt.Printf("[WRN] API "+format+"\n", args...) }
func (defaultLogger) Error(format string, args ...any) { fmt.Printf("[ERR] API "+format+"\n", args...) }
