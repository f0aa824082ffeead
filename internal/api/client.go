// Rooha backend API client.
//
// Every backend call funnels through one request helper with a uniform
// failure rule: transport or decode problems are connection errors, and any
// JSON body carrying an "error" field is an application error with the
// server-provided message. Callers treat both as a failed call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/Riddhi-crypto/Rooha/internal/models"
	"github.com/Riddhi-crypto/Rooha/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:5000"

// requestsPerSecond bounds how fast the client hits the backend. The UI only
// ever has one submission in flight, so this is politeness, not a semaphore.
const requestsPerSecond = 5

// Client talks to the Rooha backend over JSON/HTTP.
//
// The underlying [http.Client] carries a cookie jar so the server-side login
// session survives across calls, mirroring browser behavior.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a backend client. A nil httpClient gets a jar-equipped
// default; an empty baseURL falls back to the local development server.
func NewClient(baseURL string, httpClient *http.Client, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		jar, _ := cookiejar.New(nil)
		httpClient = &http.Client{Jar: jar}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:     logger,
	}
}

// errEnvelope is the error shape every endpoint may return.
type errEnvelope struct {
	Error string `json:"error"`
}

// ackEnvelope is the {success, message} shape auth and feedback return.
type ackEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// call performs one request and decodes the response into result (when
// non-nil), applying the uniform failure rule.
func (c *Client) call(ctx context.Context, method, path string, payload, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrConnection, err)
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := shared.GenerateID()
	c.logger.Debug("api request", "id", requestID, "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api transport failure", "id", requestID, "err", err)
		return fmt.Errorf("%w: %v", shared.ErrConnection, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrConnection, err)
	}

	var envelope errEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, envelope.Error)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Non-JSON failure bodies (proxies, crashes) count as transport
		// errors. JSON failure bodies fall through: either the error envelope
		// above caught them, or the caller's result shape carries the detail
		// (e.g. {success, message} on a 401 login).
		if len(raw) == 0 || !json.Valid(raw) {
			return fmt.Errorf("%w: status %d", shared.ErrConnection, resp.StatusCode)
		}
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrConnection, err)
		}
	}

	return nil
}

// AnalyzeText submits free text for emotion analysis.
func (c *Client) AnalyzeText(ctx context.Context, text string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	payload := struct {
		Text string `json:"text"`
	}{Text: text}

	if err := c.call(ctx, http.MethodPost, "/api/analyze/text", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeFace submits a captured snapshot, as a data URL, for emotion analysis.
func (c *Client) AnalyzeFace(ctx context.Context, imageDataURL string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	payload := struct {
		Image string `json:"image"`
	}{Image: imageDataURL}

	if err := c.call(ctx, http.MethodPost, "/api/analyze/face", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendFeedback records a rating against an analysis session.
func (c *Client) SendFeedback(ctx context.Context, sessionID string, rating int) error {
	payload := struct {
		SessionID json.Number `json:"session_id"`
		Rating    int         `json:"rating"`
	}{SessionID: json.Number(sessionID), Rating: rating}

	return c.call(ctx, http.MethodPost, "/api/feedback", payload, nil)
}

// Stats fetches aggregate session figures.
func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.call(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// History fetches past sessions, newest first as the backend orders them.
func (c *Client) History(ctx context.Context) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	if err := c.call(ctx, http.MethodGet, "/api/history", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AuthStatusCheck fetches the current identity.
func (c *Client) AuthStatusCheck(ctx context.Context) (*models.AuthStatus, error) {
	var status models.AuthStatus
	if err := c.call(ctx, http.MethodGet, "/api/auth/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Login authenticates with email and password. Failure carries the server
// message when one is provided.
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var ack ackEnvelope
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", payload, &ack); err != nil {
		return err
	}
	if !ack.Success {
		if ack.Message != "" {
			return fmt.Errorf("%w: %s", shared.ErrAuthFailed, ack.Message)
		}
		return fmt.Errorf("%w: login failed", shared.ErrAuthFailed)
	}
	return nil
}

// Register creates an account. Failure carries the server message when one is
// provided.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	payload := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Username: username, Email: email, Password: password}

	var ack ackEnvelope
	if err := c.call(ctx, http.MethodPost, "/api/auth/register", payload, &ack); err != nil {
		return err
	}
	if !ack.Success {
		if ack.Message != "" {
			return fmt.Errorf("%w: %s", shared.ErrAuthFailed, ack.Message)
		}
		return fmt.Errorf("%w: registration failed", shared.ErrAuthFailed)
	}
	return nil
}

// Logout ends the server-side session. Best effort: callers refresh auth
// state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}
