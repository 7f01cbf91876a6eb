package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrUnreachable marks transport-level failures (connection refused, DNS
// failure, timeout) so callers can present a retryable message instead of a
// terminal rejection.
var ErrUnreachable = errors.New("provisioning service unreachable")

// SetupRequest is the canonical JSON body of a domain setup call. The
// userId field name is wire format; the value is a tenant ID.
type SetupRequest struct {
	Domain     string `json:"domain"`
	UserID     string `json:"userId"`
	WebhookURL string `json:"webhookUrl"`
	// Token fences the eventual callback against stale provisioning runs.
	Token string `json:"token,omitempty"`
}

// Ack is the provisioning service's acknowledgment. Setup returns it with
// 202 semantics: receipt confirmed, work continues out of process.
type Ack struct {
	Status    string `json:"status"`
	Domain    string `json:"domain"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

type Client struct {
	baseURL string
	secret  string
	client  *http.Client
}

func NewClient(baseURL, secret string) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SetupDomain asks the remote service to configure reverse-proxy routing
// and a certificate for the domain. The call is synchronous only up to
// acknowledgment of receipt; completion arrives later on the webhook URL.
func (c *Client) SetupDomain(ctx context.Context, domain, tenantID, webhookURL, token string) (*Ack, error) {
	body, err := json.Marshal(SetupRequest{
		Domain:     domain,
		UserID:     tenantID,
		WebhookURL: webhookURL,
		Token:      token,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal setup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/domains/setup", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create setup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, Sign(c.secret, body))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteError("setup", resp)
	}

	var ack Ack
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("decode setup ack: %w", err)
	}
	return &ack, nil
}

// CheckStatus polls the remote service for a domain's provisioning state.
// The result is informational only; the webhook callback is authoritative.
func (c *Client) CheckStatus(ctx context.Context, domain string) (*Ack, error) {
	u := c.baseURL + "/domains/status?domain=" + url.QueryEscape(domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create status request: %w", err)
	}
	req.Header.Set(SignatureHeader, Sign(c.secret, nil))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteError("status", resp)
	}

	var ack Ack
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &ack, nil
}

// Health pings the remote service.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provisioning service health returned %d", resp.StatusCode)
	}
	return nil
}

// remoteError surfaces the remote error message when the body carries one.
func remoteError(op string, resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("%s rejected (%d): %s", op, resp.StatusCode, body.Error)
	}
	return fmt.Errorf("%s rejected with status %d", op, resp.StatusCode)
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
