package authority

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"licentia/internal/usecase"
)

// Client is the consumer-side HTTP binding to the key authority.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type issueResponse struct {
	Token     string `json:"token"`
	Signature string `json:"signature"`
	Message   string `json:"message"`
}

type checkResponse struct {
	Revoked *bool  `json:"revoked"`
	Message string `json:"message"`
}

type publicKeyResponse struct {
	PublicKey string `json:"public_key"`
	Format    string `json:"format"`
}

// IssueGrant requests a new trial grant. The returned signature is the
// hex text exactly as the authority produced it.
func (c *Client) IssueGrant(ctx context.Context, subjectID string) (token []byte, signatureHex string, err error) {
	if c == nil {
		return nil, "", errors.New("authority client is nil")
	}
	payload, err := json.Marshal(map[string]string{"user_id": subjectID})
	if err != nil {
		return nil, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/trial/issue", bytes.NewReader(payload))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	var resp issueResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", fmt.Errorf("decode issue response: %w", err)
	}
	if resp.Token == "" || resp.Signature == "" {
		return nil, "", errors.New("issue response missing token or signature")
	}
	return []byte(resp.Token), resp.Signature, nil
}

// CheckRevocation asks the authority whether subjectID is revoked. A
// malformed response is an error, which the revocation gate treats the
// same as the authority being unreachable.
func (c *Client) CheckRevocation(ctx context.Context, subjectID string) (bool, error) {
	if c == nil {
		return false, errors.New("authority client is nil")
	}
	endpoint := c.baseURL + "/api/trial/check?user_id=" + url.QueryEscape(subjectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	body, err := c.do(req)
	if err != nil {
		return false, err
	}
	var resp checkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("decode check response: %w", err)
	}
	if resp.Revoked == nil {
		return false, errors.New("check response missing revoked field")
	}
	return *resp.Revoked, nil
}

// Revoke flags subjectID as revoked. adminKey is sent as X-Admin-Key
// when non-empty; authorities with no admin key configured accept the
// call without it.
func (c *Client) Revoke(ctx context.Context, subjectID, adminKey string) error {
	if c == nil {
		return errors.New("authority client is nil")
	}
	payload, err := json.Marshal(map[string]string{"user_id": subjectID})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/trial/revoke", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}
	_, err = c.do(req)
	return err
}

// PublicKey fetches the authority's 32-byte verification key. This is a
// bootstrap convenience only; the verify path never trusts a key that
// arrived over the same channel as the grant.
func (c *Client) PublicKey(ctx context.Context) ([]byte, error) {
	if c == nil {
		return nil, errors.New("authority client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/public-key", nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var resp publicKeyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode public key response: %w", err)
	}
	key, err := hex.DecodeString(resp.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("decode public key hex: %w", err)
	}
	return key, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authority returned status %d", resp.StatusCode)
	}
	return body, nil
}

var _ usecase.RevocationChecker = (*Client)(nil)
