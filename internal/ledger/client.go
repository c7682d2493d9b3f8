// Package ledger is the HTTP client for the external debt-settlement
// service. It covers the four calls the tracker needs: login, member
// directory lookup, expense submission, and the group debt list. The
// client does no retries or caching; callers own timeouts via context.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/KTee1986/mahjong-tracker/internal/models"
)

// Session is the result of a successful login.
type Session struct {
	MemberID string `json:"member_id"`
	Token    string `json:"token"`
}

// Member is one entry of a group's member directory.
type Member struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// RawDebt is one directional balance as the ledger reports it. Amount
// stays a string until the normalizer parses it; the ledger is not
// trusted to always send a number.
type RawDebt struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// Client talks to one ledger deployment.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a ledger client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Login authenticates against the ledger and returns the session used to
// authorize the remaining calls.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	body := map[string]string{"username": username, "password": password}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/v1/login", "", body, &session); err != nil {
		return nil, fmt.Errorf("ledger login: %w", err)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("ledger login: empty token in response")
	}
	return &session, nil
}

// ListMembers fetches the member directory of one group, keyed by member id.
func (c *Client) ListMembers(ctx context.Context, groupID, token string) (map[string]Member, error) {
	var result struct {
		Members map[string]Member `json:"members"`
	}
	path := fmt.Sprintf("/api/v1/groups/%s/members", url.PathEscape(groupID))
	if err := c.do(ctx, http.MethodGet, path, token, nil, &result); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return result.Members, nil
}

// SubmitExpense pushes one balanced settlement to the group and returns
// the ledger's transaction id. The entry's JSON tags are the wire shape.
func (c *Client) SubmitExpense(ctx context.Context, groupID, token string, entry *models.SettlementEntry) (string, error) {
	var result struct {
		TransactionID string `json:"transaction_id"`
	}
	path := fmt.Sprintf("/api/v1/groups/%s/expenses", url.PathEscape(groupID))
	if err := c.do(ctx, http.MethodPost, path, token, entry, &result); err != nil {
		return "", fmt.Errorf("submit expense: %w", err)
	}
	return result.TransactionID, nil
}

// ListDebts fetches the group's current directional balances.
func (c *Client) ListDebts(ctx context.Context, groupID, token string) ([]RawDebt, error) {
	var result struct {
		Debts []RawDebt `json:"debts"`
	}
	path := fmt.Sprintf("/api/v1/groups/%s/debts", url.PathEscape(groupID))
	if err := c.do(ctx, http.MethodGet, path, token, nil, &result); err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return result.Debts, nil
}

// do performs one JSON round trip. Non-2xx responses become errors
// carrying the status and the (truncated) body.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
