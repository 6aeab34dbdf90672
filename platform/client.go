// Package platform talks to the lending platform's REST API: the credit score
// of the signed-in user and loan creation. The server stays authoritative for
// both; this package only moves request and response bodies.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lending-core/domain"
)

var (
	// ErrScoreNotReady means the server has not computed a credit score yet.
	ErrScoreNotReady = errors.New("credit score not yet available")
	ErrUnauthorized  = errors.New("unauthorized")

	errNoData = errors.New("response carried no data")
)

// APIError is a non-2xx answer from the platform.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform API error (status %d): %s", e.StatusCode, e.Message)
}

type apiResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// MyCreditScore fetches GET /credit-score/me for the bearer token's user.
func (c *Client) MyCreditScore(ctx context.Context, token string) (*domain.CreditScoreSnapshot, error) {
	var snap domain.CreditScoreSnapshot
	err := c.do(ctx, http.MethodGet, "/credit-score/me", token, nil, &snap)
	if err != nil {
		var apiErr *APIError
		if errors.Is(err, errNoData) || (errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound) {
			return nil, ErrScoreNotReady
		}
		return nil, fmt.Errorf("fetch credit score: %w", err)
	}
	return &snap, nil
}

type createLoanRequest struct {
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Purpose      domain.LoanPurpose `json:"purpose"`
	Amount       string             `json:"amount"`
	InterestRate string             `json:"interestRate"`
	TermMonths   int                `json:"termMonths"`
}

// CreateLoan posts the final loan application to POST /loans.
func (c *Client) CreateLoan(ctx context.Context, token string, app domain.LoanApplication) (domain.SubmittedLoan, error) {
	body := createLoanRequest{
		Title:        app.Title,
		Description:  app.Description,
		Purpose:      app.Purpose,
		Amount:       app.Amount.String(),
		InterestRate: app.InterestRate.String(),
		TermMonths:   app.TermMonths,
	}
	var loan domain.SubmittedLoan
	if err := c.do(ctx, http.MethodPost, "/loans", token, body, &loan); err != nil {
		return domain.SubmittedLoan{}, fmt.Errorf("create loan: %w", err)
	}
	return loan, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode == http.StatusNoContent {
		return errNoData
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var envelope apiResponse[json.RawMessage]
	decodeErr := json.Unmarshal(raw, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if envelope.Data == nil {
		return errNoData
	}
	if err := json.Unmarshal(*envelope.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
