package ledger

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultWaitTimeout  = 30 * time.Second
)

type Config struct {
	Network    string
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
	Headers    map[string]string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	headers    map[string]string
}

type WaitOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	endpoints, err := shared.ResolveEndpoints(config.Network)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = endpoints.NodeURL
	}
	baseURL, err = normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid node base URL: %w", err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(config.APIKey),
		headers:    headers,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("scheme must be http or https")
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("host is required")
	}

	// Accept both "https://node" and "https://node/v1".
	parsed.Path = strings.TrimSuffix(strings.TrimRight(parsed.Path, "/"), "/v1")
	return strings.TrimRight(parsed.String(), "/"), nil
}

// BaseURL performs the requested operation.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// View evaluates a view function and returns its positional results.
func (c *Client) View(ctx context.Context, request ViewRequest) ([]json.RawMessage, error) {
	const op = "view"
	if strings.TrimSpace(request.Function) == "" {
		return nil, fmt.Errorf("view function is required")
	}
	if request.TypeArguments == nil {
		request.TypeArguments = []string{}
	}
	if request.Arguments == nil {
		request.Arguments = []any{}
	}

	var result []json.RawMessage
	if err := c.doJSON(ctx, op+" "+request.Function, http.MethodPost, "/v1/view", request, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetLedgerInfo returns the requested value.
func (c *Client) GetLedgerInfo(ctx context.Context) (LedgerInfo, error) {
	var info LedgerInfo
	err := c.doJSON(ctx, "get ledger info", http.MethodGet, "/v1/", nil, &info)
	return info, err
}

// GetAccount returns the requested value.
func (c *Client) GetAccount(ctx context.Context, address string) (AccountInfo, error) {
	var account AccountInfo
	normalized := strings.TrimSpace(address)
	if normalized == "" {
		return account, fmt.Errorf("account address is required")
	}

	path := fmt.Sprintf("/v1/accounts/%s", url.PathEscape(normalized))
	err := c.doJSON(ctx, "get account", http.MethodGet, path, nil, &account)
	return account, err
}

// GetAccountResource returns the requested value.
func (c *Client) GetAccountResource(
	ctx context.Context,
	address string,
	resourceType string,
) (MoveResource, error) {
	var resource MoveResource
	normalizedAddress := strings.TrimSpace(address)
	normalizedType := strings.TrimSpace(resourceType)
	if normalizedAddress == "" {
		return resource, fmt.Errorf("account address is required")
	}
	if normalizedType == "" {
		return resource, fmt.Errorf("resource type is required")
	}

	path := fmt.Sprintf(
		"/v1/accounts/%s/resource/%s",
		url.PathEscape(normalizedAddress),
		url.PathEscape(normalizedType),
	)
	err := c.doJSON(ctx, "get account resource", http.MethodGet, path, nil, &resource)
	return resource, err
}

// GetTransactionByHash returns the requested value.
func (c *Client) GetTransactionByHash(ctx context.Context, hash string) (Transaction, error) {
	var transaction Transaction
	normalized := strings.TrimSpace(hash)
	if normalized == "" {
		return transaction, fmt.Errorf("transaction hash is required")
	}

	path := fmt.Sprintf("/v1/transactions/by_hash/%s", url.PathEscape(normalized))
	err := c.doJSON(ctx, "get transaction", http.MethodGet, path, nil, &transaction)
	return transaction, err
}

// EncodeSubmission returns the bytes the sender must sign for transaction.
func (c *Client) EncodeSubmission(ctx context.Context, transaction UnsignedTransaction) ([]byte, error) {
	const op = "encode submission"

	var encoded string
	if err := c.doJSON(ctx, op, http.MethodPost, "/v1/transactions/encode_submission", transaction, &encoded); err != nil {
		return nil, err
	}

	message, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(encoded), "0x"))
	if err != nil || len(message) == 0 {
		return nil, MalformedResponse(op, "signing message is not hex: %q", encoded)
	}
	return message, nil
}

// SubmitTransaction submits a signed transaction and returns its pending form.
func (c *Client) SubmitTransaction(ctx context.Context, transaction SignedTransaction) (Transaction, error) {
	const op = "submit transaction"

	var pending Transaction
	if err := c.doJSON(ctx, op, http.MethodPost, "/v1/transactions", transaction, &pending); err != nil {
		return pending, err
	}
	if strings.TrimSpace(pending.Hash) == "" {
		return pending, MalformedResponse(op, "submission response has no hash")
	}
	return pending, nil
}

// WaitForTransaction polls until the transaction leaves the pending state.
// A transaction the node does not know yet is treated as pending.
func (c *Client) WaitForTransaction(
	ctx context.Context,
	hash string,
	options WaitOptions,
) (Transaction, error) {
	interval := options.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		transaction, err := c.GetTransactionByHash(waitCtx, hash)
		switch {
		case err == nil && !transaction.IsPending():
			return transaction, nil
		case err != nil && KindOf(err) != ErrorKindNotFound:
			if waitCtx.Err() == nil {
				return Transaction{}, err
			}
		}

		select {
		case <-waitCtx.Done():
			return Transaction{}, &Error{
				Kind:   ErrorKindUnreachable,
				Op:     "wait for transaction",
				Reason: fmt.Sprintf("transaction %s not finalized", hash),
				Err:    waitCtx.Err(),
			}
		case <-ticker.C:
		}
	}
}

func (c *Client) doJSON(
	ctx context.Context,
	op string,
	method string,
	path string,
	body any,
	target any,
) error {
	var payload *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		payload = bytes.NewReader(encoded)
	}

	var request *http.Request
	var err error
	if payload != nil {
		request, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	} else {
		request, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set("Accept-Encoding", shared.AcceptEncoding)
	request.Header.Set("User-Agent", shared.UserAgent)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &Error{Kind: ErrorKindUnreachable, Op: op, Reason: "node request failed", Err: err}
	}
	defer response.Body.Close()

	responseBody, err := shared.ReadResponseBody(response)
	if err != nil {
		return &Error{
			Kind:       ErrorKindUnreachable,
			Op:         op,
			StatusCode: response.StatusCode,
			Reason:     "failed to read node response",
			Err:        err,
		}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var remote nodeError
		_ = json.Unmarshal(responseBody, &remote)

		reason := strings.TrimSpace(remote.Message)
		if reason == "" {
			reason = strings.TrimSpace(string(responseBody))
		}
		return &Error{
			Kind:       classifyStatus(response.StatusCode, remote.ErrorCode),
			Op:         op,
			StatusCode: response.StatusCode,
			Code:       remote.ErrorCode,
			Reason:     reason,
		}
	}

	if err := json.Unmarshal(responseBody, target); err != nil {
		return &Error{
			Kind:       ErrorKindMalformedResponse,
			Op:         op,
			StatusCode: response.StatusCode,
			Reason:     "failed to decode node response",
			Err:        err,
		}
	}

	return nil
}
