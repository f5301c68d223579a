package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/ledger"
	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

type Config struct {
	Network    string
	URL        string
	HTTPClient *http.Client
	APIKey     string
	Headers    map[string]string
}

type Client struct {
	url        string
	httpClient *http.Client
	apiKey     string
	headers    map[string]string
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	endpoints, err := shared.ResolveEndpoints(config.Network)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimSpace(config.URL)
	if endpoint == "" {
		endpoint = endpoints.IndexerURL
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid indexer URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid indexer URL: scheme must be http or https")
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid indexer URL: host is required")
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
		url:        endpoint,
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(config.APIKey),
		headers:    headers,
	}, nil
}

// URL returns the GraphQL endpoint.
func (c *Client) URL() string {
	return c.url
}

// Query runs a GraphQL query and decodes its data field into target.
// GraphQL errors are reported as rejected requests.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, target any) error {
	const op = "indexer query"
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}

	encoded, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("%s: failed to encode request: %w", op, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Accept-Encoding", shared.AcceptEncoding)
	request.Header.Set("User-Agent", shared.UserAgent)
	if c.apiKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &ledger.Error{Kind: ledger.ErrorKindUnreachable, Op: op, Reason: "indexer request failed", Err: err}
	}
	defer response.Body.Close()

	body, err := shared.ReadResponseBody(response)
	if err != nil {
		return &ledger.Error{
			Kind:       ledger.ErrorKindUnreachable,
			Op:         op,
			StatusCode: response.StatusCode,
			Reason:     "failed to read indexer response",
			Err:        err,
		}
	}

	if response.StatusCode == http.StatusTooManyRequests || response.StatusCode >= 500 {
		return &ledger.Error{
			Kind:       ledger.ErrorKindUnreachable,
			Op:         op,
			StatusCode: response.StatusCode,
			Reason:     strings.TrimSpace(string(body)),
		}
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &ledger.Error{
			Kind:       ledger.ErrorKindRejected,
			Op:         op,
			StatusCode: response.StatusCode,
			Reason:     strings.TrimSpace(string(body)),
		}
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &ledger.Error{
			Kind:       ledger.ErrorKindMalformedResponse,
			Op:         op,
			StatusCode: response.StatusCode,
			Reason:     "failed to decode indexer response",
			Err:        err,
		}
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, item := range envelope.Errors {
			messages = append(messages, item.Message)
		}
		return &ledger.Error{
			Kind:       ledger.ErrorKindRejected,
			Op:         op,
			StatusCode: response.StatusCode,
			Reason:     strings.Join(messages, "; "),
		}
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return ledger.MalformedResponse(op, "indexer response has no data")
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return &ledger.Error{
			Kind:   ledger.ErrorKindMalformedResponse,
			Op:     op,
			Reason: "failed to decode indexer data",
			Err:    err,
		}
	}
	return nil
}
