// Package gaia sends chat-completion requests to a Gaia node and classifies the replies.
package gaia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	loggerpkg "github.com/minhyannv/gaia-botchat/pkg/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// DefaultURLTemplate is the node base URL; %s is the subdomain.
	DefaultURLTemplate = "https://%s.gaia.domains/v1/"
	// SystemPrompt is sent ahead of every question.
	SystemPrompt = "You are a helpful assistant."

	completionsPath = "chat/completions"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

func newChatRequest(question string) chatRequest {
	return chatRequest{Messages: []chatMessage{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: question},
	}}
}

// Client issues one chat-completion call per question.
type Client struct {
	api         openai.Client
	urlTemplate string
	logger      loggerpkg.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientDeps)

type clientDeps struct {
	urlTemplate string
	httpClient  *http.Client
	logger      loggerpkg.Logger
}

// WithURLTemplate overrides DefaultURLTemplate. The template must contain one %s.
func WithURLTemplate(tmpl string) ClientOption {
	return func(d *clientDeps) {
		d.urlTemplate = tmpl
	}
}

// WithHTTPClient injects the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(d *clientDeps) {
		d.httpClient = hc
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) ClientOption {
	return func(d *clientDeps) {
		d.logger = l
	}
}

// NewClient builds a Client. Requests are never retried.
func NewClient(opts ...ClientOption) *Client {
	deps := clientDeps{
		urlTemplate: DefaultURLTemplate,
		logger:      loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	// openai.NewClient picks up OPENAI_ORG_ID and OPENAI_PROJECT_ID from the
	// environment; those headers must not reach a Gaia node.
	apiOpts := []option.RequestOption{
		option.WithMaxRetries(0),
		option.WithHeader("accept", "application/json"),
		option.WithHeaderDel("OpenAI-Organization"),
		option.WithHeaderDel("OpenAI-Project"),
	}
	if deps.httpClient != nil {
		apiOpts = append(apiOpts, option.WithHTTPClient(deps.httpClient))
	}

	return &Client{
		api:         openai.NewClient(apiOpts...),
		urlTemplate: deps.urlTemplate,
		logger:      deps.logger,
	}
}

// BaseURL returns the node base URL for domain.
func (c *Client) BaseURL(domain string) string {
	base := fmt.Sprintf(c.urlTemplate, domain)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// Endpoint returns the chat-completion URL for domain.
func (c *Client) Endpoint(domain string) string {
	return c.BaseURL(domain) + completionsPath
}

// Ask submits question to the node behind domain and classifies the reply.
// It never returns a Go error; failures are carried in the Response.
func (c *Client) Ask(ctx context.Context, domain, apiKey, question string) Response {
	if domain == "" {
		return Response{
			Kind:      KindRequestFailure,
			Detail:    "domain is not set, please set it first",
			Escalated: true,
		}
	}

	capture := &responseCapture{}
	loggerpkg.Debug(c.logger, "gaia request", map[string]any{
		"endpoint": c.Endpoint(domain),
		"question": question,
	})

	err := c.api.Post(ctx, completionsPath, newChatRequest(question), nil,
		option.WithBaseURL(c.BaseURL(domain)),
		option.WithAPIKey(apiKey),
		option.WithMiddleware(capture.middleware),
	)

	resp := classify(capture, err)
	loggerpkg.Debug(c.logger, "gaia response", map[string]any{
		"status":    resp.Status,
		"kind":      resp.Kind.String(),
		"escalated": resp.Escalated,
		"bytes":     len(capture.body),
	})
	return resp
}

// responseCapture records the raw status and body of the single attempt
// so classification does not depend on how the SDK decodes them.
type responseCapture struct {
	got     bool
	status  int
	body    []byte
	readErr error
}

func (c *responseCapture) middleware(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	res, err := next(req)
	if err != nil || res == nil {
		return res, err
	}
	body, readErr := io.ReadAll(res.Body)
	_ = res.Body.Close()
	res.Body = io.NopCloser(bytes.NewReader(body))

	c.got = true
	c.status = res.StatusCode
	c.body = body
	c.readErr = readErr
	return res, readErr
}

func classify(capture *responseCapture, err error) Response {
	if !capture.got || capture.readErr != nil {
		detail := "unknown transport error"
		if capture.readErr != nil {
			detail = capture.readErr.Error()
		} else if err != nil {
			detail = err.Error()
		}
		return Response{Kind: KindRequestFailure, Detail: detail, Status: capture.status, Escalated: true}
	}

	status := capture.status
	body := capture.body

	if status >= http.StatusInternalServerError {
		if IsHTMLDocument(body) {
			return Response{Kind: KindDomainError, Status: status, Escalated: true}
		}
		detail := strings.TrimSpace(string(body))
		if detail == "" && err != nil {
			detail = err.Error()
		}
		if detail == "" {
			detail = fmt.Sprintf("%d %s", status, http.StatusText(status))
		}
		return Response{Kind: KindRequestFailure, Detail: detail, Status: status, Escalated: true}
	}

	if IsHTMLDocument(body) {
		return Response{Kind: KindDomainError, Status: status}
	}
	return decodeCompletion(status, body)
}

func decodeCompletion(status int, body []byte) Response {
	payload := strings.TrimSpace(string(body))

	var completion openai.ChatCompletion
	if err := json.Unmarshal(body, &completion); err != nil {
		detail := fmt.Sprintf("decode completion: %v", err)
		if status >= http.StatusBadRequest && payload != "" {
			detail = payload
		}
		return Response{Kind: KindRequestFailure, Detail: detail, Status: status}
	}
	if len(completion.Choices) == 0 {
		detail := "empty completion choices"
		if payload != "" {
			detail = payload
		}
		return Response{Kind: KindRequestFailure, Detail: detail, Status: status}
	}
	return Response{
		Kind:    KindSuccess,
		Content: completion.Choices[0].Message.Content,
		Status:  status,
	}
}
