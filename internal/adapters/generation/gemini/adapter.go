package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

const (
	DefaultBaseURL        = "https://generativelanguage.googleapis.com/v1beta/models/"
	DefaultKeyName        = "GEMINI_API_KEY"
	defaultRequestTimeout = 60 * time.Second
	maxResponseBytes      = 1 << 20
	rawResponsePreview    = 500
	apiKeyHeader          = "x-goog-api-key"
)

type API struct {
	BaseURL string
	// APIKey is used as is when set; otherwise ResolveKey is consulted on
	// every request.
	APIKey     string
	ResolveKey func(ctx context.Context) (string, error)
	KeyName    string
}

// Adapter calls the generateContent endpoint. Every failure, transport errors
// included, is folded into the returned GenerationResult.
type Adapter struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         logrus.FieldLogger
}

var _ ports.Generator = Adapter{}

func (a Adapter) Generate(ctx context.Context, history []domain.Turn, params domain.LLMParameters) domain.GenerationResult {
	log := a.logger().WithField("model", params.Model)

	key, err := a.apiKey(ctx)
	if err != nil {
		log.WithError(err).Warn("api key unavailable")
		return domain.GenerationFailure(err.Error(), 0)
	}

	endpoint, err := buildAPIURL(a.API.BaseURL, params.Model+":generateContent")
	if err != nil {
		return domain.GenerationFailure(fmt.Sprintf("request failed: %v", err), 0)
	}

	payload, err := json.Marshal(newGenerateRequest(history, params))
	if err != nil {
		return domain.GenerationFailure(fmt.Sprintf("request failed: encode request: %v", err), 0)
	}

	requestCtx, cancel := a.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.GenerationFailure(fmt.Sprintf("request failed: %v", err), 0)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, key)

	log.WithField("turns", len(history)).Debug("calling generateContent")
	resp, err := a.httpClient().Do(req)
	if err != nil {
		log.WithError(err).Warn("generateContent request failed")
		return domain.GenerationFailure(fmt.Sprintf("request failed: %v", err), 0)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.GenerationFailure(fmt.Sprintf("request failed: read response: %v", err), resp.StatusCode)
	}

	result := parseResponse(body)
	result.HTTPStatusCode = resp.StatusCode
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		result.Success = false
		result.GeneratedText = ""
	}
	if !result.Success && result.ErrorMessage == "" {
		result.ErrorMessage = fmt.Sprintf("API call failed with HTTP %d. Raw response: %s...", resp.StatusCode, preview(body))
	}

	log.WithFields(logrus.Fields{"http_status": resp.StatusCode, "success": result.Success}).Debug("generateContent finished")
	return result
}

func (a Adapter) apiKey(ctx context.Context) (string, error) {
	if key := strings.TrimSpace(a.API.APIKey); key != "" {
		return key, nil
	}

	name := a.API.KeyName
	if name == "" {
		name = DefaultKeyName
	}
	if a.API.ResolveKey == nil {
		return "", fmt.Errorf("%s is not set", name)
	}

	key, err := a.API.ResolveKey(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", fmt.Errorf("%s is not set", name)
		}
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%s is not set", name)
	}

	return strings.TrimSpace(key), nil
}

func (a Adapter) httpClient() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return http.DefaultClient
}

func (a Adapter) logger() logrus.FieldLogger {
	if a.Logger != nil {
		return a.Logger
	}
	return logrus.StandardLogger()
}

func (a Adapter) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := a.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if strings.HasPrefix(path, ":") || strings.TrimSpace(path) == "" {
		return "", errors.New("model is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	return parsed.String() + url.PathEscape(path), nil
}

func preview(body []byte) string {
	if len(body) > rawResponsePreview {
		body = body[:rawResponsePreview]
	}
	return string(body)
}
