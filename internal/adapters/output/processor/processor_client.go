package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"line-webhook-gateway/configs"
	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/output"
)

// ProcessorClientAdapter struct - Output adapter for the downstream processor API
// The processor consumes queued events in batches; this adapter only delivers
// the "go process" notification and reports the counts back.
type ProcessorClientAdapter struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
}

// Compile-time check to ensure ProcessorClientAdapter implements the output port
var _ output.ProcessorClient = (*ProcessorClientAdapter)(nil)

// NewProcessorClientAdapter func - Creates new processor client adapter
func NewProcessorClientAdapter(config configs.Processor) (*ProcessorClientAdapter, error) {
	if config.URL == "" {
		return nil, errors.New("processor URL is required")
	}
	url := strings.TrimSuffix(config.URL, "/")

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("Processor client adapter initialized with URL: %s, timeout: %v", url, timeout)

	return &ProcessorClientAdapter{
		httpClient: httpClient,
		url:        url,
		timeout:    timeout,
	}, nil
}

// ProcessBatch func - Tells the processor to consume queued events
func (a *ProcessorClientAdapter) ProcessBatch(ctx context.Context, request domain.ProcessBatchRequest) (*domain.ProcessBatchResponse, error) {
	bodyBytes, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal processor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create processor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProcessorUnavailable, err)
	}
	defer resp.Body.Close()

	var apiResp domain.ProcessBatchResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The processor reports failures as {"error": "..."} bodies
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != "" {
			return nil, fmt.Errorf("%w: status %d - %s", domain.ErrProcessorUnavailable, resp.StatusCode, apiResp.Error)
		}
		return nil, fmt.Errorf("%w: status %d - %s", domain.ErrProcessorUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse processor response: %w", err)
	}

	return &apiResp, nil
}
