package planservice

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

	"github.com/fortranov/sportproject/internal/telemetry/metrics"
	"github.com/fortranov/sportproject/internal/telemetry/tracing"
	"github.com/fortranov/sportproject/internal/training"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const planPath = "/training-plan"

// Client talks to the remote plan service, which owns plan generation and storage.
// Every failure is classified into one of the training sentinel errors.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	metricsManager *metrics.Manager
}

// NewHTTPClient returns an http client whose transport is traced with otelhttp.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func NewClient(baseURL string, httpClient *http.Client, metricsManager *metrics.Manager) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(10 * time.Second)
	}
	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		httpClient:     httpClient,
		metricsManager: metricsManager,
	}
}

// errorResponse is the error body of the plan service.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

func (c *Client) GetPlan(ctx context.Context, uin string) (plan *training.TrainingPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "planService.getPlan")
	span.SetAttributes(attribute.String("uin", uin))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer c.observe("get", time.Now(), &err)

	if strings.TrimSpace(uin) == "" {
		return nil, &training.ValidationError{Field: "uin", Reason: "required"}
	}

	plan = &training.TrainingPlan{}
	if err := c.do(ctx, http.MethodGet, planPath+"/"+url.PathEscape(uin), nil, plan); err != nil {
		return nil, fmt.Errorf("get plan %s: %w", uin, err)
	}

	log.Tracef("plan service: got plan %d for %s with %d days", plan.ID, uin, len(plan.TrainingDays))
	return plan, nil
}

func (c *Client) CreatePlan(ctx context.Context, req training.CreatePlanRequest) (plan *training.TrainingPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "planService.createPlan")
	span.SetAttributes(
		attribute.String("uin", req.UIN),
		attribute.Int("difficulty", req.Difficulty),
	)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer c.observe("create", time.Now(), &err)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal create plan request: %w", err)
	}

	plan = &training.TrainingPlan{}
	if err := c.do(ctx, http.MethodPost, planPath, body, plan); err != nil {
		return nil, fmt.Errorf("create plan %s: %w", req.UIN, err)
	}

	log.Debugf("plan service: created plan %d for %s, %d days until %s", plan.ID, req.UIN, len(plan.TrainingDays), plan.CompetitionDate)
	return plan, nil
}

func (c *Client) DeletePlan(ctx context.Context, uin string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "planService.deletePlan")
	span.SetAttributes(attribute.String("uin", uin))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer c.observe("delete", time.Now(), &err)

	if strings.TrimSpace(uin) == "" {
		return &training.ValidationError{Field: "uin", Reason: "required"}
	}

	if err := c.do(ctx, http.MethodDelete, planPath+"/"+url.PathEscape(uin), nil, nil); err != nil {
		return fmt.Errorf("delete plan %s: %w", uin, err)
	}

	span.SetStatus(codes.Ok, "deleted")
	return nil
}

// do sends the request and decodes a 2xx body into out, when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: http client do: %s", training.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %s", training.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, respBytes)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("%w: unmarshal response: %s", training.ErrTransport, err)
	}
	return nil
}

func statusError(statusCode int, body []byte) error {
	detail := http.StatusText(statusCode)
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && len(errResp.Detail) > 0 {
		var s string
		if err := json.Unmarshal(errResp.Detail, &s); err == nil {
			detail = s
		} else {
			// request validation errors come as a list of objects
			detail = string(errResp.Detail)
		}
	}

	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", training.ErrNotFound, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", training.ErrValidation, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", training.ErrTransport, statusCode, detail)
	}
}

func (c *Client) observe(operation string, begin time.Time, errPtr *error) {
	if c.metricsManager == nil {
		return
	}
	c.metricsManager.HistogramPlanServiceDuration.With(prometheus.Labels{
		"operation": operation,
		"outcome":   Outcome(*errPtr),
	}).Observe(time.Since(begin).Seconds())
}

// Outcome names the error class of err, for metrics labels and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, training.ErrNotFound):
		return "not_found"
	case errors.Is(err, training.ErrValidation):
		return "invalid"
	case errors.Is(err, training.ErrOutOfRange):
		return "out_of_range"
	default:
		return "transport"
	}
}
