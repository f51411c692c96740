package reports

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/codes"

	booth "github.com/cekatlabs/booth-core/core"
)

const reportSecretHeader = "x-report-secret"

// DeliveryClient runs the report side effects behind the terminal tools:
// create_report's generate-webhook-print pipeline and finish_interview's
// summary forwarding.
type DeliveryClient struct {
	generator *Generator

	webhookURL   string
	printURL     string
	interviewURL string
	secret       string

	httpClient *http.Client
	now        func() time.Time
}

type DeliveryOption func(*DeliveryClient)

// WithWebhookURL sets the report delivery webhook endpoint.
func WithWebhookURL(url string) DeliveryOption {
	return func(c *DeliveryClient) { c.webhookURL = url }
}

// WithPrintURL sets the print delivery endpoint.
func WithPrintURL(url string) DeliveryOption {
	return func(c *DeliveryClient) { c.printURL = url }
}

// WithInterviewURL sets the interview report forwarding endpoint.
func WithInterviewURL(url string) DeliveryOption {
	return func(c *DeliveryClient) { c.interviewURL = url }
}

// WithSharedSecret sets the shared secret attached to interview reports.
func WithSharedSecret(secret string) DeliveryOption {
	return func(c *DeliveryClient) { c.secret = secret }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) DeliveryOption {
	return func(c *DeliveryClient) { c.httpClient = client }
}

func NewDeliveryClient(generator *Generator, opts ...DeliveryOption) *DeliveryClient {
	c := &DeliveryClient{
		generator: generator,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.generator == nil {
		c.generator = NewGenerator(nil)
	}
	return c
}

// CreateReport renders the consultation PDF, posts it to the delivery
// webhook with the document inlined as base64, and forwards it to the
// print endpoint. Print failure is logged and does not affect the outcome.
// The document is never stored.
func (c *DeliveryClient) CreateReport(ctx context.Context, data booth.ConsultationData, boothID string) error {
	ctx, span := tracer.Start(ctx, "create_report_delivery")
	defer span.End()

	pdfBytes, err := c.generator.Generate(data, boothID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to generate report pdf: %w", err)
	}

	name := data.Name
	if name == "" {
		name = "customer"
	}
	filename := fmt.Sprintf("%s-report-%s-%d.pdf", boothID, name, c.now().UnixMilli())

	if err := c.deliverToWebhook(ctx, data, pdfBytes, filename); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := c.deliverToPrinter(ctx, pdfBytes, filename); err != nil {
		logger.Warn("print delivery failed, report was still created", "error", err)
	}

	return nil
}

func (c *DeliveryClient) deliverToWebhook(ctx context.Context, data booth.ConsultationData, pdfBytes []byte, filename string) error {
	if c.webhookURL == "" {
		return fmt.Errorf("no report webhook configured")
	}

	payload := map[string]any{
		"pdf_base64":   base64.StdEncoding.EncodeToString(pdfBytes),
		"pdf_filename": filename,
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal consultation data: %w", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to flatten consultation data: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}
	return nil
}

func (c *DeliveryClient) deliverToPrinter(ctx context.Context, pdfBytes []byte, filename string) error {
	if c.printURL == "" {
		return fmt.Errorf("no print endpoint configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to build print upload: %w", err)
	}
	if _, err := part.Write(pdfBytes); err != nil {
		return fmt.Errorf("failed to write print upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize print upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.printURL, &body)
	if err != nil {
		return fmt.Errorf("failed to build print request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("print request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("print request failed with status %d", resp.StatusCode)
	}
	return nil
}

// SendInterviewReport forwards an interview payload plus booth identity and
// the surfaced recommendation, authenticated with the shared secret when one
// is configured. A non-2xx response is an error for the caller to surface.
func (c *DeliveryClient) SendInterviewReport(ctx context.Context, payload map[string]any, boothID, recommendationID string) error {
	if c.interviewURL == "" {
		return fmt.Errorf("no interview report endpoint configured")
	}

	body := map[string]any{}
	for key, value := range payload {
		body[key] = value
	}
	body["boothId"] = boothID
	if recommendationID != "" {
		body["recommendation"] = recommendationID
	} else {
		body["recommendation"] = nil
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal interview report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.interviewURL, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build interview report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set(reportSecretHeader, c.secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("interview report request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("interview report request failed with status %d", resp.StatusCode)
	}
	return nil
}
