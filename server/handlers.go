// Package server provides the booth's same-origin API surface: the signed
// connection URL bootstrap, interview report forwarding and on-demand
// consultation PDF rendering, plus health and metrics endpoints.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	booth "github.com/cekatlabs/booth-core/core"
	"github.com/cekatlabs/booth-core/core/booths"
	"github.com/cekatlabs/booth-core/core/reports"
)

const reportSecretHeader = "x-report-secret"

// Config carries the upstream endpoints and credentials.
type Config struct {
	ElevenLabsAPIKey  string
	ElevenLabsBaseURL string
	DefaultAgentID    string
	ReportWebhookURL  string
	ReportSecret      string
}

type Handlers struct {
	config    Config
	catalog   *booths.Catalog
	generator *reports.Generator

	httpClient *http.Client
	now        func() time.Time
}

func NewHandlers(config Config, catalog *booths.Catalog, generator *reports.Generator) *Handlers {
	if config.ElevenLabsBaseURL == "" {
		config.ElevenLabsBaseURL = "https://api.elevenlabs.io"
	}
	if catalog == nil {
		catalog = booths.NewCatalog()
	}
	if generator == nil {
		generator = reports.NewGenerator(catalog)
	}
	return &Handlers{
		config:    config,
		catalog:   catalog,
		generator: generator,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		now: time.Now,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// HandleBooth resolves a booth id to its public configuration. Unrecognized
// ids resolve to the default booth and carry a selector redirect signal.
func (h *Handlers) HandleBooth(w http.ResponseWriter, r *http.Request) {
	config, recognized := h.catalog.Lookup(r.URL.Query().Get("boothId"))

	payload := map[string]any{
		"booth": map[string]any{
			"id":   config.ID,
			"name": config.Name,
			"logo": config.Logo,
			"capabilities": map[string]bool{
				"request_phone_number": config.Capabilities.RequestPhoneNumber,
				"show_report":          config.Capabilities.ShowReport,
				"create_report":        config.Capabilities.CreateReport,
			},
		},
	}
	if !recognized {
		payload["redirect"] = "selector"
	}
	writeJSON(w, http.StatusOK, payload)
}

// HandleSignedURL resolves the booth's agent and exchanges the API key for a
// signed websocket URL.
func (h *Handlers) HandleSignedURL(w http.ResponseWriter, r *http.Request) {
	config, _ := h.catalog.Lookup(r.URL.Query().Get("boothId"))

	agentID := config.AgentID
	if agentID == "" {
		agentID = h.config.DefaultAgentID
	}
	if agentID == "" || h.config.ElevenLabsAPIKey == "" {
		writeError(w, http.StatusInternalServerError, "agent id or api key not configured")
		return
	}

	endpoint := fmt.Sprintf("%s/v1/convai/conversation/get-signed-url?agent_id=%s",
		h.config.ElevenLabsBaseURL, url.QueryEscape(agentID))
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, endpoint, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}
	req.Header.Set("xi-api-key", h.config.ElevenLabsAPIKey)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to reach signed url endpoint")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		writeError(w, http.StatusBadGateway,
			fmt.Sprintf("signed url request failed with status %d", resp.StatusCode))
		return
	}

	var upstream struct {
		SignedURL string `json:"signed_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil || upstream.SignedURL == "" {
		writeError(w, http.StatusBadGateway, "invalid signed url response")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"signedUrl": upstream.SignedURL})
}

// HandleReport validates and forwards an interview report to the configured
// webhook, stamping the time it was received.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	if h.config.ReportSecret != "" && r.Header.Get(reportSecretHeader) != h.config.ReportSecret {
		writeError(w, http.StatusUnauthorized, "invalid report secret")
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid report payload")
		return
	}
	if h.config.ReportWebhookURL == "" {
		writeError(w, http.StatusInternalServerError, "report webhook not configured")
		return
	}

	payload["receivedAt"] = h.now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to marshal report")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost,
		h.config.ReportWebhookURL, bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build webhook request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		reportsFailed.Inc()
		writeError(w, http.StatusBadGateway, "failed to reach report webhook")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reportsFailed.Inc()
		writeError(w, http.StatusBadGateway,
			fmt.Sprintf("report webhook failed with status %d", resp.StatusCode))
		return
	}

	reportsForwarded.Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleGeneratePDF renders the consultation PDF inline. Nothing is
// persisted.
func (h *Handlers) HandleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		booth.ConsultationData
		BoothID string `json:"boothId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid consultation payload")
		return
	}

	pdfBytes, err := h.generator.Generate(payload.ConsultationData, payload.BoothID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate pdf")
		return
	}

	pdfsGenerated.Inc()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=consultation-report.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
