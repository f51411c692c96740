package reports

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	booth "github.com/cekatlabs/booth-core/core"
)

func TestGenerateProducesPDF(t *testing.T) {
	generator := NewGenerator(nil)

	pdfBytes, err := generator.Generate(booth.ConsultationData{
		Name:           "Ana",
		Age:            "29",
		Goal:           "lose weight",
		BMI:            "24.1",
		Recommendation: "green_detox",
	}, "healthygo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got prefix %q", pdfBytes[:min(8, len(pdfBytes))])
	}
}

func TestCreateReportDeliversWebhookAndPrint(t *testing.T) {
	var webhookPayload map[string]any
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&webhookPayload); err != nil {
			t.Errorf("failed to decode webhook payload: %v", err)
		}
	}))
	defer webhook.Close()

	printCalls := 0
	printServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		printCalls++
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("expected a file upload: %v", err)
			return
		}
		defer file.Close()
		if !strings.HasSuffix(header.Filename, ".pdf") {
			t.Errorf("expected a pdf filename, got %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if !bytes.HasPrefix(content, []byte("%PDF")) {
			t.Error("expected pdf content in print upload")
		}
	}))
	defer printServer.Close()

	client := NewDeliveryClient(nil,
		WithWebhookURL(webhook.URL),
		WithPrintURL(printServer.URL),
	)

	err := client.CreateReport(context.Background(), booth.ConsultationData{Name: "Ana"}, "healthygo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if printCalls != 1 {
		t.Fatalf("expected one print delivery, got %d", printCalls)
	}
	if webhookPayload["name"] != "Ana" {
		t.Fatalf("expected consultation fields in webhook payload, got %v", webhookPayload)
	}
	filename, _ := webhookPayload["pdf_filename"].(string)
	if !strings.HasPrefix(filename, "healthygo-report-Ana-") {
		t.Fatalf("unexpected pdf filename %q", filename)
	}
	encoded, _ := webhookPayload["pdf_base64"].(string)
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || !bytes.HasPrefix(decoded, []byte("%PDF")) {
		t.Fatal("expected inline base64 pdf in webhook payload")
	}
}

func TestCreateReportPrintFailureIsNonFatal(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer webhook.Close()

	printServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "printer on fire", http.StatusBadGateway)
	}))
	defer printServer.Close()

	client := NewDeliveryClient(nil,
		WithWebhookURL(webhook.URL),
		WithPrintURL(printServer.URL),
	)

	if err := client.CreateReport(context.Background(), booth.ConsultationData{}, "healthygo"); err != nil {
		t.Fatalf("expected print failure to be non-fatal, got %v", err)
	}
}

func TestCreateReportWebhookFailureIsFatal(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer webhook.Close()

	client := NewDeliveryClient(nil, WithWebhookURL(webhook.URL))

	if err := client.CreateReport(context.Background(), booth.ConsultationData{}, "healthygo"); err == nil {
		t.Fatal("expected webhook failure to fail the report")
	}
}

func TestSendInterviewReport(t *testing.T) {
	var payload map[string]any
	var secret string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret = r.Header.Get("x-report-secret")
		json.NewDecoder(r.Body).Decode(&payload)
	}))
	defer server.Close()

	client := NewDeliveryClient(nil,
		WithInterviewURL(server.URL),
		WithSharedSecret("hush"),
	)

	err := client.SendInterviewReport(context.Background(),
		map[string]any{"summary": "great talk"}, "jago", "kopi_susu_jago")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "hush" {
		t.Fatalf("expected shared secret header, got %q", secret)
	}
	if payload["summary"] != "great talk" || payload["boothId"] != "jago" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if payload["recommendation"] != "kopi_susu_jago" {
		t.Fatalf("expected recommendation to be attached, got %v", payload["recommendation"])
	}
}

func TestSendInterviewReportNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewDeliveryClient(nil, WithInterviewURL(server.URL))
	err := client.SendInterviewReport(context.Background(), map[string]any{}, "jago", "")
	if err == nil {
		t.Fatal("expected an error on non-2xx response")
	}
}
