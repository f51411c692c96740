package booth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cekatlabs/booth-core/core/events"
	"github.com/cekatlabs/booth-core/core/tools"
)

const defaultMessageDurationMS = 5000

type showMessageParams struct {
	Message    string `json:"message"`
	DurationMS int    `json:"duration"`
}

type triggerEffectParams struct {
	Effect string `json:"effect"`
}

type updateDataParams struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type navigateParams struct {
	Screen string `json:"screen"`
}

type showSelectedDrinkParams struct {
	Name        string `json:"name"`
	DrinkName   string `json:"drink_name"`
	NameProduct string `json:"name_product"`
}

type phoneNumberParams struct {
	Title        string `json:"title"`
	Prompt       string `json:"prompt"`
	Placeholder  string `json:"placeholder"`
	DefaultValue string `json:"defaultValue"`
}

// ConsultationResult is the structured outcome show_report receives from the
// agent.
type ConsultationResult struct {
	MainGoal     string   `json:"main_goal"`
	Industry     string   `json:"industry"`
	BusinessName string   `json:"business_name"`
	MainChannels []string `json:"main_channels"`
	Role         string   `json:"role"`
}

type showReportParams struct {
	Name               string              `json:"name"`
	Number             string              `json:"number"`
	ResultConsultation *ConsultationResult `json:"result_consultation"`
}

// buildTools constructs the client tool registry for the active booth: the
// fixed core tool set plus the capability tools the booth declares. The set
// is handed to the conversation session at connect time; the session is the
// exclusive caller.
func (b *Booth) buildTools() tools.Set {
	set := tools.Set{
		tools.NewTool("show_message",
			"Display a transient message banner to the visitor.",
			map[string]tools.ParameterBase{
				"message":  {Type: "string", Description: "Text to display"},
				"duration": {Type: "integer", Description: "Display duration in milliseconds"},
			},
			b.handleShowMessage,
		),
		tools.NewTool("trigger_effect",
			"Trigger a themed visual effect by name.",
			map[string]tools.ParameterBase{
				"effect": {Type: "string", Description: "Effect name"},
			},
			b.handleTriggerEffect,
		),
		tools.NewTool("update_data",
			"Record the latest value for a named state key.",
			map[string]tools.ParameterBase{
				"key":   {Type: "string", Description: "State key"},
				"value": {Type: "string", Description: "New value, null clears special keys"},
			},
			b.handleUpdateData,
		),
		tools.NewTool("navigate",
			"Switch the booth to a logical screen.",
			map[string]tools.ParameterBase{
				"screen": {Type: "string", Description: "Screen name"},
			},
			b.handleNavigate,
		),
		tools.NewTool("end_conversation",
			"Request that the conversation be ended.",
			map[string]tools.ParameterBase{},
			b.handleEndConversation,
		),
		tools.NewTool("show_selected_drink",
			"Show the drink the visitor selected.",
			map[string]tools.ParameterBase{
				"name": {Type: "string", Description: "Selected drink name"},
			},
			b.handleShowSelectedDrink,
		),
		tools.NewTool("finish_interview",
			"Forward the interview summary for delivery.",
			map[string]tools.ParameterBase{},
			b.handleFinishInterview,
		),
	}

	if b.config.Capabilities.RequestPhoneNumber {
		set = append(set, tools.NewTool("request_phone_number",
			"Ask the visitor to confirm their phone number.",
			map[string]tools.ParameterBase{
				"title":        {Type: "string", Description: "Modal title"},
				"prompt":       {Type: "string", Description: "Modal description"},
				"placeholder":  {Type: "string", Description: "Input placeholder"},
				"defaultValue": {Type: "string", Description: "Pre-filled phone number"},
			},
			b.handleRequestPhoneNumber,
		))
	}
	if b.config.Capabilities.ShowReport {
		set = append(set, tools.NewTool("show_report",
			"Show the consultation report summary after phone confirmation.",
			map[string]tools.ParameterBase{
				"name":                {Type: "string", Description: "Customer name"},
				"number":              {Type: "string", Description: "Phone number to pre-fill"},
				"result_consultation": {Type: "object", Description: "Consultation outcome"},
			},
			b.handleShowReport,
		))
	}
	if b.config.Capabilities.CreateReport {
		set = append(set, tools.NewTool("create_report",
			"Generate and deliver the consultation report.",
			map[string]tools.ParameterBase{},
			b.handleCreateReport,
		))
	}

	return set.Observed(b.observeToolCall)
}

// Tool call ids are generated locally; the wire protocol's call ids stay at
// the session boundary.
func (b *Booth) observeToolCall(name, arguments string) func(response string, err error) {
	id := uuid.NewString()
	b.emit(events.NewToolCallStarted(id, name, arguments))

	return func(response string, err error) {
		if err != nil {
			b.emit(events.NewToolCallFailed(id, name, err.Error()))
			return
		}
		b.emit(events.NewToolCallCompleted(id, name, response))
	}
}

func (b *Booth) handleShowMessage(params showMessageParams) (string, error) {
	duration := params.DurationMS
	if duration <= 0 {
		duration = defaultMessageDurationMS
	}

	b.ui.ShowMessage(params.Message, time.Duration(duration)*time.Millisecond)
	b.playToolVideo("show_message")
	return fmt.Sprintf("Message displayed: %s", params.Message), nil
}

func (b *Booth) handleTriggerEffect(params triggerEffectParams) (string, error) {
	b.ui.SetEffect(params.Effect)
	b.playToolVideo(params.Effect)
	return fmt.Sprintf("Effect triggered: %s", params.Effect), nil
}

func (b *Booth) handleUpdateData(params updateDataParams) (string, error) {
	b.ui.SetData(params.Key, params.Value)

	if b.config.Capabilities.CreateReport {
		if value, ok := params.Value.(string); ok {
			b.consultation.Record(params.Key, value)
		}
	}

	switch params.Key {
	case "recommendation", "menu_item":
		if value, ok := params.Value.(string); ok {
			b.ui.SetRecommendation(value, RecommendationRecommended)
			if b.config.Capabilities.CreateReport {
				b.consultation.Record("recommendation", value)
			}
		} else if params.Value == nil {
			b.ui.ClearRecommendation()
		}
	case "clear_recommendation":
		b.ui.ClearRecommendation()
	case "show_selected_drink":
		if value, ok := params.Value.(string); ok {
			b.ui.SetRecommendation(value, RecommendationSelected)
		} else if params.Value == nil {
			b.ui.ClearRecommendation()
		}
	}

	return fmt.Sprintf("Data updated: %s", params.Key), nil
}

func (b *Booth) handleNavigate(params navigateParams) (string, error) {
	b.ui.SetScreen(params.Screen)
	return fmt.Sprintf("Navigated to: %s", params.Screen), nil
}

// handleEndConversation only requests termination. The booth's run loop
// consumes the request; tearing the session down from inside a tool callback
// would be re-entrant.
func (b *Booth) handleEndConversation(_ struct{}) (string, error) {
	b.requestEnd()
	return "Conversation ending requested.", nil
}

func (b *Booth) handleShowSelectedDrink(params showSelectedDrinkParams) (string, error) {
	candidate := params.Name
	if candidate == "" {
		candidate = params.DrinkName
	}
	if candidate == "" {
		candidate = params.NameProduct
	}
	if candidate == "" {
		return "No drink name provided.", nil
	}

	b.ui.SetRecommendation(candidate, RecommendationSelected)
	return fmt.Sprintf("Selected drink shown: %s", candidate), nil
}

func (b *Booth) handleFinishInterview(payload map[string]any) (string, error) {
	recommendationID := ""
	if rec := b.ui.Recommendation(); rec != nil {
		recommendationID = rec.ID
	}

	ctx, span := tracer.Start(context.Background(), "finish_interview")
	err := b.reportClient.SendInterviewReport(ctx, payload, b.config.ID, recommendationID)
	if err != nil {
		span.RecordError(err)
		span.End()
		logger.Error("failed to send interview report", "error", err)
		b.ui.AddNotice("Failed to send report, please retry.")
		return "Interview summary dispatched.", nil
	}
	span.End()

	b.ui.SetReportStatus(ReportStatusSent)
	b.ui.AddNotice("Interview summary sent to printer.")
	return "Interview summary dispatched.", nil
}

func (b *Booth) handleRequestPhoneNumber(params phoneNumberParams) (string, error) {
	confirmed, err := b.awaitPhoneCapture(params)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone number confirmed: %s", confirmed), nil
}

func (b *Booth) handleShowReport(params showReportParams) (string, error) {
	ack, err := b.showReport(params)
	if err != nil {
		logger.Error("failed to show report", "error", err)
		b.ui.AddNotice(fmt.Sprintf("Failed to show report: %s", err))
		return fmt.Sprintf("Failed to show report: %s", err), nil
	}
	return ack, nil
}

func (b *Booth) showReport(params showReportParams) (string, error) {
	if strings.TrimSpace(params.Name) == "" {
		return "", fmt.Errorf("customer name is required")
	}
	if params.ResultConsultation == nil {
		return "", fmt.Errorf("consultation result is required")
	}
	consultation := *params.ResultConsultation
	if consultation.MainGoal == "" || consultation.Industry == "" ||
		consultation.BusinessName == "" || consultation.Role == "" {
		return "", fmt.Errorf("consultation result is incomplete")
	}

	phoneNumber, err := b.awaitPhoneCapture(phoneNumberParams{DefaultValue: params.Number})
	if err != nil {
		return "", err
	}

	b.ui.SetData("reportData", map[string]any{
		"name":         params.Name,
		"phoneNumber":  phoneNumber,
		"consultation": consultation,
	})
	b.ui.SetReportStatus(ReportStatusShown)
	b.playToolVideo("show_report")

	return fmt.Sprintf("Report summary shown for %s", params.Name), nil
}

// handleCreateReport merges the agent's parameters with the accumulated
// consultation data and runs the report pipeline. An in-flight guard keeps a
// duplicated remote invocation from producing a second document.
func (b *Booth) handleCreateReport(params ConsultationData) (string, error) {
	if !b.reportInFlight.CompareAndSwap(false, true) {
		return "Report creation already in progress.", nil
	}
	defer b.reportInFlight.Store(false)

	recommendationID := ""
	if rec := b.ui.Recommendation(); rec != nil {
		recommendationID = rec.ID
	}

	data, err := b.consultation.Merge(params, recommendationID)
	if err != nil {
		return fmt.Sprintf("Failed to create report: %s", err), nil
	}

	ctx, span := tracer.Start(context.Background(), "create_report")
	defer span.End()

	if err := b.reportClient.CreateReport(ctx, data, b.config.ID); err != nil {
		span.RecordError(err)
		logger.Error("failed to create report", "error", err)
		b.ui.AddNotice("Failed to create report, please retry.")
		return fmt.Sprintf("Failed to create report: %s", err), nil
	}

	b.ui.SetReportStatus(ReportStatusCreated)
	b.emit(events.NewReportCreated(b.config.ID, ""))
	return "Report created successfully. PDF is ready for printing.", nil
}

// awaitPhoneCapture opens the capture gate with defaults applied and blocks
// its caller, a tool handler, until the gate settles.
func (b *Booth) awaitPhoneCapture(params phoneNumberParams) (string, error) {
	prompt := PhoneCapturePrompt{
		Title:       params.Title,
		Description: params.Prompt,
		Placeholder: params.Placeholder,
		Value:       params.DefaultValue,
	}
	if prompt.Title == "" {
		prompt.Title = "Confirm your phone number"
	}
	if prompt.Description == "" {
		prompt.Description = "Please make sure your phone number is correct before continuing."
	}
	if prompt.Placeholder == "" {
		prompt.Placeholder = "08xxxxxxxxxx"
	}

	result := <-b.capture.Open(prompt)
	if result.err != nil {
		return "", result.err
	}
	return result.value, nil
}
