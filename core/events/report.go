package events

const (
	// KindReportCreated identifies a consultation document being generated.
	KindReportCreated Kind = "report.created"
	// KindReportSent identifies an interview report being forwarded.
	KindReportSent Kind = "report.sent"
)

// ReportCreated marks a consultation document being generated and dispatched.
type ReportCreated struct {
	Base
	BoothID  string
	Filename string
}

// NewReportCreated creates a report created event.
func NewReportCreated(boothID, filename string) ReportCreated {
	return ReportCreated{Base: NewBase(KindReportCreated), BoothID: boothID, Filename: filename}
}

// ReportSent marks an interview report being forwarded.
type ReportSent struct {
	Base
	BoothID string
}

// NewReportSent creates a report sent event.
func NewReportSent(boothID string) ReportSent {
	return ReportSent{Base: NewBase(KindReportSent), BoothID: boothID}
}
