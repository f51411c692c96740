package events

const (
	// KindPhoneCaptureOpened identifies the capture gate opening.
	KindPhoneCaptureOpened Kind = "phone_capture.opened"
	// KindPhoneCaptureSettled identifies the capture gate settling.
	KindPhoneCaptureSettled Kind = "phone_capture.settled"
)

// Phone capture outcomes.
const (
	PhoneCaptureConfirmed  = "confirmed"
	PhoneCaptureCancelled  = "cancelled"
	PhoneCaptureSuperseded = "superseded"
	PhoneCaptureTornDown   = "torn_down"
)

// PhoneCaptureOpened marks the capture gate opening.
type PhoneCaptureOpened struct {
	Base
	Title string
}

// NewPhoneCaptureOpened creates a phone capture opened event.
func NewPhoneCaptureOpened(title string) PhoneCaptureOpened {
	return PhoneCaptureOpened{Base: NewBase(KindPhoneCaptureOpened), Title: title}
}

// PhoneCaptureSettled marks the capture gate settling one way or another.
type PhoneCaptureSettled struct {
	Base
	Outcome string
	Value   string
}

// NewPhoneCaptureSettled creates a phone capture settled event.
func NewPhoneCaptureSettled(outcome, value string) PhoneCaptureSettled {
	return PhoneCaptureSettled{Base: NewBase(KindPhoneCaptureSettled), Outcome: outcome, Value: value}
}
