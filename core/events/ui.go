package events

const (
	// KindMessageShown identifies a banner message becoming visible.
	KindMessageShown Kind = "message.shown"
	// KindMessageCleared identifies the banner message going away.
	KindMessageCleared Kind = "message.cleared"
	// KindRecommendationShown identifies a catalog entry being surfaced.
	KindRecommendationShown Kind = "recommendation.shown"
	// KindRecommendationCleared identifies the recommendation card dismissal.
	KindRecommendationCleared Kind = "recommendation.cleared"
	// KindNoticeShown identifies a transient user-visible notice.
	KindNoticeShown Kind = "notice.shown"
	// KindPreloadProgress identifies video preloading progress.
	KindPreloadProgress Kind = "preload.progress"
)

// MessageShown marks a banner message becoming visible.
type MessageShown struct {
	Base
	Message    string
	Generation uint64
}

// NewMessageShown creates a message shown event.
func NewMessageShown(message string, generation uint64) MessageShown {
	return MessageShown{Base: NewBase(KindMessageShown), Message: message, Generation: generation}
}

// MessageCleared marks the banner message going away.
type MessageCleared struct {
	Base
	Generation uint64
}

// NewMessageCleared creates a message cleared event.
func NewMessageCleared(generation uint64) MessageCleared {
	return MessageCleared{Base: NewBase(KindMessageCleared), Generation: generation}
}

// RecommendationShown marks a catalog entry being surfaced or selected.
type RecommendationShown struct {
	Base
	ID    string
	Label string
}

// NewRecommendationShown creates a recommendation shown event.
func NewRecommendationShown(id, label string) RecommendationShown {
	return RecommendationShown{Base: NewBase(KindRecommendationShown), ID: id, Label: label}
}

// RecommendationCleared marks the recommendation card being dismissed.
type RecommendationCleared struct {
	Base
}

// NewRecommendationCleared creates a recommendation cleared event.
func NewRecommendationCleared() RecommendationCleared {
	return RecommendationCleared{Base: NewBase(KindRecommendationCleared)}
}

// NoticeShown marks a transient user-visible notice.
type NoticeShown struct {
	Base
	Notice string
}

// NewNoticeShown creates a notice shown event.
func NewNoticeShown(notice string) NoticeShown {
	return NoticeShown{Base: NewBase(KindNoticeShown), Notice: notice}
}

// PreloadProgress marks video asset preloading progress.
type PreloadProgress struct {
	Base
	Loaded     int
	Total      int
	Percentage int
}

// NewPreloadProgress creates a preload progress event.
func NewPreloadProgress(loaded, total, percentage int) PreloadProgress {
	return PreloadProgress{Base: NewBase(KindPreloadProgress), Loaded: loaded, Total: total, Percentage: percentage}
}
