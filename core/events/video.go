package events

const (
	// KindVideoChanged identifies a playback source change.
	KindVideoChanged Kind = "video.changed"
)

// VideoChanged marks the playback driver being handed a new asset.
type VideoChanged struct {
	Base
	Role     string
	AssetURL string
	Loop     bool
}

// NewVideoChanged creates a video changed event.
func NewVideoChanged(role, assetURL string, loop bool) VideoChanged {
	return VideoChanged{Base: NewBase(KindVideoChanged), Role: role, AssetURL: assetURL, Loop: loop}
}
