// Package booths defines the per-booth configuration catalog: video assets,
// theme, recommendation catalog and enabled tool capabilities.
package booths

import "fmt"

// DefaultBoothID is used when no booth identifier is supplied.
const DefaultBoothID = "healthygo"

// VideoSet maps semantic video roles to asset locations. Idle is cyclic and
// must be non-empty; tool videos are keyed by tool name.
type VideoSet struct {
	Idle     []string
	Talking  string
	Thinking string
	Preview  []string
	Tools    map[string]string
}

// ToolVideo returns the asset mapped to tool_<name>, if any.
func (v VideoSet) ToolVideo(name string) (string, bool) {
	url, ok := v.Tools[name]
	return url, ok && url != ""
}

// AllAssets returns every asset in the set, idle first, for preloading.
func (v VideoSet) AllAssets() []string {
	assets := make([]string, 0, len(v.Idle)+len(v.Preview)+len(v.Tools)+2)
	assets = append(assets, v.Idle...)
	if v.Talking != "" {
		assets = append(assets, v.Talking)
	}
	if v.Thinking != "" {
		assets = append(assets, v.Thinking)
	}
	assets = append(assets, v.Preview...)
	for _, url := range v.Tools {
		if url != "" {
			assets = append(assets, url)
		}
	}
	return assets
}

// Validate checks the invariants the runtime relies on.
func (v VideoSet) Validate() error {
	if len(v.Idle) == 0 {
		return fmt.Errorf("video set requires at least one idle asset")
	}
	if v.Talking == "" {
		return fmt.Errorf("video set requires a talking asset")
	}
	return nil
}

// Theme carries the booth's presentation colors. The runtime passes them
// through to report generation and the console; it never interprets them.
type Theme struct {
	Primary    string
	Secondary  string
	Accent     string
	Dark       string
	Background string
	Text       string
	OnPrimary  string
}

// Recommendation is a catalog entry the agent can surface or mark selected.
type Recommendation struct {
	ID          string
	Name        string
	Description string
	Image       string
}

// Capabilities flags the optional tools a booth declares.
type Capabilities struct {
	RequestPhoneNumber bool
	ShowReport         bool
	CreateReport       bool
}

// Config is a single booth: identity, assets, theme, catalog, capabilities.
type Config struct {
	ID              string
	Name            string
	Theme           Theme
	Logo            string
	Favicon         string
	Videos          VideoSet
	Recommendations map[string]Recommendation
	Capabilities    Capabilities
	AgentID         string
}

// Recommendation looks up a catalog entry by id.
func (c Config) Recommendation(id string) (Recommendation, bool) {
	item, ok := c.Recommendations[id]
	return item, ok
}

var healthyGoConfig = Config{
	ID:   "healthygo",
	Name: "HealthyGo",
	Theme: Theme{
		Primary:    "#1f4735",
		Secondary:  "#f9eee9",
		Accent:     "#3a7255",
		Dark:       "#12281f",
		Background: "#ffffff",
		Text:       "#1f4735",
		OnPrimary:  "#f9eee9",
	},
	Logo:    "/logos/healthygo.png",
	Favicon: "/logos/healthygo.png",
	Videos: VideoSet{
		Idle:     []string{"/videos/healthygo/idle1.mp4"},
		Talking:  "/videos/healthygo/talking.mp4",
		Thinking: "/videos/healthygo/thinking.mp4",
		Preview:  []string{"/videos/healthygo/idle1.mp4"},
		Tools: map[string]string{
			"nutrition_check": "/videos/healthygo/nutrition_check.mp4",
			"product_scan":    "/videos/healthygo/product_scan.mp4",
			"recommendation":  "/videos/healthygo/recommendation.mp4",
			"writing_report":  "/videos/healthygo/writing_report.mp4",
		},
	},
	Recommendations: map[string]Recommendation{
		"green_detox": {
			ID:          "green_detox",
			Name:        "Green Detox",
			Description: "Cold-pressed greens with apple and ginger.",
			Image:       "/recommendations/healthygo/green_detox.png",
		},
		"protein_bowl": {
			ID:          "protein_bowl",
			Name:        "Protein Bowl",
			Description: "Grilled chicken, quinoa and seasonal vegetables.",
			Image:       "/recommendations/healthygo/protein_bowl.png",
		},
	},
	Capabilities: Capabilities{CreateReport: true},
}

var jagoConfig = Config{
	ID:   "jago",
	Name: "Jago",
	Theme: Theme{
		Primary:    "#ee2737",
		Secondary:  "#171818",
		Accent:     "#ff5b6a",
		Dark:       "#9b1c29",
		Background: "#ee2737",
		Text:       "#ffffff",
		OnPrimary:  "#ffffff",
	},
	Logo:    "/logos/jago.png",
	Favicon: "/logos/jagofavicon.png",
	Videos: VideoSet{
		Idle:    []string{"/videos/jago/idle.mp4"},
		Talking: "/videos/jago/talking.mp4",
		Preview: []string{"/videos/jago/idle.mp4"},
		Tools: map[string]string{
			"show_message":   "/videos/jago/show_message.mp4",
			"writing_report": "/videos/jago/writing_report.mp4",
		},
	},
	Recommendations: map[string]Recommendation{
		"kopi_susu_jago": {
			ID:          "kopi_susu_jago",
			Name:        "Kopi Susu Jago",
			Description: "Signature iced milk coffee with palm sugar.",
			Image:       "/recommendations/jago/kopi_susu_jago.png",
		},
		"americano_jago": {
			ID:          "americano_jago",
			Name:        "Americano Jago",
			Description: "Double-shot americano over ice.",
			Image:       "/recommendations/jago/americano_jago.png",
		},
	},
}

var cekatConfig = Config{
	ID:   "cekat",
	Name: "Cekat",
	Theme: Theme{
		Primary:    "#1d4ed8",
		Secondary:  "#eff6ff",
		Accent:     "#60a5fa",
		Dark:       "#1e3a8a",
		Background: "#ffffff",
		Text:       "#0f172a",
		OnPrimary:  "#ffffff",
	},
	Logo:    "/logos/cekat.png",
	Favicon: "/logos/cekat.png",
	Videos: VideoSet{
		Idle:     []string{"/videos/cekat/idle1.mp4", "/videos/cekat/idle2.mp4"},
		Talking:  "/videos/cekat/talking.mp4",
		Thinking: "/videos/cekat/thinking.mp4",
		Preview:  []string{"/videos/cekat/preview1.mp4", "/videos/cekat/preview2.mp4"},
		Tools: map[string]string{
			"show_message": "/videos/cekat/show_message.mp4",
			"show_report":  "/videos/cekat/show_report.mp4",
		},
	},
	Capabilities: Capabilities{RequestPhoneNumber: true, ShowReport: true},
}

// Catalog is the built-in booth registry.
type Catalog struct {
	booths    map[string]Config
	defaultID string
}

// NewCatalog builds the registry with the built-in booths.
func NewCatalog() *Catalog {
	return &Catalog{
		booths: map[string]Config{
			healthyGoConfig.ID: healthyGoConfig,
			jagoConfig.ID:      jagoConfig,
			cekatConfig.ID:     cekatConfig,
		},
		defaultID: DefaultBoothID,
	}
}

// IDs returns the registered booth identifiers.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.booths))
	for id := range c.booths {
		ids = append(ids, id)
	}
	return ids
}

// Lookup resolves a booth id, falling back to the default booth. The second
// return reports whether the id was recognized; unrecognized ids signal the
// caller to redirect to the selector.
func (c *Catalog) Lookup(id string) (Config, bool) {
	if id == "" {
		return c.booths[c.defaultID], true
	}
	if booth, ok := c.booths[id]; ok {
		return booth, true
	}
	return c.booths[c.defaultID], false
}

// Register adds or replaces a booth. Invalid configs are rejected.
func (c *Catalog) Register(booth Config) error {
	if booth.ID == "" {
		return fmt.Errorf("booth id is required")
	}
	if err := booth.Videos.Validate(); err != nil {
		return fmt.Errorf("booth %q: %w", booth.ID, err)
	}
	c.booths[booth.ID] = booth
	return nil
}
