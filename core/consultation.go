package booth

import (
	"fmt"
	"sync"

	"github.com/jinzhu/copier"
)

// ConsultationData is the flat record of optional fields the agent
// accumulates over a conversation through update_data calls, merged with the
// terminal create_report parameters.
type ConsultationData struct {
	Name                  string `json:"name,omitempty" copier:"Name"`
	Age                   string `json:"age,omitempty" copier:"Age"`
	Gender                string `json:"gender,omitempty" copier:"Gender"`
	Height                string `json:"height,omitempty" copier:"Height"`
	Weight                string `json:"weight,omitempty" copier:"Weight"`
	IdealWeight           string `json:"ideal_weight,omitempty" copier:"IdealWeight"`
	BMI                   string `json:"bmi,omitempty" copier:"BMI"`
	BMIStatus             string `json:"bmi_status,omitempty" copier:"BMIStatus"`
	Goal                  string `json:"goal,omitempty" copier:"Goal"`
	MedicalHistory        string `json:"medical_history,omitempty" copier:"MedicalHistory"`
	Exercise              string `json:"exercise,omitempty" copier:"Exercise"`
	CalorieRecommendation string `json:"calorie_recommendation,omitempty" copier:"CalorieRecommendation"`
	BreakfastMenu         string `json:"breakfast_menu,omitempty" copier:"BreakfastMenu"`
	LunchMenu             string `json:"lunch_menu,omitempty" copier:"LunchMenu"`
	DinnerMenu            string `json:"dinner_menu,omitempty" copier:"DinnerMenu"`
	SnackMenu             string `json:"snack_menu,omitempty" copier:"SnackMenu"`
	Recommendation        string `json:"recommendation,omitempty" copier:"Recommendation"`
}

// consultationFields maps update_data keys onto ConsultationData fields.
var consultationFields = map[string]func(*ConsultationData, string){
	"name":                   func(d *ConsultationData, v string) { d.Name = v },
	"age":                    func(d *ConsultationData, v string) { d.Age = v },
	"gender":                 func(d *ConsultationData, v string) { d.Gender = v },
	"height":                 func(d *ConsultationData, v string) { d.Height = v },
	"weight":                 func(d *ConsultationData, v string) { d.Weight = v },
	"ideal_weight":           func(d *ConsultationData, v string) { d.IdealWeight = v },
	"bmi":                    func(d *ConsultationData, v string) { d.BMI = v },
	"bmi_status":             func(d *ConsultationData, v string) { d.BMIStatus = v },
	"goal":                   func(d *ConsultationData, v string) { d.Goal = v },
	"medical_history":        func(d *ConsultationData, v string) { d.MedicalHistory = v },
	"exercise":               func(d *ConsultationData, v string) { d.Exercise = v },
	"calorie_recommendation": func(d *ConsultationData, v string) { d.CalorieRecommendation = v },
	"breakfast_menu":         func(d *ConsultationData, v string) { d.BreakfastMenu = v },
	"lunch_menu":             func(d *ConsultationData, v string) { d.LunchMenu = v },
	"dinner_menu":            func(d *ConsultationData, v string) { d.DinnerMenu = v },
	"snack_menu":             func(d *ConsultationData, v string) { d.SnackMenu = v },
	"recommendation":         func(d *ConsultationData, v string) { d.Recommendation = v },
}

// consultationStore accumulates consultation fields across tool calls for a
// single conversation.
type consultationStore struct {
	mu   sync.Mutex
	data ConsultationData
}

// Record stores an update_data value when the key names a consultation
// field. Reports whether the key was one.
func (c *consultationStore) Record(key, value string) bool {
	if c == nil {
		return false
	}

	set, ok := consultationFields[key]
	if !ok {
		return false
	}

	c.mu.Lock()
	set(&c.data, value)
	c.mu.Unlock()
	return true
}

// Snapshot returns the accumulated data.
func (c *consultationStore) Snapshot() ConsultationData {
	if c == nil {
		return ConsultationData{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Merge combines the accumulated data with the terminal tool call's
// parameters. Parameters win field by field where non-empty; the surfaced
// recommendation id backstops an otherwise empty recommendation.
func (c *consultationStore) Merge(params ConsultationData, recommendationID string) (ConsultationData, error) {
	merged := c.Snapshot()
	if err := copier.CopyWithOption(&merged, &params, copier.Option{IgnoreEmpty: true}); err != nil {
		return merged, fmt.Errorf("failed to merge consultation data: %w", err)
	}
	if merged.Recommendation == "" {
		merged.Recommendation = recommendationID
	}
	return merged, nil
}

// Reset clears the accumulated data for the next conversation.
func (c *consultationStore) Reset() {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.data = ConsultationData{}
	c.mu.Unlock()
}
