package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestID identifies a single calculation request.
type RequestID uuid.UUID

func (id RequestID) String() string { return uuid.UUID(id).String() }

// ProfileRequest is the input for every calculation: a name, a birth date and
// the letter mapping system to use.
type ProfileRequest struct {
	Name   string `json:"name"`
	Day    int    `json:"day"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	System string `json:"system,omitempty"`
}

// Numbers holds the ten profile numbers.
type Numbers struct {
	LifePath         int `json:"life_path"`
	Expression       int `json:"expression"`
	SoulUrge         int `json:"soul_urge"`
	Personality      int `json:"personality"`
	BirthdayNumber   int `json:"birthday_number"`
	MaturityNumber   int `json:"maturity_number"`
	HiddenPassion    int `json:"hidden_passion"`
	SubconsciousSelf int `json:"subconscious_self"`
	// KarmicDebt is nil when no karmic debt number applies.
	KarmicDebt    *int  `json:"karmic_debt"`
	MasterNumbers []int `json:"master_numbers"`
}

// Profile is a computed profile together with request metadata.
type Profile struct {
	RequestID RequestID `json:"request_id"`
	Name      string    `json:"name"`
	System    string    `json:"system"`
	Numbers   Numbers   `json:"profile"`

	CreatedAt     time.Time     `json:"timestamp"`
	ExecutionTime time.Duration `json:"-"`
}

// MetricValue is the outcome of a single standalone calculator.
type MetricValue struct {
	Metric string `json:"metric"`
	System string `json:"system,omitempty"`
	// Value is nil for an absent karmic debt.
	Value *int `json:"value"`
	// Values is only set for the master numbers detector.
	Values   []int `json:"values,omitempty"`
	IsMaster bool  `json:"is_master_number"`
	// RawSum is the unreduced sum behind the value, when the metric has one.
	RawSum *int `json:"raw_sum,omitempty"`
}

// BatchItem is the per-entry outcome of a batch calculation. Exactly one of
// Profile and Err is set.
type BatchItem struct {
	Index   int
	Request ProfileRequest
	Profile *Profile
	Err     error
}
