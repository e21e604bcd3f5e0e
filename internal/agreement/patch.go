package agreement

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Field is a set of optional agreement fields that a patch can reset.
type Field uint8

const (
	FieldRequirements Field = 1 << iota
	FieldDeliveryDate
	FieldPaymentDate
	FieldNotes
	FieldAssignedTo
	FieldAIInsights
)

var nullable = map[string]Field{
	"requirements": FieldRequirements,
	"deliveryDate": FieldDeliveryDate,
	"paymentDate":  FieldPaymentDate,
	"notes":        FieldNotes,
	"assignedTo":   FieldAssignedTo,
	"aiInsights":   FieldAIInsights,
}

// Patch carries a partial update. A nil field means "not supplied" and keeps the
// current value. Optional fields named in Unset are cleared; in JSON that is an
// explicit null. Id and timestamps are not patchable.
type Patch struct {
	Title        *string          `json:"title,omitempty"`
	Sponsor      *Sponsor         `json:"sponsor,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Currency     *string          `json:"currency,omitempty"`
	ContentType  *[]string        `json:"contentType,omitempty"`
	Requirements *string          `json:"requirements,omitempty"`
	StartDate    *time.Time       `json:"startDate,omitempty"`
	DeliveryDate *time.Time       `json:"deliveryDate,omitempty"`
	PaymentDate  *time.Time       `json:"paymentDate,omitempty"`
	Duration     *Duration        `json:"duration,omitempty"`
	Priority     *Priority        `json:"priority,omitempty"`
	Status       *Status          `json:"status,omitempty"`
	Tags         *[]string        `json:"tags,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
	Attachments  *Attachments     `json:"attachments,omitempty"`
	AssignedTo   *string          `json:"assignedTo,omitempty"`
	AIInsights   *Insights        `json:"aiInsights,omitempty"`
	Unset        Field            `json:"-"`
}

func (p *Patch) UnmarshalJSON(data []byte) error {
	type plain Patch

	var res plain
	if err := json.Unmarshal(data, &res); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, field := range nullable {
		if val, ok := raw[key]; ok && bytes.Equal(bytes.TrimSpace(val), []byte("null")) {
			res.Unset |= field
		}
	}

	*p = Patch(res)

	return nil
}

func (p Patch) Empty() bool {
	return p == Patch{}
}

// Apply returns a copy of a with every supplied field replaced and every unset
// field cleared. UpdatedAt is left to the caller.
func (p Patch) Apply(a Agreement) Agreement {
	res := a.Clone()

	if p.Title != nil {
		res.Title = *p.Title
	}
	if p.Sponsor != nil {
		res.Sponsor = *p.Sponsor
	}
	if p.Description != nil {
		res.Description = *p.Description
	}
	if p.Amount != nil {
		res.Amount = *p.Amount
	}
	if p.Currency != nil {
		res.Currency = *p.Currency
	}
	if p.ContentType != nil {
		res.ContentType = *p.ContentType
	}
	if p.Requirements != nil {
		res.Requirements = p.Requirements
	}
	if p.StartDate != nil {
		res.StartDate = *p.StartDate
	}
	if p.DeliveryDate != nil {
		res.DeliveryDate = p.DeliveryDate
	}
	if p.PaymentDate != nil {
		res.PaymentDate = p.PaymentDate
	}
	if p.Duration != nil {
		res.Duration = *p.Duration
	}
	if p.Priority != nil {
		res.Priority = *p.Priority
	}
	if p.Status != nil {
		res.Status = *p.Status
	}
	if p.Tags != nil {
		res.Tags = *p.Tags
	}
	if p.Notes != nil {
		res.Notes = p.Notes
	}
	if p.Attachments != nil {
		res.Attachments = *p.Attachments
	}
	if p.AssignedTo != nil {
		res.AssignedTo = p.AssignedTo
	}
	if p.AIInsights != nil {
		res.AIInsights = p.AIInsights
	}

	if p.Unset&FieldRequirements != 0 {
		res.Requirements = nil
	}
	if p.Unset&FieldDeliveryDate != 0 {
		res.DeliveryDate = nil
	}
	if p.Unset&FieldPaymentDate != 0 {
		res.PaymentDate = nil
	}
	if p.Unset&FieldNotes != 0 {
		res.Notes = nil
	}
	if p.Unset&FieldAssignedTo != 0 {
		res.AssignedTo = nil
	}
	if p.Unset&FieldAIInsights != 0 {
		res.AIInsights = nil
	}

	// detach from the caller's pointers
	return res.Clone()
}
