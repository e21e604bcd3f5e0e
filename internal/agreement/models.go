package agreement

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus   = errors.New("invalid agreement status")
	ErrInvalidPriority = errors.New("invalid agreement priority")
	ErrInvalidDuration = errors.New("invalid agreement duration")
)

type Status string

const (
	StatusProspects       Status = "prospectos"
	StatusNegotiation     Status = "en-negociacion"
	StatusContractSent    Status = "contrato-enviado"
	StatusContractSigned  Status = "contrato-firmado"
	StatusInProduction    Status = "en-produccion"
	StatusVideoPublished  Status = "video-publicado"
	StatusPaymentPending  Status = "pago-pendiente"
	StatusPaymentReceived Status = "pago-recibido"
	StatusCompleted       Status = "completado"
)

// pipeline is the suggested order of the statuses. Nothing enforces it.
var pipeline = []Status{
	StatusProspects,
	StatusNegotiation,
	StatusContractSent,
	StatusContractSigned,
	StatusInProduction,
	StatusVideoPublished,
	StatusPaymentPending,
	StatusPaymentReceived,
	StatusCompleted,
}

// Pipeline returns all statuses in board order.
func Pipeline() []Status {
	return slices.Clone(pipeline)
}

func (s Status) Valid() bool {
	return slices.Contains(pipeline, s)
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}

	return s, nil
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}

	return p, nil
}

type Duration string

const (
	DurationOnce      Duration = "once"
	DurationMonthly   Duration = "monthly"
	DurationQuarterly Duration = "quarterly"
	DurationYearly    Duration = "yearly"
)

func (d Duration) Valid() bool {
	switch d {
	case DurationOnce, DurationMonthly, DurationQuarterly, DurationYearly:
		return true
	default:
		return false
	}
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

type Sponsor struct {
	Name    string  `json:"name" yaml:"name"`
	Contact string  `json:"contact" yaml:"contact"`
	Email   string  `json:"email" yaml:"email"`
	Phone   *string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website *string `json:"website,omitempty" yaml:"website,omitempty"`
	Company string  `json:"company" yaml:"company"`
}

// Attachments holds opaque handles, never file contents.
type Attachments struct {
	Contracts      []string `json:"contract,omitempty" yaml:"contract,omitempty"`
	BrandMaterials []string `json:"brandMaterials,omitempty" yaml:"brandMaterials,omitempty"`
	References     []string `json:"references,omitempty" yaml:"references,omitempty"`
}

type Insights struct {
	ConversionProbability int             `json:"conversionProbability" yaml:"conversionProbability"`
	RecommendedPrice      decimal.Decimal `json:"recommendedPrice" yaml:"recommendedPrice"`
	SentimentAnalysis     Sentiment       `json:"sentimentAnalysis" yaml:"sentimentAnalysis"`
	SuggestedActions      []string        `json:"suggestedActions" yaml:"suggestedActions"`
}

type Agreement struct {
	ID           string          `json:"id" yaml:"id"`
	Title        string          `json:"title" yaml:"title"`
	Sponsor      Sponsor         `json:"sponsor" yaml:"sponsor"`
	Description  string          `json:"description" yaml:"description"`
	Amount       decimal.Decimal `json:"amount" yaml:"amount"`
	Currency     string          `json:"currency" yaml:"currency"`
	ContentType  []string        `json:"contentType" yaml:"contentType"`
	Requirements *string         `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	StartDate    time.Time       `json:"startDate" yaml:"startDate"`
	DeliveryDate *time.Time      `json:"deliveryDate,omitempty" yaml:"deliveryDate,omitempty"`
	PaymentDate  *time.Time      `json:"paymentDate,omitempty" yaml:"paymentDate,omitempty"`
	Duration     Duration        `json:"duration" yaml:"duration"`
	Priority     Priority        `json:"priority" yaml:"priority"`
	Status       Status          `json:"status" yaml:"status"`
	Tags         []string        `json:"tags" yaml:"tags"`
	Notes        *string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	Attachments  Attachments     `json:"attachments" yaml:"attachments"`
	CreatedAt    time.Time       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt" yaml:"updatedAt"`
	AssignedTo   *string         `json:"assignedTo,omitempty" yaml:"assignedTo,omitempty"`
	AIInsights   *Insights       `json:"aiInsights,omitempty" yaml:"aiInsights,omitempty"`
}

// Draft is an agreement without identity and timestamps, as supplied to create.
type Draft struct {
	Title        string          `json:"title"`
	Sponsor      Sponsor         `json:"sponsor"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ContentType  []string        `json:"contentType"`
	Requirements *string         `json:"requirements,omitempty"`
	StartDate    time.Time       `json:"startDate"`
	DeliveryDate *time.Time      `json:"deliveryDate,omitempty"`
	PaymentDate  *time.Time      `json:"paymentDate,omitempty"`
	Duration     Duration        `json:"duration"`
	Priority     Priority        `json:"priority"`
	Status       Status          `json:"status"`
	Tags         []string        `json:"tags"`
	Notes        *string         `json:"notes,omitempty"`
	Attachments  Attachments     `json:"attachments"`
	AssignedTo   *string         `json:"assignedTo,omitempty"`
	AIInsights   *Insights       `json:"aiInsights,omitempty"`
}

// Build turns the draft into an agreement with the given identity and creation time.
func (d Draft) Build(id string, now time.Time) Agreement {
	return Agreement{
		ID:           id,
		Title:        d.Title,
		Sponsor:      d.Sponsor,
		Description:  d.Description,
		Amount:       d.Amount,
		Currency:     d.Currency,
		ContentType:  d.ContentType,
		Requirements: d.Requirements,
		StartDate:    d.StartDate,
		DeliveryDate: d.DeliveryDate,
		PaymentDate:  d.PaymentDate,
		Duration:     d.Duration,
		Priority:     d.Priority,
		Status:       d.Status,
		Tags:         d.Tags,
		Notes:        d.Notes,
		Attachments:  d.Attachments,
		CreatedAt:    now,
		UpdatedAt:    now,
		AssignedTo:   d.AssignedTo,
		AIInsights:   d.AIInsights,
	}
}

// Clone returns a deep copy so callers never share slices or pointers with the store.
func (a Agreement) Clone() Agreement {
	c := a
	c.Sponsor.Phone = clonePtr(a.Sponsor.Phone)
	c.Sponsor.Website = clonePtr(a.Sponsor.Website)
	c.ContentType = slices.Clone(a.ContentType)
	c.Requirements = clonePtr(a.Requirements)
	c.DeliveryDate = clonePtr(a.DeliveryDate)
	c.PaymentDate = clonePtr(a.PaymentDate)
	c.Tags = slices.Clone(a.Tags)
	c.Notes = clonePtr(a.Notes)
	c.Attachments = Attachments{
		Contracts:      slices.Clone(a.Attachments.Contracts),
		BrandMaterials: slices.Clone(a.Attachments.BrandMaterials),
		References:     slices.Clone(a.Attachments.References),
	}
	c.AssignedTo = clonePtr(a.AssignedTo)
	if a.AIInsights != nil {
		ins := *a.AIInsights
		ins.SuggestedActions = slices.Clone(a.AIInsights.SuggestedActions)
		c.AIInsights = &ins
	}

	return c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}

	c := *v
	return &c
}
