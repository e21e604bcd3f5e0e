package dashboard

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
)

// Metrics is a snapshot supplied from outside. Nothing in this service computes it.
type Metrics struct {
	TotalAgreements      int             `json:"totalAgreements" yaml:"totalAgreements"`
	ActiveAgreements     int             `json:"activeAgreements" yaml:"activeAgreements"`
	MonthlyRevenue       decimal.Decimal `json:"monthlyRevenue" yaml:"monthlyRevenue"`
	ConversionRate       float64         `json:"conversionRate" yaml:"conversionRate"`
	AverageDealSize      decimal.Decimal `json:"averageDealSize" yaml:"averageDealSize"`
	TopPerformingContent []string        `json:"topPerformingContent" yaml:"topPerformingContent"`
	RevenueForecast      []ForecastPoint `json:"revenueForecast" yaml:"revenueForecast"`
}

type ForecastPoint struct {
	Month     string           `json:"month" yaml:"month"`
	Predicted decimal.Decimal  `json:"predicted" yaml:"predicted"`
	Actual    *decimal.Decimal `json:"actual,omitempty" yaml:"actual,omitempty"`
}

func (m Metrics) Clone() Metrics {
	c := m
	c.TopPerformingContent = slices.Clone(m.TopPerformingContent)
	c.RevenueForecast = slices.Clone(m.RevenueForecast)

	return c
}

type InsightType string

const (
	InsightTypePrediction     InsightType = "prediction"
	InsightTypeRecommendation InsightType = "recommendation"
	InsightTypeAlert          InsightType = "alert"
)

// Insight is advisory only and is never consumed by any logic.
type Insight struct {
	ID          string             `json:"id" yaml:"id"`
	Type        InsightType        `json:"type" yaml:"type"`
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Confidence  int                `json:"confidence" yaml:"confidence"`
	Actionable  bool               `json:"actionable" yaml:"actionable"`
	Priority    agreement.Priority `json:"priority" yaml:"priority"`
	CreatedAt   time.Time          `json:"createdAt" yaml:"createdAt"`
}
