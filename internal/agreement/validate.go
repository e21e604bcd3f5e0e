package agreement

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidField = errors.New("invalid field")

// Validate checks a draft before it reaches the store. The store itself accepts
// whatever it is given.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidField)
	}

	if err := d.Sponsor.Validate(); err != nil {
		return err
	}

	if d.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidField)
	}

	if err := validateTags("contentType", d.ContentType); err != nil {
		return err
	}

	if d.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidField)
	}

	if !d.Duration.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, d.Duration)
	}

	if !d.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, d.Priority)
	}

	if !d.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, d.Status)
	}

	return validateInsights(d.AIInsights)
}

func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidField)
	}

	if p.Sponsor != nil {
		if err := p.Sponsor.Validate(); err != nil {
			return err
		}
	}

	if p.Amount != nil && p.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidField)
	}

	if p.ContentType != nil {
		if err := validateTags("contentType", *p.ContentType); err != nil {
			return err
		}
	}

	if p.StartDate != nil && p.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidField)
	}

	if p.Duration != nil && !p.Duration.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, *p.Duration)
	}

	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *p.Priority)
	}

	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *p.Status)
	}

	return validateInsights(p.AIInsights)
}

func (s Sponsor) Validate() error {
	for name, val := range map[string]string{
		"sponsor.name":    s.Name,
		"sponsor.contact": s.Contact,
		"sponsor.email":   s.Email,
		"sponsor.company": s.Company,
	} {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidField, name)
		}
	}

	return nil
}

func validateTags(field string, list []string) error {
	for _, tag := range list {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: %s contains an empty value", ErrInvalidField, field)
		}
	}

	return nil
}

func validateInsights(ins *Insights) error {
	if ins == nil {
		return nil
	}

	if ins.ConversionProbability < 0 || ins.ConversionProbability > 100 {
		return fmt.Errorf("%w: conversionProbability must be within 0..100", ErrInvalidField)
	}

	return nil
}
