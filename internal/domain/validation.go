package domain

import (
	"fmt"
	"time"
)

const (
	MinPartySize = 1
	MaxPartySize = 20

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ValidateCreate checks a create request field by field in a fixed order:
// date, time, partySize, tableType, amount. The first violated field wins,
// and no network round trip happens for input the client can reject itself.
func ValidateCreate(req CreateRequest, now time.Time) error {
	if err := validateDate(req.Date, now); err != nil {
		return err
	}
	if err := validateTime(req.Time); err != nil {
		return err
	}
	if err := validatePartySize(req.PartySize); err != nil {
		return err
	}
	if _, ok := ParseTableType(string(req.TableType)); !ok {
		return &ValidationError{Field: "tableType", Reason: "must be one of indoor, window, outdoor"}
	}
	if req.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return nil
}

// ValidateUpdate checks only the fields present in a partial edit, using the
// same per-field rules as create.
func ValidateUpdate(fields UpdateFields, now time.Time) error {
	if fields.Date != nil {
		if err := validateDate(*fields.Date, now); err != nil {
			return err
		}
	}
	if fields.Time != nil {
		if err := validateTime(*fields.Time); err != nil {
			return err
		}
	}
	if fields.PartySize != nil {
		if err := validatePartySize(*fields.PartySize); err != nil {
			return err
		}
	}
	if fields.TableType != nil {
		if _, ok := ParseTableType(string(*fields.TableType)); !ok {
			return &ValidationError{Field: "tableType", Reason: "must be one of indoor, window, outdoor"}
		}
	}
	return nil
}

func validateDate(s string, now time.Time) error {
	if s == "" {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return &ValidationError{Field: "date", Reason: "must be a calendar date in YYYY-MM-DD form"}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return &ValidationError{Field: "date", Reason: "must be today or later"}
	}
	return nil
}

func validateTime(s string) error {
	if s == "" {
		return &ValidationError{Field: "time", Reason: "is required"}
	}
	if _, err := time.Parse(TimeLayout, s); err != nil {
		return &ValidationError{Field: "time", Reason: "must be a wall-clock time in HH:MM form"}
	}
	return nil
}

func validatePartySize(n int) error {
	if n < MinPartySize || n > MaxPartySize {
		return &ValidationError{
			Field:  "partySize",
			Reason: fmt.Sprintf("must be between %d and %d", MinPartySize, MaxPartySize),
		}
	}
	return nil
}
