package service

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	util "github.com/eventkampus/api/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return util.NewValidationError("invalid email address", map[string]any{"field": "email"})
	}
	return nil
}

// validatePassword enforces the minimum-strength policy: length >= 8 with
// at least one upper, lower, and digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return util.NewValidationError("password must be at least 8 characters", map[string]any{"field": "password"})
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return util.NewValidationError("password must contain upper, lower, and digit characters", map[string]any{"field": "password"})
	}
	return nil
}

func validateDisplayName(name string) error {
	if l := len(strings.TrimSpace(name)); l < 3 || l > 100 {
		return util.NewValidationError("display name must be 3-100 characters", map[string]any{"field": "display_name"})
	}
	return nil
}

func validateEventInput(name, description, location string, startTime, endTime time.Time) error {
	if l := len(strings.TrimSpace(name)); l < 3 || l > 200 {
		return util.NewValidationError("event name must be 3-200 characters", map[string]any{"field": "name"})
	}
	if len(strings.TrimSpace(description)) < 10 {
		return util.NewValidationError("description must be at least 10 characters", map[string]any{"field": "description"})
	}
	if strings.TrimSpace(location) == "" {
		return util.NewValidationError("location is required", map[string]any{"field": "location"})
	}
	if startTime.IsZero() || endTime.IsZero() {
		return util.NewValidationError("start_time and end_time are required", nil)
	}
	if !endTime.After(startTime) {
		return util.NewValidationError("end_time must be after start_time", map[string]any{"field": "end_time"})
	}
	return nil
}

func validateTicketTypeInput(name string, price int64, quota int) error {
	if l := len(strings.TrimSpace(name)); l < 3 || l > 100 {
		return util.NewValidationError("ticket name must be 3-100 characters", map[string]any{"field": "name"})
	}
	if price < 0 {
		return util.NewValidationError("price must be zero or positive", map[string]any{"field": "price"})
	}
	if quota < 1 {
		return util.NewValidationError("quota must be at least 1", map[string]any{"field": "quota"})
	}
	return nil
}
