package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation rules live here and nowhere else: entity constructors and the
// service layer both call these functions, so a rule is never duplicated.

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^\S+$`)
)

const (
	passwordMinLen = 8
	passwordMaxLen = 12
)

// ValidateEmail trims the input and checks it against the email grammar.
// The trimmed email is returned on success.
func ValidateEmail(email string) (string, error) {
	if email == "" {
		return "", NewValidationError("Email ID cannot be empty")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", NewValidationError("Email ID cannot be blank")
	}
	if !emailPattern.MatchString(trimmed) {
		return "", NewValidationError("Email ID format is invalid")
	}
	return trimmed, nil
}

// ValidatePassword enforces the combined strength rule: 8-12 characters with
// at least one uppercase, one lowercase, and one non-alphanumeric character.
// When the combined rule fails, sub-conditions are re-checked in a fixed
// order (length, uppercase, lowercase, special) and the first failure wins.
func ValidatePassword(password string) error {
	if password == "" {
		return NewValidationError("Password cannot be empty")
	}

	length := len([]rune(password))
	lengthOK := length >= passwordMinLen && length <= passwordMaxLen
	hasUpper := strings.ContainsFunc(password, unicode.IsUpper)
	hasLower := strings.ContainsFunc(password, unicode.IsLower)
	hasSpecial := strings.ContainsFunc(password, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	if lengthOK && hasUpper && hasLower && hasSpecial {
		return nil
	}
	if !lengthOK {
		return NewValidationError("Password must be between 8 and 12 characters")
	}
	if !hasUpper {
		return NewValidationError("Password must contain at least one uppercase letter")
	}
	if !hasLower {
		return NewValidationError("Password must contain at least one lowercase letter")
	}
	return NewValidationError("Password must contain at least one special character")
}

// ValidateUsername trims the input and rejects blank or whitespace-containing
// names. The trimmed username is returned on success.
func ValidateUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", NewValidationError("Username cannot be empty")
	}
	if !usernamePattern.MatchString(trimmed) {
		return "", NewValidationError("Username cannot contain whitespace")
	}
	return trimmed, nil
}

// ValidateRole restricts the role to the two-value closed enumeration.
func ValidateRole(role Role) error {
	if role == "" {
		return NewValidationError("Role name cannot be empty")
	}
	if role != RoleUser && role != RoleAdmin {
		return NewValidationError("Role name cannot be other than USER & ADMIN")
	}
	return nil
}

// ValidateSweetName trims the input and rejects blank names.
func ValidateSweetName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", NewValidationError("Sweet name cannot be empty")
	}
	return trimmed, nil
}

// ValidateCategoryID rejects a missing category reference. The pointer keeps
// "absent" distinct from a zero value in decoded payloads.
func ValidateCategoryID(categoryID *int64) (int64, error) {
	if categoryID == nil {
		return 0, NewValidationError("Category ID is required")
	}
	return *categoryID, nil
}

// ValidatePrice rejects a missing or non-positive price.
func ValidatePrice(price *float64) (float64, error) {
	if price == nil {
		return 0, NewValidationError("Price is required")
	}
	if *price <= 0 {
		return 0, NewValidationError("Price must be greater than zero")
	}
	return *price, nil
}

// ValidateQuantity rejects a missing or negative stock quantity.
func ValidateQuantity(quantity *int) (int, error) {
	if quantity == nil {
		return 0, NewValidationError("Quantity is required")
	}
	if *quantity < 0 {
		return 0, NewValidationError("Quantity cannot be negative")
	}
	return *quantity, nil
}

// ValidatePurchaseQuantity rejects a missing or non-positive purchase amount.
func ValidatePurchaseQuantity(quantity *int) (int, error) {
	if quantity == nil {
		return 0, NewValidationError("Purchase quantity is required")
	}
	if *quantity <= 0 {
		return 0, NewValidationError("Purchase quantity must be greater than zero")
	}
	return *quantity, nil
}

// ValidateRestockQuantity rejects a missing or non-positive restock amount.
func ValidateRestockQuantity(quantity *int) (int, error) {
	if quantity == nil {
		return 0, NewValidationError("Restock quantity is required")
	}
	if *quantity <= 0 {
		return 0, NewValidationError("Restock quantity must be greater than zero")
	}
	return *quantity, nil
}
