package validation

import (
	"fmt"
	"strconv"
)

const (
	MinPage    = 1
	MaxPerPage = 100

	// Saudi national IDs are ten digits starting with 1 (citizen) or 2 (resident).
	nationalIDLength = 10
)

func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %.2f", amount)
	}
	return nil
}

func ValidatePage(page int) error {
	if page < MinPage {
		return fmt.Errorf("page must be at least %d, got %d", MinPage, page)
	}
	return nil
}

func ValidatePerPage(perPage int) error {
	if perPage < 1 || perPage > MaxPerPage {
		return fmt.Errorf("per-page must be between 1 and %d, got %d", MaxPerPage, perPage)
	}
	return nil
}

func ValidateNationalID(id string) error {
	if len(id) != nationalIDLength {
		return fmt.Errorf("national ID must be %d digits", nationalIDLength)
	}
	if _, err := strconv.Atoi(id); err != nil {
		return fmt.Errorf("national ID must contain only digits")
	}
	if id[0] != '1' && id[0] != '2' {
		return fmt.Errorf("national ID must start with 1 or 2")
	}
	return nil
}
