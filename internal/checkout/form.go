package checkout

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"hridhayam-client/internal/utils"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

type Address struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Format flattens the address the way orders store it: "street, city, state - zip".
func (a Address) Format() string {
	return fmt.Sprintf("%s, %s, %s - %s",
		strings.TrimSpace(a.Street),
		strings.TrimSpace(a.City),
		strings.TrimSpace(a.State),
		strings.TrimSpace(a.Zip),
	)
}

// Form is the shipping and contact input collected at checkout.
type Form struct {
	Phone   string
	Address Address
}

// NormalizePhone keeps the first 10 digits of whatever was typed.
func NormalizePhone(s string) string {
	return utils.DigitsOnly(s, 10)
}

// Validate reports every problem with the form, wrapped in ErrInvalidForm.
func (f Form) Validate() error {
	var errs []error
	if !phonePattern.MatchString(f.Phone) {
		errs = append(errs, ErrInvalidPhone)
	}
	if blank(f.Address.Street) {
		errs = append(errs, ErrStreetRequired)
	}
	if blank(f.Address.City) {
		errs = append(errs, ErrCityRequired)
	}
	if blank(f.Address.State) {
		errs = append(errs, ErrStateRequired)
	}
	if blank(f.Address.Zip) {
		errs = append(errs, ErrZipRequired)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidForm, errors.Join(errs...))
}

func (f Form) Valid() bool {
	return f.Validate() == nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
