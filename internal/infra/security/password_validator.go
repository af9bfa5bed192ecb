package security

import (
	"fmt"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

const (
	minPasswordLength    = 6
	strictPasswordLength = 8
	minPasswordScore     = 2
)

// PasswordRule validates a password according to a specific policy rule.
type PasswordRule interface {
	Validate(password string) error
}

// PasswordRuleFunc adapts a function to be used as a PasswordRule.
type PasswordRuleFunc func(password string) error

// Validate executes the underlying rule function.
func (f PasswordRuleFunc) Validate(password string) error {
	return f(password)
}

// PasswordValidator applies a sequence of password rules.
type PasswordValidator struct {
	rules []PasswordRule
}

// NewPasswordValidator constructs a validator with the provided rules.
func NewPasswordValidator(rules ...PasswordRule) *PasswordValidator {
	copied := make([]PasswordRule, len(rules))
	copy(copied, rules)
	return &PasswordValidator{rules: copied}
}

// DefaultPasswordValidator enforces only a minimum length. Existing
// clients register with short dictionary passwords, so the strength floor
// is opt-in via StrictPasswordValidator.
func DefaultPasswordValidator() *PasswordValidator {
	return NewPasswordValidator(
		MinLengthRule(minPasswordLength),
	)
}

// StrictPasswordValidator adds a zxcvbn strength floor on top of the
// length rule, feeding the account's own identifiers in as penalty inputs.
func StrictPasswordValidator() *PasswordValidator {
	return NewPasswordValidator(
		MinLengthRule(strictPasswordLength),
		StrengthRule(minPasswordScore),
	)
}

// Validate executes all rules and returns the first encountered violation.
func (v *PasswordValidator) Validate(password string, userInputs ...string) error {
	if v == nil {
		return fmt.Errorf("password validator not configured")
	}
	for _, rule := range v.rules {
		if contextual, ok := rule.(contextualRule); ok {
			if err := contextual.ValidateWithInputs(password, userInputs); err != nil {
				return err
			}
			continue
		}
		if err := rule.Validate(password); err != nil {
			return err
		}
	}
	return nil
}

type contextualRule interface {
	ValidateWithInputs(password string, userInputs []string) error
}

// MinLengthRule rejects passwords shorter than n characters.
func MinLengthRule(n int) PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		if len(password) < n {
			return fmt.Errorf("password must be at least %d characters", n)
		}
		return nil
	})
}

type strengthRule struct {
	minScore int
}

// StrengthRule rejects passwords whose zxcvbn score falls below minScore.
func StrengthRule(minScore int) PasswordRule {
	return strengthRule{minScore: minScore}
}

func (r strengthRule) Validate(password string) error {
	return r.ValidateWithInputs(password, nil)
}

func (r strengthRule) ValidateWithInputs(password string, userInputs []string) error {
	result := zxcvbn.PasswordStrength(password, userInputs)
	if result.Score < r.minScore {
		return fmt.Errorf("password is too easy to guess")
	}
	return nil
}
