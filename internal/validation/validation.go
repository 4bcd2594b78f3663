// Package validation parses and checks user supplied values before they reach
// the store. Every error wraps a validation sentinel from auctionerrors.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"commerce/internal/auctionerrors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	MaxTitleLength        = 100
	MaxCategoryNameLength = 64
	MaxUsernameLength     = 150
	MaxImageURLLength     = 500
	MaxCommentLength      = 2000
	MaxDescriptionLength  = 10000
	MinPasswordLength     = 8
)

// MaxAmount is the first value that no longer fits decimal(10,2)
var MaxAmount = decimal.New(1, 8)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// ParseAmount parses a currency amount such as "12.50"
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", auctionerrors.ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", auctionerrors.ErrInvalidAmount, raw)
	}
	if err := CheckAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// CheckAmount verifies that amount is positive, has at most two decimal
// places and fits the storage precision. Trailing zeros count as places, so
// "10.000" is rejected.
func CheckAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return fmt.Errorf("%w: amount must be positive", auctionerrors.ErrInvalidAmount)
	case amount.Exponent() < -2:
		return fmt.Errorf("%w: amount must have at most two decimal places", auctionerrors.ErrInvalidAmount)
	case amount.GreaterThanOrEqual(MaxAmount):
		return fmt.Errorf("%w: amount must be below %s", auctionerrors.ErrInvalidAmount, MaxAmount.String())
	}
	return nil
}

// Title trims and checks a listing title
func Title(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", auctionerrors.ErrInvalidListing)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", fmt.Errorf("%w: title must be at most %d characters", auctionerrors.ErrInvalidListing, MaxTitleLength)
	}
	return title, nil
}

// Description trims and checks a listing description
func Description(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if description == "" {
		return "", fmt.Errorf("%w: description is required", auctionerrors.ErrInvalidListing)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return "", fmt.Errorf("%w: description must be at most %d characters", auctionerrors.ErrInvalidListing, MaxDescriptionLength)
	}
	return description, nil
}

// ImageURL checks an optional http(s) image reference. Empty is allowed.
func ImageURL(raw string) (string, error) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return "", nil
	}
	if len(ref) > MaxImageURLLength {
		return "", fmt.Errorf("%w: image url must be at most %d characters", auctionerrors.ErrInvalidListing, MaxImageURLLength)
	}
	if err := validate.Var(ref, "url"); err != nil {
		return "", fmt.Errorf("%w: image url is not a valid url", auctionerrors.ErrInvalidListing)
	}
	if u, err := url.Parse(ref); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: image url must use http or https", auctionerrors.ErrInvalidListing)
	}
	return ref, nil
}

// CommentText trims and checks comment content
func CommentText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%w: comment is empty", auctionerrors.ErrInvalidComment)
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return "", fmt.Errorf("%w: comment must be at most %d characters", auctionerrors.ErrInvalidComment, MaxCommentLength)
	}
	return text, nil
}

// CategoryName trims and checks a category name
func CategoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", auctionerrors.ErrInvalidCategory)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", auctionerrors.ErrInvalidCategory, MaxCategoryNameLength)
	}
	return name, nil
}

// Username checks a username: letters, digits and @.+-_ only
func Username(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if err := validate.Var(username, fmt.Sprintf("required,max=%d,username", MaxUsernameLength)); err != nil {
		return "", fmt.Errorf("%w: username must be 1-%d letters, digits or @.+-_", auctionerrors.ErrInvalidAccount, MaxUsernameLength)
	}
	return username, nil
}

// Email checks an optional email address
func Email(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", nil
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", fmt.Errorf("%w: email address is not valid", auctionerrors.ErrInvalidAccount)
	}
	return email, nil
}

// Password checks that both entries match and are long enough
func Password(password, confirmation string) error {
	if password != confirmation {
		return fmt.Errorf("%w: passwords must match", auctionerrors.ErrInvalidAccount)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", auctionerrors.ErrInvalidAccount, MinPasswordLength)
	}
	return nil
}
