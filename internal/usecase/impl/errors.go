package impl

import (
	"net/http"
	"reflect"
	"strings"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/sequence"
	"backoffice/internal/errors"

	"github.com/go-playground/validator/v10"
)

// repositoryErrors maps persistence sentinels onto the errors shown to callers.
var repositoryErrors = []struct {
	err    error
	appErr *domainerrors.BaseError
}{
	{repository.ErrCustomerNotFound, domainerrors.ErrCustomerNotFound},
	{repository.ErrBillerNotFound, domainerrors.ErrBillerNotFound},
	{repository.ErrContactNotFound, domainerrors.ErrContactNotFound},
	{repository.ErrItemNotFound, domainerrors.ErrItemNotFound},
	{repository.ErrItemGroupNotFound, domainerrors.ErrItemGroupNotFound},
	{repository.ErrSupplierNotFound, domainerrors.ErrSupplierNotFound},
	{repository.ErrPromoNotFound, domainerrors.ErrPromoNotFound},
	{repository.ErrVoucherNotFound, domainerrors.ErrVoucherNotFound},
	{repository.ErrRewardRuleNotFound, domainerrors.ErrRewardRuleNotFound},
	{repository.ErrLedgerEntryNotFound, domainerrors.ErrLedgerEntryNotFound},
	{repository.ErrConversionRateNotFound, domainerrors.ErrNotFound},
	{repository.ErrDuplicateCustomer, domainerrors.ErrConflict},
	{repository.ErrDuplicateBiller, domainerrors.ErrConflict},
	{repository.ErrDuplicateItem, domainerrors.ErrConflict},
	{repository.ErrDuplicateItemGroup, domainerrors.ErrConflict},
	{repository.ErrDuplicateSupplier, domainerrors.ErrConflict},
	{repository.ErrDuplicateVoucher, domainerrors.ErrConflict},
	{repository.ErrDuplicateLedgerEntry, domainerrors.ErrConflict},
	{sequence.ErrExhausted, domainerrors.ErrSequenceExhausted},
	{sequence.ErrInvalidGroupCode, domainerrors.ErrInvalidGroupCode},
}

// translate turns repository errors into application errors. Anything else,
// store failures included, passes through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	for _, m := range repositoryErrors {
		if errors.Is(err, m.err) {
			return m.appErr
		}
	}

	return err
}

// isNotFound reports whether err is a lookup miss.
func isNotFound(err error) bool {
	var appErr domainerrors.AppError

	return errors.As(translate(err), &appErr) && appErr.HTTPCode() == http.StatusNotFound
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	return v
}

// validateInput checks the validate tags of input and reports the first
// failure as a validation error.
func validateInput(input any) error {
	if input == nil || reflect.ValueOf(input).IsNil() {
		return domainerrors.ErrValidationFailed.WithDetails("missing request body")
	}

	if err := validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(describeValidation(err))
	}

	return nil
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be an email address")
		case "oneof":
			msgs = append(msgs, fe.Field()+" must be one of "+fe.Param())
		case "gt", "gte":
			msgs = append(msgs, fe.Field()+" must be "+comparison(fe.Tag())+" "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}

	return strings.Join(msgs, "; ")
}

func comparison(tag string) string {
	if tag == "gt" {
		return "greater than"
	}

	return "at least"
}

// invalid builds a validation error with details.
func invalid(details string) error {
	return domainerrors.ErrValidationFailed.WithDetails(details)
}

// parseDate reads an optional calendar date field.
func parseDate(field, value string) (entity.Date, error) {
	d, err := entity.ParseDate(value)
	if err != nil {
		return "", invalid(field + " must be a date (YYYY-MM-DD)")
	}

	return d, nil
}
