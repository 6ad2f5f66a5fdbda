package apperror

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewValidationError_Message(t *testing.T) {
	err := NewValidationError("Customer", "name", "must not be empty")

	assert.Equal(t, "Customer name must not be empty", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, []FieldError{{Field: "name", Message: "must not be empty"}}, err.Errors)
}

func TestKindOf_WrappedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"not found", NewNotFoundError("Receipt"), KindNotFound},
		{"wrapped not found", errors.Wrap(NewNotFoundError("Receipt"), "load"), KindNotFound},
		{"invalid argument", NewInvalidArgumentError("bad"), KindInvalidArgument},
		{"domain", NewDomainError("closed"), KindDomain},
		{"null model", NewNullModelError("Product"), KindValidation},
		{"foreign", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("Product")))
	assert.True(t, IsValidation(NewValidationError("Product", "price", "must not be negative")))
	assert.True(t, IsInvalidArgument(NewInvalidArgumentError("Quantity must be greater than zero")))
	assert.True(t, IsDomain(NewDomainError("Receipt is already checked out")))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestGetAppError(t *testing.T) {
	notFound := NewNotFoundError("Customer")
	assert.Same(t, notFound, GetAppError(errors.Wrap(notFound, "get customer")))

	internal := GetAppError(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, internal.Code)
	assert.Equal(t, "connection reset", internal.Message)
	assert.Equal(t, KindInternal, internal.Kind)
}

func TestNewNotFoundError_Message(t *testing.T) {
	assert.Equal(t, "Receipt detail not found", NewNotFoundError("Receipt detail").Error())
	assert.Equal(t, "Customer cannot be null", NewNullModelError("Customer").Error())
	assert.Equal(t, "not_found", KindNotFound.String())
}
