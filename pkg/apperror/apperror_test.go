package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trinhdvt/storefront/pkg/apperror"
)

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind apperror.Kind
		want int
	}{
		{apperror.KindInternal, http.StatusInternalServerError},
		{apperror.KindInvalid, http.StatusUnprocessableEntity},
		{apperror.KindNotFound, http.StatusNotFound},
		{apperror.KindConflict, http.StatusConflict},
		{apperror.KindNoResults, http.StatusInternalServerError},
		{apperror.KindPersistence, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestErrorWrapParent(t *testing.T) {
	base := apperror.NewNotFound("PRODUCT_NOT_FOUND", "Product not found")

	t.Run("Should keep code and kind after wrapping", func(t *testing.T) {
		wrapped := base.WrapParent(errors.New("no rows in result set"))

		assert.Equal(t, "PRODUCT_NOT_FOUND", wrapped.Code())
		assert.Equal(t, apperror.KindNotFound, wrapped.Kind())
		assert.Contains(t, wrapped.Error(), "no rows in result set")
	})

	t.Run("Should match predefined value with errors.Is", func(t *testing.T) {
		wrapped := base.WrapParent(errors.New("boom"))
		err := fmt.Errorf("repo get product: %w", wrapped)

		assert.ErrorIs(t, err, base)
	})

	t.Run("Should expose parent with errors.As", func(t *testing.T) {
		parent := errors.New("connection refused")
		err := fmt.Errorf("handler: %w", base.WrapParent(parent))

		var appErr apperror.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, parent, appErr.Parent())
	})

	t.Run("Should ignore nil parent", func(t *testing.T) {
		assert.Equal(t, base, base.WrapParent(nil))
	})
}

func TestErrorIsDistinguishesCodes(t *testing.T) {
	userNotFound := apperror.NewNotFound("USER_NOT_FOUND", "User not found")
	productNotFound := apperror.NewNotFound("PRODUCT_NOT_FOUND", "Product not found")

	assert.False(t, errors.Is(userNotFound, productNotFound))
	assert.False(t, errors.Is(userNotFound, errors.New("USER_NOT_FOUND")))
}
