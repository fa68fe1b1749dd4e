package server

import (
	"errors"
	"net/http"
	"testing"

	catalogdomain "github.com/studiokit/atelier/internal/catalog/domain"
	customerdomain "github.com/studiokit/atelier/internal/customer/domain"
	paymentdomain "github.com/studiokit/atelier/internal/payment/domain"
)

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrTooManyRequests, http.StatusTooManyRequests},
		{customerdomain.ErrNotFound, http.StatusNotFound},
		{paymentdomain.ErrNotFound, http.StatusNotFound},
		{paymentdomain.ErrCustomerNotFound, http.StatusNotFound},
		{catalogdomain.ErrNotFound, http.StatusNotFound},
		{customerdomain.ErrDuplicateEmail, http.StatusConflict},
		{paymentdomain.ErrDuplicateInvoiceNumber, http.StatusConflict},
		{catalogdomain.ErrDuplicateSlug, http.StatusConflict},
		{paymentdomain.ErrInvalidAmount, http.StatusBadRequest},
		{customerdomain.ErrInvalidEmail, http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := errorStatus(tc.err); got != tc.want {
			t.Fatalf("errorStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
