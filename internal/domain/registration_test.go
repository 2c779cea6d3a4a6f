package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		current PaymentStatus
		next    PaymentStatus
		want    bool
	}{
		{PaymentStatusPending, PaymentStatusPaid, true},
		{PaymentStatusPending, PaymentStatusCancelled, true},
		{PaymentStatusPaid, PaymentStatusPending, false},
		{PaymentStatusPaid, PaymentStatusCancelled, false},
		{PaymentStatusCancelled, PaymentStatusPending, false},
		{PaymentStatusCancelled, PaymentStatusPaid, false},
		{PaymentStatusPending, PaymentStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.current, tc.next),
			"%s -> %s", tc.current, tc.next)
	}
}
