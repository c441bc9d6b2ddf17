package order

import (
	"errors"
	"fmt"

	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// OTPLength is the fixed length of pickup and dropoff one-time codes.
const OTPLength = 4

// ErrInvalidOTP is returned when a supplied code does not exactly match the
// stored one-time code. The order status stays unchanged and the courier may
// retry; rate limiting, if any, is an external policy.
var ErrInvalidOTP = errors.New("one-time code does not match")

// OTP is an immutable value object holding a fixed-length numeric one-time
// code used to gate lifecycle checkpoints. The zero value never matches any
// candidate, so a provisional order without server-issued codes can never
// pass an OTP gate.
type OTP struct { //nolint:recvcheck //using for validation
	code  string
	guard guard.ConstructorGuard
}

// NewOTP creates an OTP from its numeric string representation.
// The code must be exactly OTPLength ASCII digits.
func NewOTP(code string) (OTP, error) {
	if len(code) != OTPLength {
		return OTP{}, errs.NewValueIsInvalidErrorWithCause("otp",
			fmt.Errorf("code must be exactly %d digits", OTPLength))
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return OTP{}, errs.NewValueIsInvalidErrorWithCause("otp",
				fmt.Errorf("code must contain only digits"))
		}
	}

	return OTP{
		code:  code,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Matches reports whether candidate equals the stored code exactly.
// Always false for a zero-value OTP.
func (o OTP) Matches(candidate string) bool {
	if err := o.Validate(); err != nil {
		return false
	}
	return o.code == candidate
}

// String returns a masked representation; the code itself never reaches logs.
func (o OTP) String() string {
	return "****"
}

// Validate checks that the OTP was properly constructed via NewOTP.
func (o OTP) Validate() error {
	return o.guard.Validate(errs.NewValueIsRequiredError("otp must be created via NewOTP constructor"))
}
