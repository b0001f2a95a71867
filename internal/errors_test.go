package internal_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/epicevents/crm-management/internal"
)

var _ = Describe("AppError", func() {
	It("matches its sentinel through errors.Is after wrapping", func() {
		wrapped := fmt.Errorf("loading user: %w", internal.ErrUserNotFound)
		Expect(errors.Is(wrapped, internal.ErrUserNotFound)).To(BeTrue())
		Expect(errors.Is(wrapped, internal.ErrClientNotFound)).To(BeFalse())
	})

	It("keeps the sentinel comparable after WithCause", func() {
		cause := errors.New("driver: bad connection")
		withCause := internal.ErrUserNotFound.WithCause(cause)
		Expect(errors.Is(withCause, internal.ErrUserNotFound)).To(BeTrue())
		Expect(errors.Unwrap(withCause)).To(Equal(cause))
		// the sentinel itself stays untouched
		Expect(internal.ErrUserNotFound.Cause).To(BeNil())
	})

	It("includes the cause in the rendered message", func() {
		err := internal.NewInternalError("lecture impossible", errors.New("disk full"))
		Expect(err.Error()).To(Equal("lecture impossible: disk full"))
	})

	Describe("IsInvariantViolation", func() {
		It("recognizes validator errors", func() {
			err := internal.NewValidationError("Le montant total ne peut pas être négatif.", internal.ErrCodeInvalidAmount)
			Expect(internal.IsInvariantViolation(err)).To(BeTrue())
		})

		It("rejects every other error shape", func() {
			Expect(internal.IsInvariantViolation(internal.ErrPermissionDenied)).To(BeFalse())
			Expect(internal.IsInvariantViolation(errors.New("plain"))).To(BeFalse())
			Expect(internal.IsInvariantViolation(nil)).To(BeFalse())
		})
	})
})
