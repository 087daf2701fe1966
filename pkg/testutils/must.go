package testutils

import (
	"github.com/onsi/gomega"
)

// Must fails the running spec for a non-nil error and passes
// the value through otherwise.
func Must[T any](v T, err error) T {
	gomega.ExpectWithOffset(1, err).To(gomega.Succeed())
	return v
}

func MustBeSuccessful(err error) {
	gomega.ExpectWithOffset(1, err).To(gomega.Succeed())
}
