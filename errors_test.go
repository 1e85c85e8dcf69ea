package gridview_test

import (
	"context"
	"io"

	"github.com/friendsofgo/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/gridview-go"
)

var _ = Describe("Errors", func() {
	Describe("TransportError", func() {
		It("should describe the failing step", func() {
			err := &gridview.TransportError{Op: "status", URL: "http://api/products", StatusCode: 503}
			Expect(err.Error()).To(Equal("transport error: status http://api/products: status 503"))
		})

		It("should unwrap the cause", func() {
			err := &gridview.TransportError{Op: "request", Err: context.DeadlineExceeded}
			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
		})

		It("should be detected through wrapping", func() {
			err := errors.Wrap(&gridview.TransportError{Op: "query", Err: io.EOF}, "fetch products")
			Expect(gridview.IsTransport(err)).To(BeTrue())
			Expect(gridview.IsMalformed(err)).To(BeFalse())
		})
	})

	Describe("MalformedResponseError", func() {
		It("should carry the reason", func() {
			err := &gridview.MalformedResponseError{Reason: "missing total"}
			Expect(err.Error()).To(ContainSubstring("missing total"))
			Expect(gridview.IsMalformed(err)).To(BeTrue())
		})

		It("should unwrap the cause", func() {
			err := &gridview.MalformedResponseError{Reason: "records", Err: io.ErrUnexpectedEOF}
			Expect(errors.Is(err, io.ErrUnexpectedEOF)).To(BeTrue())
		})
	})

	Describe("InvalidParameterError", func() {
		It("should name the parameter", func() {
			err := &gridview.InvalidParameterError{Name: "pageSize", Value: 0, Reason: "must be at least 1"}
			Expect(err.Error()).To(ContainSubstring("pageSize"))
			Expect(gridview.IsInvalidParameter(err)).To(BeTrue())
			Expect(gridview.IsInvalidParameter(io.EOF)).To(BeFalse())
		})
	})
})
