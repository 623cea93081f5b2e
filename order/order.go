package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"cupcakery/cart"
	"cupcakery/checkout"
	"cupcakery/models"
)

// ErrEmptyCart is returned when there is nothing to order.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError carries the per-field messages that blocked an order.
type ValidationError struct {
	Errors checkout.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout form has %d invalid field(s)", len(e.Errors))
}

// Finalizer turns a valid form and a cart into an order reference.
type Finalizer struct {
	now        func() time.Time
	checkPhone bool
	allowEmpty bool
}

type Option func(*Finalizer)

func WithClock(now func() time.Time) Option {
	return func(f *Finalizer) { f.now = now }
}

// WithPhoneCheck controls whether the phone number gates the order.
func WithPhoneCheck(on bool) Option {
	return func(f *Finalizer) { f.checkPhone = on }
}

// WithEmptyCart allows ordering with no items.
func WithEmptyCart(allow bool) Option {
	return func(f *Finalizer) { f.allowEmpty = allow }
}

func NewFinalizer(opts ...Option) *Finalizer {
	f := &Finalizer{now: time.Now, checkPhone: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GateFields are the fields that must validate before an order is placed.
func (f *Finalizer) GateFields() []checkout.Field {
	fields := []checkout.Field{checkout.FieldPostalCode, checkout.FieldAddressLine1, checkout.FieldAddressLine2}
	if f.checkPhone {
		fields = append(fields, checkout.FieldPhone)
	}
	return fields
}

// Finalize validates the form, builds the order and clears the store. On
// any error the store is left untouched.
func (f *Finalizer) Finalize(ctx context.Context, form checkout.Form, store *cart.Store) (models.Order, error) {
	if errs := form.ValidateFields(f.GateFields()...); !errs.OK() {
		return models.Order{}, &ValidationError{Errors: errs}
	}

	lines := store.Lines()
	if len(lines) == 0 && !f.allowEmpty {
		return models.Order{}, ErrEmptyCart
	}

	summary := cart.Summarize(lines)
	placedAt := f.now()
	o := models.Order{
		OrderNumber:   NewOrderNumber(placedAt),
		PaymentMethod: form.PaymentMethod,
		ItemCount:     summary.Count,
		Subtotal:      summary.Subtotal,
		Total:         summary.Total,
		PlacedAt:      placedAt,
	}

	store.Clear(ctx)
	log.Printf("order %s placed: %d item(s), total %d, %s", o.OrderNumber, o.ItemCount, o.Total, o.PaymentMethod)
	return o, nil
}

// NewOrderNumber is "ORD-" followed by the last six digits of t in Unix
// milliseconds. Two orders within the same millisecond, or exactly 10^6 ms
// apart, share a number.
func NewOrderNumber(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "ORD-" + ms
}
