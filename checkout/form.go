package checkout

import (
	"net/url"

	"cupcakery/models"
)

// Field names, shared by HTML inputs, JSON and the error map.
type Field string

const (
	FieldPaymentMethod Field = "paymentMethod"
	FieldPostalCode    Field = "postalCode"
	FieldPhone         Field = "phone"
	FieldAddressLine1  Field = "addressLine1"
	FieldAddressLine2  Field = "addressLine2"
)

// AllFields are the fields checked while the customer types.
var AllFields = []Field{FieldPhone, FieldPostalCode, FieldAddressLine1, FieldAddressLine2}

// Form is the checkout form on the cart page.
type Form struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	PostalCode    string               `json:"postalCode"`
	Phone         string               `json:"phone"`
	AddressLine1  string               `json:"addressLine1"`
	AddressLine2  string               `json:"addressLine2"`
}

// Errors maps a field to its message. Fields without an error are absent.
type Errors map[Field]string

func (e Errors) OK() bool {
	return len(e) == 0
}

func (e Errors) Get(f Field) string {
	return e[f]
}

// NewForm is an empty form with the default payment method.
func NewForm() Form {
	return Form{PaymentMethod: models.PaymentCash}
}

// FormFromValues reads a posted form, sanitizing every field as it goes.
func FormFromValues(v url.Values) Form {
	f := Form{
		PaymentMethod: models.ParsePaymentMethod(v.Get(string(FieldPaymentMethod))),
		PostalCode:    v.Get(string(FieldPostalCode)),
		Phone:         v.Get(string(FieldPhone)),
		AddressLine1:  v.Get(string(FieldAddressLine1)),
		AddressLine2:  v.Get(string(FieldAddressLine2)),
	}
	f.Sanitize()
	return f
}

// Sanitize applies the per-field input filters.
func (f *Form) Sanitize() {
	f.PaymentMethod = models.ParsePaymentMethod(string(f.PaymentMethod))
	f.Phone = SanitizePhone(f.Phone)
	f.PostalCode = SanitizePostalCode(f.PostalCode)
	f.AddressLine1 = SanitizeAddress(f.AddressLine1)
	f.AddressLine2 = SanitizeAddress(f.AddressLine2)
}

// Validate checks every field.
func (f Form) Validate() Errors {
	return f.ValidateFields(AllFields...)
}

// ValidateFields checks only the named fields.
func (f Form) ValidateFields(fields ...Field) Errors {
	errs := Errors{}
	for _, field := range fields {
		if msg := f.validateField(field); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

func (f Form) validateField(field Field) string {
	switch field {
	case FieldPhone:
		return ValidatePhone(f.Phone)
	case FieldPostalCode:
		return ValidatePostalCode(f.PostalCode)
	case FieldAddressLine1:
		return ValidateAddressLine(f.AddressLine1, LabelAddressLine1)
	case FieldAddressLine2:
		return ValidateAddressLine(f.AddressLine2, LabelAddressLine2)
	}
	return ""
}
