package delivery

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Status enumerates the delivery lifecycle states. Transitions are
// unconstrained: any value may replace any other via patch.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var statuses = []interface{}{StatusPending, StatusInProgress, StatusDelivered, StatusCancelled}

// Invoice is the fiscal document accompanying a delivery.
type Invoice struct {
	Number       string    `json:"number" gorm:"column:invoice_number"`
	EmissionDate time.Time `json:"emission_date" gorm:"column:invoice_emission_date"`
}

func (inv Invoice) Validate() error {
	return validation.ValidateStruct(&inv,
		validation.Field(&inv.Number, validation.Required),
		validation.Field(&inv.EmissionDate, validation.Required),
	)
}

// Delivery is one medicine shipment to a patient. DeliveryDate stays unset
// until the shipment is completed; nothing ties it to the status value.
type Delivery struct {
	ID           int        `json:"id" gorm:"primaryKey"`
	PatientID    int        `json:"patient_id" gorm:"index"`
	Invoice      Invoice    `json:"invoice" gorm:"embedded"`
	DeliveryDate *time.Time `json:"delivery_date"`
	Status       Status     `json:"status"`
}

// Validate checks the required fields on create. Status is expected to be
// defaulted before validation.
func (d Delivery) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.PatientID, validation.Required),
		validation.Field(&d.Invoice),
		validation.Field(&d.Status, validation.In(statuses...)),
	)
}

// Patch carries a partial update. Nil or empty fields are left unchanged.
type Patch struct {
	PatientID    *int       `json:"patient_id"`
	Invoice      *Invoice   `json:"invoice"`
	DeliveryDate *time.Time `json:"delivery_date"`
	Status       *Status    `json:"status"`
}

// Validate rejects a status outside the enumeration; everything else in a
// patch is free-form.
func (patch Patch) Validate() error {
	if patch.Status == nil || *patch.Status == "" {
		return nil
	}
	if err := validation.Validate(*patch.Status, validation.In(statuses...)); err != nil {
		return validation.Errors{"status": err}
	}
	return nil
}

// Apply merges the patch into d.
func (patch Patch) Apply(d *Delivery) {
	if patch.PatientID != nil && *patch.PatientID != 0 {
		d.PatientID = *patch.PatientID
	}
	if patch.Invoice != nil {
		d.Invoice = *patch.Invoice
	}
	if patch.DeliveryDate != nil {
		d.DeliveryDate = patch.DeliveryDate
	}
	if patch.Status != nil && *patch.Status != "" {
		d.Status = *patch.Status
	}
}

// Filter is an exact-match conjunction over the list query parameters. Nil
// fields match everything.
type Filter struct {
	PatientID    *int
	Status       *Status
	EmissionFrom *time.Time
	EmissionTo   *time.Time
	DeliveryFrom *time.Time
	DeliveryTo   *time.Time
}

func (f Filter) matches(d *Delivery) bool {
	if f.PatientID != nil && d.PatientID != *f.PatientID {
		return false
	}
	if f.Status != nil && d.Status != *f.Status {
		return false
	}
	if f.EmissionFrom != nil && d.Invoice.EmissionDate.Before(*f.EmissionFrom) {
		return false
	}
	if f.EmissionTo != nil && d.Invoice.EmissionDate.After(*f.EmissionTo) {
		return false
	}
	if f.DeliveryFrom != nil && (d.DeliveryDate == nil || d.DeliveryDate.Before(*f.DeliveryFrom)) {
		return false
	}
	if f.DeliveryTo != nil && (d.DeliveryDate == nil || d.DeliveryDate.After(*f.DeliveryTo)) {
		return false
	}
	return true
}
