package patient

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Patient is a registered recipient of medicine deliveries. The id is
// server-assigned and immutable after creation.
type Patient struct {
	ID               int    `json:"id" gorm:"primaryKey"`
	Name             string `json:"name"`
	HealthCardNumber string `json:"health_card_number" gorm:"uniqueIndex"`
	Address          string `json:"address"`
}

// Validate checks the required fields on create.
func (p Patient) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.HealthCardNumber, validation.Required),
		validation.Field(&p.Address, validation.Required),
	)
}

// Patch carries a partial update. Nil or empty fields are left unchanged.
type Patch struct {
	Name             *string `json:"name"`
	HealthCardNumber *string `json:"health_card_number"`
	Address          *string `json:"address"`
}

// Apply merges the patch into p.
func (patch Patch) Apply(p *Patient) {
	if patch.Name != nil && *patch.Name != "" {
		p.Name = *patch.Name
	}
	if patch.HealthCardNumber != nil && *patch.HealthCardNumber != "" {
		p.HealthCardNumber = *patch.HealthCardNumber
	}
	if patch.Address != nil && *patch.Address != "" {
		p.Address = *patch.Address
	}
}
