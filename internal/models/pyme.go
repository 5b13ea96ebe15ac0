package models

import "time"

// Pyme is a small or medium company profile. Each user owns at most one.
type Pyme struct {
	ID             string    `db:"id" json:"id"`
	OwnerID        string    `db:"user_id" json:"user_id"`
	NameCompany    string    `db:"name_company" json:"name_company"`
	CUIT           string    `db:"cuit" json:"cuit"`
	LegalForm      string    `db:"legal_form" json:"legal_form"`
	Activity       string    `db:"activity" json:"activity"`
	CorporateEmail string    `db:"corporate_email" json:"corporate_email"`
	PhoneNumber    string    `db:"phone_number" json:"phone_number"`
	Country        string    `db:"country" json:"country"`
	State          string    `db:"state" json:"state"`
	City           string    `db:"city" json:"city"`
	Address        string    `db:"address" json:"address"`
	PostalCode     string    `db:"postal_code" json:"postal_code"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type CreatePymeRequest struct {
	NameCompany    string `json:"name_company" validate:"required,max=100"`
	CUIT           string `json:"cuit" validate:"required,cuit"`
	LegalForm      string `json:"legal_form" validate:"required,max=50"`
	Activity       string `json:"activity" validate:"required,max=100"`
	CorporateEmail string `json:"corporate_email" validate:"required,email"`
	PhoneNumber    string `json:"phone_number" validate:"required,phone"`
	Country        string `json:"country" validate:"required,max=50"`
	State          string `json:"state" validate:"required,max=50"`
	City           string `json:"city" validate:"required,max=50"`
	Address        string `json:"address" validate:"required,max=200"`
	PostalCode     string `json:"postal_code" validate:"required,max=20"`
}

// UpdatePymeRequest carries only the fields to change. CUIT and owner are fixed.
type UpdatePymeRequest struct {
	NameCompany    *string `json:"name_company,omitempty" validate:"omitempty,max=100"`
	LegalForm      *string `json:"legal_form,omitempty" validate:"omitempty,max=50"`
	Activity       *string `json:"activity,omitempty" validate:"omitempty,max=100"`
	CorporateEmail *string `json:"corporate_email,omitempty" validate:"omitempty,email"`
	PhoneNumber    *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	Country        *string `json:"country,omitempty" validate:"omitempty,max=50"`
	State          *string `json:"state,omitempty" validate:"omitempty,max=50"`
	City           *string `json:"city,omitempty" validate:"omitempty,max=50"`
	Address        *string `json:"address,omitempty" validate:"omitempty,max=200"`
	PostalCode     *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
}

func (r *UpdatePymeRequest) Empty() bool {
	return r.NameCompany == nil && r.LegalForm == nil && r.Activity == nil &&
		r.CorporateEmail == nil && r.PhoneNumber == nil && r.Country == nil &&
		r.State == nil && r.City == nil && r.Address == nil && r.PostalCode == nil
}

// Apply copies the set fields onto p.
func (r *UpdatePymeRequest) Apply(p *Pyme) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.NameCompany, r.NameCompany)
	set(&p.LegalForm, r.LegalForm)
	set(&p.Activity, r.Activity)
	set(&p.CorporateEmail, r.CorporateEmail)
	set(&p.PhoneNumber, r.PhoneNumber)
	set(&p.Country, r.Country)
	set(&p.State, r.State)
	set(&p.City, r.City)
	set(&p.Address, r.Address)
	set(&p.PostalCode, r.PostalCode)
}

func (r CreatePymeRequest) ToPyme(id, ownerID string, now time.Time) *Pyme {
	return &Pyme{
		ID:             id,
		OwnerID:        ownerID,
		NameCompany:    r.NameCompany,
		CUIT:           r.CUIT,
		LegalForm:      r.LegalForm,
		Activity:       r.Activity,
		CorporateEmail: r.CorporateEmail,
		PhoneNumber:    r.PhoneNumber,
		Country:        r.Country,
		State:          r.State,
		City:           r.City,
		Address:        r.Address,
		PostalCode:     r.PostalCode,
		CreatedAt:      now,
	}
}
