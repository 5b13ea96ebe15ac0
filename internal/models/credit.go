package models

import (
	"fmt"
	"time"
)

// CreditStatus is the closed set of credit application states:
//
//	pending -> in_progress -> approved | rejected
type CreditStatus string

const (
	CreditPending    CreditStatus = "pending"
	CreditInProgress CreditStatus = "in_progress"
	CreditApproved   CreditStatus = "approved"
	CreditRejected   CreditStatus = "rejected"
)

// CreditStatuses lists every state, in workflow order.
var CreditStatuses = []CreditStatus{CreditPending, CreditInProgress, CreditApproved, CreditRejected}

func ParseCreditStatus(s string) (CreditStatus, error) {
	switch st := CreditStatus(s); st {
	case CreditPending, CreditInProgress, CreditApproved, CreditRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown credit status %q", s)
}

func (s CreditStatus) IsTerminal() bool {
	switch s {
	case CreditApproved, CreditRejected:
		return true
	case CreditPending, CreditInProgress:
		return false
	}
	panic(fmt.Sprintf("unhandled credit status %q", string(s)))
}

func (s CreditStatus) CanTransitionTo(next CreditStatus) bool {
	switch s {
	case CreditPending:
		return next == CreditInProgress
	case CreditInProgress:
		return next == CreditApproved || next == CreditRejected
	case CreditApproved, CreditRejected:
		return false
	}
	panic(fmt.Sprintf("unhandled credit status %q", string(s)))
}

type Credit struct {
	ID                string       `db:"id" json:"id"`
	PymeID            string       `db:"pyme_id" json:"pyme_id"`
	Amount            float64      `db:"amount" json:"amount"`
	Employees         int          `db:"employees" json:"employees"`
	AnnualSales       float64      `db:"annual_sales" json:"annual_sales"`
	FiscalYearClosing int          `db:"fiscal_year_closing" json:"fiscal_year_closing"`
	TotalAssets       float64      `db:"total_assets" json:"total_assets"`
	Status            CreditStatus `db:"status" json:"status"`
	CreatedAt         time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time    `db:"updated_at" json:"updated_at"`
}

// CreateCreditRequest targets the caller's Pyme. Pyme carries the company
// data used when the caller has none yet.
type CreateCreditRequest struct {
	PymeID            string             `json:"pyme_id,omitempty" validate:"omitempty,uuid"`
	Amount            float64            `json:"amount" validate:"required,gt=0"`
	Employees         int                `json:"employees" validate:"required,gt=0"`
	AnnualSales       float64            `json:"annual_sales" validate:"required,gt=0"`
	FiscalYearClosing int                `json:"fiscal_year_closing" validate:"required,fiscal_year"`
	TotalAssets       float64            `json:"total_assets" validate:"required,gt=0"`
	Pyme              *CreatePymeRequest `json:"pyme,omitempty"`
}

type CreditResponse struct {
	Credit      *Credit `json:"credit"`
	PymeCreated bool    `json:"pyme_created"`
}

type CreditDocument struct {
	ID         string    `db:"id" json:"id"`
	CreditID   string    `db:"credit_id" json:"credit_id"`
	FileName   string    `db:"file_name" json:"file_name"`
	FileURL    string    `db:"file_url" json:"file_url"`
	Hash       string    `db:"hash" json:"hash"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}

type CreditReview struct {
	ID         string       `db:"id" json:"id"`
	CreditID   string       `db:"credit_id" json:"credit_id"`
	ReviewerID string       `db:"reviewer_id" json:"reviewer_id"`
	Decision   CreditStatus `db:"decision" json:"decision"`
	Comments   string       `db:"comments" json:"comments,omitempty"`
	ReviewedAt time.Time    `db:"reviewed_at" json:"reviewed_at"`
}

type CreateReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=in_progress approved rejected"`
	Comments string `json:"comments" validate:"max=2000"`
}
