package dto

import (
	"time"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SchedulePreviewRequest asks for an amortization schedule without persisting
// anything. Used by the loan form before submission.
type SchedulePreviewRequest struct {
	Principal        decimal.Decimal `json:"principal" binding:"required"`
	InstallmentCount int             `json:"installmentCount" binding:"required,min=1"`
	FirstDueDate     time.Time       `json:"firstDueDate" binding:"required"`
}

// InstallmentResponse defines the data returned for a single installment.
type InstallmentResponse struct {
	InstallmentNo int                      `json:"installmentNo"`
	DueDate       time.Time                `json:"dueDate"`
	Amount        decimal.Decimal          `json:"amount"`
	PaidDate      *time.Time               `json:"paidDate,omitempty"`
	Status        domain.InstallmentStatus `json:"status"`
}

// ScheduleResponse is the ordered installment list for a loan.
type ScheduleResponse struct {
	LoanID       string                `json:"loanID,omitempty"`
	Installments []InstallmentResponse `json:"installments"`
}

// ToInstallmentResponse converts a domain.Installment to its response DTO.
func ToInstallmentResponse(in *domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentNo: in.InstallmentNo,
		DueDate:       in.DueDate,
		Amount:        in.Amount,
		PaidDate:      in.PaidDate,
		Status:        in.Status,
	}
}

// ToScheduleResponse converts a full schedule.
func ToScheduleResponse(loanID string, installments []domain.Installment) ScheduleResponse {
	out := make([]InstallmentResponse, len(installments))
	for i := range installments {
		out[i] = ToInstallmentResponse(&installments[i])
	}
	return ScheduleResponse{LoanID: loanID, Installments: out}
}
