package mapping

import (
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	"github.com/mhgamal/hr_approvals_app/internal/models"
)

// ToModelInstallment converts a domain Installment to its database model.
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID: d.ID,
		LoanID:        d.LoanID,
		InstallmentNo: d.InstallmentNo,
		DueDate:       d.DueDate,
		Amount:        d.Amount,
		PaidDate:      d.PaidDate,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInstallment converts a database model to a domain Installment.
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		ID:            m.InstallmentID,
		LoanID:        m.LoanID,
		InstallmentNo: m.InstallmentNo,
		DueDate:       m.DueDate,
		Amount:        m.Amount,
		PaidDate:      m.PaidDate,
		Status:        domain.InstallmentStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInstallmentSlice converts a slice of models to domain installments.
func ToDomainInstallmentSlice(ms []models.Installment) []domain.Installment {
	ds := make([]domain.Installment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInstallment(m)
	}
	return ds
}
