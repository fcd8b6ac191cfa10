package mapping

import (
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	"github.com/mhgamal/hr_approvals_app/internal/models"
)

// ToModelRequest converts a domain FinancialRequest to its database model.
// Optional domain fields map to nullable columns.
func ToModelRequest(d domain.FinancialRequest) models.FinancialRequest {
	m := models.FinancialRequest{
		RequestID:         d.ID,
		RequestType:       string(d.Type),
		SubjectEmployeeID: d.SubjectEmployeeID,
		Department:        strPtrOrNil(d.Department),
		ProjectID:         strPtrOrNil(d.ProjectID),
		Amount:            d.Amount,
		FirstDueDate:      d.FirstDueDate,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		AttendanceDate:    d.AttendanceDate,
		Status:            string(d.Status),
		CurrentLevel:      d.CurrentLevel,
		NextApproverID:    strPtrOrNil(d.NextApproverID),
		NextApproverName:  strPtrOrNil(d.NextApproverName),
		NextLevelName:     strPtrOrNil(d.NextLevelName),
		RejectionReason:   strPtrOrNil(d.RejectionReason),
		ApprovedDate:      d.ApprovedDate,
		ApproverID:        strPtrOrNil(d.ApproverID),
		Version:           d.Version,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.InstallmentCount != 0 {
		m.InstallmentCount = &d.InstallmentCount
	}
	if d.PeriodYear != 0 {
		m.PeriodYear = &d.PeriodYear
	}
	if d.PeriodMonth != 0 {
		m.PeriodMonth = &d.PeriodMonth
	}
	if d.BlockingReason != nil {
		code := string(*d.BlockingReason)
		m.BlockingReason = &code
	}
	return m
}

// ToDomainRequest converts a database model to a domain FinancialRequest.
func ToDomainRequest(m models.FinancialRequest) domain.FinancialRequest {
	d := domain.FinancialRequest{
		ID:                m.RequestID,
		Type:              domain.RequestType(m.RequestType),
		SubjectEmployeeID: m.SubjectEmployeeID,
		Department:        strOrEmpty(m.Department),
		ProjectID:         strOrEmpty(m.ProjectID),
		Amount:            m.Amount,
		FirstDueDate:      m.FirstDueDate,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		AttendanceDate:    m.AttendanceDate,
		Status:            domain.RequestStatus(m.Status),
		CurrentLevel:      m.CurrentLevel,
		NextApproverID:    strOrEmpty(m.NextApproverID),
		NextApproverName:  strOrEmpty(m.NextApproverName),
		NextLevelName:     strOrEmpty(m.NextLevelName),
		RejectionReason:   strOrEmpty(m.RejectionReason),
		ApprovedDate:      m.ApprovedDate,
		ApproverID:        strOrEmpty(m.ApproverID),
		Version:           m.Version,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.InstallmentCount != nil {
		d.InstallmentCount = *m.InstallmentCount
	}
	if m.PeriodYear != nil {
		d.PeriodYear = *m.PeriodYear
	}
	if m.PeriodMonth != nil {
		d.PeriodMonth = *m.PeriodMonth
	}
	if m.BlockingReason != nil {
		code := domain.ViolationCode(*m.BlockingReason)
		d.BlockingReason = &code
	}
	return d
}

// ToDomainRequestSlice converts a slice of models to domain requests.
func ToDomainRequestSlice(ms []models.FinancialRequest) []domain.FinancialRequest {
	ds := make([]domain.FinancialRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRequest(m)
	}
	return ds
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
