package mapping

import (
	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
	"github.com/mhgamal/hr_approvals_app/internal/models"
)

// ToDomainChain assembles an approval chain from its level rows. The rows
// must already be ordered by level.
func ToDomainChain(requestType domain.RequestType, department, projectID string, rows []models.ApprovalLevel) domain.ApprovalLevelChain {
	levels := make([]domain.ApprovalLevel, len(rows))
	for i, r := range rows {
		levels[i] = domain.ApprovalLevel{
			Level:        r.Level,
			LevelName:    r.LevelName,
			Role:         domain.Role(r.Role),
			ApproverID:   strOrEmpty(r.ApproverID),
			ApproverName: strOrEmpty(r.ApproverName),
		}
	}
	return domain.ApprovalLevelChain{
		RequestType: requestType,
		Department:  department,
		ProjectID:   projectID,
		Levels:      levels,
	}
}
