package dto

import "github.com/mhgamal/hr_approvals_app/internal/core/domain"

// StatusPresentation is the display label and color for one request status.
// This table is the only place status codes are turned into display strings;
// the core exchanges the closed code set exclusively.
type StatusPresentation struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusPresentations = map[domain.RequestStatus]StatusPresentation{
	domain.StatusNew:       {Label: "New", Color: "blue"},
	domain.StatusInProcess: {Label: "In Process", Color: "orange"},
	domain.StatusApproved:  {Label: "Approved", Color: "green"},
	domain.StatusRejected:  {Label: "Rejected", Color: "red"},
}

// StatusLabel returns the canonical presentation for a status code.
func StatusLabel(status domain.RequestStatus) StatusPresentation {
	if p, ok := statusPresentations[status]; ok {
		return p
	}
	return StatusPresentation{Label: string(status), Color: "grey"}
}
