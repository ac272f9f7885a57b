package models

import (
	"encoding/json"
	"time"
)

// LeadStatus is the follow-up state of a lead in the dashboard
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusArchived  LeadStatus = "archived"
)

// IsValid reports whether s is a known lead status
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusArchived:
		return true
	}
	return false
}

// Lead is a visitor contact captured by a landing page form
type Lead struct {
	ID             string          `json:"id"`
	LandingPageID  string          `json:"pageId"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Instagram      string          `json:"instagram"`
	AdditionalInfo json.RawMessage `json:"additionalInfo"`
	Status         LeadStatus      `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CreateLeadRequest is posted by the landing page scripts.
// Contact fields are stored verbatim, empty strings included.
type CreateLeadRequest struct {
	PageID         string          `json:"pageId"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Instagram      string          `json:"instagram"`
	AdditionalInfo json.RawMessage `json:"additionalInfo"`
}

// LeadData is the lead echo returned to the submitting page
type LeadData struct {
	ID        string    `json:"id"`
	PageID    string    `json:"pageId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Instagram string    `json:"instagram"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateLeadResponse is the lead submission envelope
type CreateLeadResponse struct {
	Success bool      `json:"success"`
	Data    *LeadData `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// LeadListResponse wraps the leads of one page
type LeadListResponse struct {
	Success bool   `json:"success"`
	Leads   []Lead `json:"leads"`
	Total   int    `json:"total"`
}

// UpdateLeadStatusRequest changes a lead's follow-up status
type UpdateLeadStatusRequest struct {
	Status LeadStatus `json:"status" binding:"required,oneof=new contacted converted archived"`
}
