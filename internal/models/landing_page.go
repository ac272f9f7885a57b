package models

import (
	"time"
)

// LandingPage is a generated webinar page owned by a user
type LandingPage struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Title           string      `json:"title"`
	MetaDescription string      `json:"metaDescription"`
	HTML            string      `json:"html"`
	CSS             string      `json:"css"`
	JS              string      `json:"js"`
	Content         PageContent `json:"content"`
	VisualStyle     string      `json:"visualStyle"`
	TemplateBundle  string      `json:"templateBundle"`
	IsPublished     bool        `json:"isPublished"`
	PublishedAt     *time.Time  `json:"publishedAt,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// PageContent is the structured content stored with a page: the request it was
// generated from and the copy the model produced for it.
type PageContent struct {
	Request   GenerationRequest `json:"request"`
	Generated GeneratedContent  `json:"generated"`
}

// Summary returns the short reference used in generation responses
func (p *LandingPage) Summary() *LandingPageSummary {
	return &LandingPageSummary{
		ID:              p.ID,
		Title:           p.Title,
		MetaDescription: p.MetaDescription,
		CreatedAt:       p.CreatedAt,
	}
}

// LandingPageListItem is a page row in the dashboard listing (no html/css/js bodies)
type LandingPageListItem struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	MetaDescription string     `json:"metaDescription"`
	VisualStyle     string     `json:"visualStyle"`
	IsPublished     bool       `json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	LeadCount       int        `json:"leadCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// UpdatePageRequest is the editor save payload. Nil fields are left unchanged.
type UpdatePageRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1,max=300"`
	MetaDescription *string `json:"metaDescription" binding:"omitempty,max=500"`
	HTML            *string `json:"html"`
	CSS             *string `json:"css"`
	JS              *string `json:"js"`
}

// IsEmpty reports whether the request changes nothing
func (r *UpdatePageRequest) IsEmpty() bool {
	return r.Title == nil && r.MetaDescription == nil && r.HTML == nil && r.CSS == nil && r.JS == nil
}

// ListOptions controls pagination of dashboard listings
type ListOptions struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Normalized applies the default page size
func (o ListOptions) Normalized() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// PageListResponse wraps a page listing
type PageListResponse struct {
	Success bool                  `json:"success"`
	Pages   []LandingPageListItem `json:"pages"`
	Total   int                   `json:"total"`
}

// PageResponse wraps a single page
type PageResponse struct {
	Success bool         `json:"success"`
	Page    *LandingPage `json:"page"`
}

// FormSubmission is a history snapshot of a generation request
type FormSubmission struct {
	ID            string            `json:"id"`
	LandingPageID string            `json:"landingPageId"`
	UserID        string            `json:"userId"`
	Request       GenerationRequest `json:"request"`
	CreatedAt     time.Time         `json:"createdAt"`
}
