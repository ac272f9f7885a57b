package models

import (
	"strings"
	"time"
)

// GenerationRequest is the webinar description a user submits through the
// multi-step form. It is built per call and snapshotted into the page content.
type GenerationRequest struct {
	BusinessInfo          string   `json:"businessInfo"`
	WebinarContent        string   `json:"webinarContent"`
	TargetAudience        string   `json:"targetAudience"`
	WebinarInfo           string   `json:"webinarInfo"`
	InstructorCredentials string   `json:"instructorCredentials"`
	ContactFields         []string `json:"contactFields"`
	VisualStyle           string   `json:"visualStyle,omitempty"`
	BrandColors           []string `json:"brandColors,omitempty"`
	UniqueSellingPoints   string   `json:"uniqueSellingPoints,omitempty"`
	UpsellProducts        string   `json:"upsellProducts,omitempty"`
	SpecialRequirements   string   `json:"specialRequirements,omitempty"`
	Assets                []string `json:"assets,omitempty"`
}

// Normalize trims every text field and drops blank list entries
func (r *GenerationRequest) Normalize() {
	r.BusinessInfo = strings.TrimSpace(r.BusinessInfo)
	r.WebinarContent = strings.TrimSpace(r.WebinarContent)
	r.TargetAudience = strings.TrimSpace(r.TargetAudience)
	r.WebinarInfo = strings.TrimSpace(r.WebinarInfo)
	r.InstructorCredentials = strings.TrimSpace(r.InstructorCredentials)
	r.VisualStyle = strings.TrimSpace(r.VisualStyle)
	r.UniqueSellingPoints = strings.TrimSpace(r.UniqueSellingPoints)
	r.UpsellProducts = strings.TrimSpace(r.UpsellProducts)
	r.SpecialRequirements = strings.TrimSpace(r.SpecialRequirements)
	r.ContactFields = compact(r.ContactFields)
	r.BrandColors = compact(r.BrandColors)
	r.Assets = compact(r.Assets)
}

// MissingRequired returns the JSON names of required fields that are blank
func (r *GenerationRequest) MissingRequired() []string {
	required := []struct {
		name  string
		value string
	}{
		{"businessInfo", r.BusinessInfo},
		{"webinarContent", r.WebinarContent},
		{"targetAudience", r.TargetAudience},
		{"webinarInfo", r.WebinarInfo},
		{"instructorCredentials", r.InstructorCredentials},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// UploadedPhoto is a photo part of the generation form, already read into memory
type UploadedPhoto struct {
	FileName    string
	ContentType string
	Data        []byte
}

// LandingPageSummary is the page reference returned after generation
type LandingPageSummary struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"metaDescription"`
	CreatedAt       time.Time `json:"createdAt"`
}

// GenerateResponse is returned by the generation and regeneration endpoints
type GenerateResponse struct {
	Success     bool                `json:"success"`
	LandingPage *LandingPageSummary `json:"landingPage,omitempty"`
	Error       string              `json:"error,omitempty"`
}
