package generation

import (
	"fmt"
	"strings"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
)

// DefaultLanguage is the written language of generated copy when none is configured
const DefaultLanguage = "Traditional Chinese (zh-TW)"

// SystemInstruction is sent as the system message of every generation call.
const SystemInstruction = `You are a senior conversion copywriter and webinar marketing strategist.
You write persuasive, honest landing page copy for online webinars and courses.
You answer with a single JSON object and nothing else.`

// RefineSystemInstruction is sent as the system message of refinement calls.
const RefineSystemInstruction = `You are a senior conversion copywriter editing one block of an existing webinar landing page.
Return only the rewritten block text, without commentary, quotes or markdown fences.`

type promptField struct {
	label string
	value func(req *models.GenerationRequest) string
}

func joinList(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return strings.Join(kept, ", ")
}

// promptFields is ordered; the prompt lists fields in this order.
var promptFields = []promptField{
	{"Business information", func(r *models.GenerationRequest) string { return r.BusinessInfo }},
	{"Webinar content", func(r *models.GenerationRequest) string { return r.WebinarContent }},
	{"Target audience", func(r *models.GenerationRequest) string { return r.TargetAudience }},
	{"Webinar logistics (date, time, platform)", func(r *models.GenerationRequest) string { return r.WebinarInfo }},
	{"Instructor credentials", func(r *models.GenerationRequest) string { return r.InstructorCredentials }},
	{"Contact fields to collect", func(r *models.GenerationRequest) string { return joinList(r.ContactFields) }},
	{"Visual style", func(r *models.GenerationRequest) string { return r.VisualStyle }},
	{"Brand colors", func(r *models.GenerationRequest) string { return joinList(r.BrandColors) }},
	{"Unique selling points", func(r *models.GenerationRequest) string { return r.UniqueSellingPoints }},
	{"Upsell products", func(r *models.GenerationRequest) string { return r.UpsellProducts }},
	{"Special requirements", func(r *models.GenerationRequest) string { return r.SpecialRequirements }},
	{"Uploaded photos", func(r *models.GenerationRequest) string { return joinList(r.Assets) }},
}

// outputShape lists every key the model must return.
const outputShape = `{
  "pageTitle": "browser tab title, under 60 characters",
  "metaDescription": "search result description, under 160 characters",
  "heroTitle": "main headline",
  "heroSubtitle": "supporting sentence under the headline",
  "heroCtaText": "call-to-action button label",
  "valuePoints": [{"title": "benefit", "description": "one or two sentences"}],
  "instructorName": "name of the instructor",
  "instructorBio": "short instructor biography",
  "testimonials": [{"name": "attendee name", "role": "attendee role", "quote": "what they said"}],
  "formTitle": "registration form heading",
  "formSubtitle": "registration form subheading",
  "formCtaText": "registration submit button label",
  "thankYouTitle": "heading shown after registration",
  "thankYouMessage": "message shown after registration",
  "nextSteps": ["what the registrant should do next"],
  "faq": [{"question": "common question", "answer": "answer"}],
  "urgencyText": "short line creating urgency"
}`

// BuildPrompt renders the user prompt for a generation request.
// Blank fields are left out entirely, labels included.
func BuildPrompt(req *models.GenerationRequest, language string) string {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}

	var b strings.Builder
	b.WriteString("Create the copy for a high-converting webinar registration landing page from the details below.\n\n")

	for _, field := range promptFields {
		value := strings.TrimSpace(field.value(req))
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s:\n%s\n\n", field.label, value)
	}

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Write every text value in %s.\n", language)
	b.WriteString("- Use only facts present in the details above. Never invent names, numbers, dates, prices or testimonials that contradict them.\n")
	b.WriteString("- valuePoints must have 2 to 3 items, testimonials 1 to 2 items, nextSteps 2 to 3 items and faq 0 to 3 items.\n")
	b.WriteString("- Respond with one JSON object only, no markdown fences and no commentary.\n\n")
	b.WriteString("Return JSON with exactly this shape:\n")
	b.WriteString(outputShape)
	b.WriteString("\n")

	return b.String()
}

// CorrectionMessage is appended as a user message after an invalid response.
func CorrectionMessage(validationErr error) string {
	return fmt.Sprintf(
		"Your previous response could not be used: %v\nResend the complete, valid JSON object with every requested key, including pageTitle and heroTitle. Output only the JSON.",
		validationErr,
	)
}

// BuildRefinePrompt renders the user prompt for a single block refinement.
func BuildRefinePrompt(req *models.RefineRequest, language string) string {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Block type: %s\n\n", strings.TrimSpace(req.BlockType))
	fmt.Fprintf(&b, "Current content:\n%s\n\n", strings.TrimSpace(req.CurrentContent))
	fmt.Fprintf(&b, "Instructions:\n%s\n\n", strings.TrimSpace(req.UserInstructions))
	if pageContext := strings.TrimSpace(req.PageContext); pageContext != "" {
		fmt.Fprintf(&b, "Page context:\n%s\n\n", pageContext)
	}
	fmt.Fprintf(&b, "Rewrite the block following the instructions. Keep the language %s unless the instructions ask otherwise.", language)
	return b.String()
}
