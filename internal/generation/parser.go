package generation

import (
	"errors"
	"strings"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
)

// ErrMissingRequiredFields means content lacks pageTitle or heroTitle
var ErrMissingRequiredFields = errors.New("generated content is missing required fields")

// FallbackPageTitle titles the fallback page when no business information is available
const FallbackPageTitle = "免費網路研討會"

// Parse turns a raw model response into content. It never fails: a response that
// is not a JSON object with pageTitle and heroTitle yields FallbackContent.
func Parse(raw, businessInfo string) models.GeneratedContent {
	obj, err := decodeObject(StripFences(raw))
	if err != nil {
		return FallbackContent(businessInfo)
	}

	content := models.GeneratedContent(obj)
	if !content.HasRequired() {
		return FallbackContent(businessInfo)
	}
	return content
}

// FallbackContent is the fixed copy used when the model output cannot be used.
// Its pageTitle is the trimmed business information, or FallbackPageTitle.
func FallbackContent(businessInfo string) models.GeneratedContent {
	title := strings.TrimSpace(businessInfo)
	if title == "" {
		title = FallbackPageTitle
	}

	return models.GeneratedContent{
		"pageTitle":       title,
		"metaDescription": "立即免費報名參加我們的線上研討會，掌握實用知識與技巧。",
		"heroTitle":       "立即報名免費網路研討會",
		"heroSubtitle":    "由專業講師親自分享實戰經驗，助你快速掌握關鍵技巧。",
		"heroCtaText":     "立即免費報名",
		"valuePoints": []any{
			map[string]any{"title": "實戰經驗分享", "description": "講師分享多年累積的第一手經驗與案例。"},
			map[string]any{"title": "即學即用技巧", "description": "課後即可應用於工作與生活中的具體方法。"},
			map[string]any{"title": "現場互動問答", "description": "直接向講師提問，解決你最關心的問題。"},
		},
		"instructorName": "專業講師",
		"instructorBio":  "擁有豐富的業界經驗，致力於分享實用知識。",
		"testimonials": []any{
			map[string]any{"name": "陳小姐", "role": "往期學員", "quote": "內容非常實用，收穫滿滿！"},
		},
		"formTitle":       "免費報名",
		"formSubtitle":    "名額有限，請盡快完成報名。",
		"formCtaText":     "確認報名",
		"thankYouTitle":   "報名成功！",
		"thankYouMessage": "感謝你的報名，我們會將研討會詳情寄送給你。",
		"nextSteps":       []any{"留意你的電子郵件收取研討會連結", "將研討會時間加入行事曆"},
		"faq":             []any{},
		"urgencyText":     "名額有限，額滿即止",
	}
}

// EnsureRequired returns ErrMissingRequiredFields when content lacks a required key.
func EnsureRequired(content models.GeneratedContent) error {
	if !content.HasRequired() {
		return ErrMissingRequiredFields
	}
	return nil
}
