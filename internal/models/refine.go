package models

// RefineRequest asks the model to rewrite one content block of a page
type RefineRequest struct {
	BlockType        string `json:"blockType" binding:"required,max=100"`
	CurrentContent   string `json:"currentContent" binding:"required,max=20000"`
	UserInstructions string `json:"userInstructions" binding:"required,max=2000"`
	PageContext      string `json:"pageContext" binding:"max=20000"`
}

// RefineResponse carries the rewritten block text
type RefineResponse struct {
	Success        bool   `json:"success"`
	RefinedContent string `json:"refinedContent,omitempty"`
	Error          string `json:"error,omitempty"`
}
