package request

// UpdateSettingsRequest represents the owner preferences update
type UpdateSettingsRequest struct {
	ShowCostOnScreen *bool `json:"show_cost_on_screen"`
}

// AskAssistantRequest represents a prompt to the assistant
type AskAssistantRequest struct {
	Prompt string `json:"prompt" binding:"required,max=2000"`
}

// MonthlyStatsRequest selects the stats month
type MonthlyStatsRequest struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}
