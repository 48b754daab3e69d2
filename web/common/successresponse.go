package common

type SuccessResponse struct {
	Data interface{} `json:"data"`
	// Warnings carries non-fatal evaluation problems (unavailable evidence
	// sources, unknown roles). A partial dashboard beats no dashboard.
	Warnings []string `json:"warnings,omitempty"`
}

func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}

func NewSuccessResponseWithWarnings(data interface{}, warnings []string) *SuccessResponse {
	return &SuccessResponse{
		Data:     data,
		Warnings: warnings,
	}
}
