package domain

type (
	// CallbackResult struct - Summary of one handled webhook delivery
	CallbackResult struct {
		EventsReceived int
		EventsStored   int
	}

	// ProcessBatchRequest struct - Notification sent to the downstream processor
	ProcessBatchRequest struct {
		Channel string `json:"channel"`
		Limit   int    `json:"limit"`
		APIKey  string `json:"apiKey"`
	}

	// ProcessBatchResponse struct - What the processor reports back
	ProcessBatchResponse struct {
		Processed int    `json:"processed"`
		Failed    int    `json:"failed"`
		Error     string `json:"error"`
	}
)
