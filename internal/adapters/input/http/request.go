package http

type (
	// StatusQueryRequest struct - HTTP query request DTO
	StatusQueryRequest struct {
		Limit *int `json:"limit,omitempty" form:"limit" query:"limit" validate:"omitempty,gte=1,lte=100"`
	}
)
