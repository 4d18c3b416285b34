package models

const StatusError = "error"

// StatsResponse is the success envelope. Without a selection it holds one
// aggregate entry whose failed categories encode as null.
type StatsResponse struct {
	Stats []*MetricRecord `json:"stats"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message}
}
