package model

// APIResponse is the uniform envelope wrapping every success and error
// response of the API.
type APIResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Error      bool   `json:"error"`
	Data       any    `json:"data"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(message string, statusCode int, data any) APIResponse {
	return APIResponse{
		Message:    message,
		StatusCode: statusCode,
		Error:      false,
		Data:       data,
	}
}

// NewErrorResponse builds an error envelope.
func NewErrorResponse(message string, statusCode int, data any) APIResponse {
	return APIResponse{
		Message:    message,
		StatusCode: statusCode,
		Error:      true,
		Data:       data,
	}
}
