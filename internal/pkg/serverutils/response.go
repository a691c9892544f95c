package serverutils

// APIResponse is the uniform envelope for every HTTP reply.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
	Code    int    `json:"code,omitempty"`
}

func SuccessResponse[T any](message string, data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) APIResponse[any] {
	return APIResponse[any]{
		Success: false,
		Message: message,
		Code:    code,
	}
}
