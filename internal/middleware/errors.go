package middleware

type errorResponse struct {
	Detail string `json:"detail"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Detail: msg}
}
