package dto

// ErrorResponse is the uniform error body. Code distinguishes "fix your
// input" (400-class) from "not allowed right now" (403/409) from "try again
// later" (500-class).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
