package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PageEnvelope carries a page of results and the cursor for the next one.
type PageEnvelope struct {
	Data       any    `json:"data"`
	NextCursor string `json:"next_cursor,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// FlatErrorEnvelope is the {"error":"<message>"} shape ERP clients parse.
type FlatErrorEnvelope struct {
	Error string `json:"error"`
}
