package numeralapi

// Wire shapes of the numeral service's HTTP API. They are declared here
// rather than imported from the server's dto package so the client only
// depends on the contract, not on the server implementation.

type numeralDTO struct {
	Value   int    `json:"value"`
	Numeral string `json:"numeral"`
	Length  int    `json:"length"`
}

type batchRequestDTO struct {
	Values []int `json:"values"`
}

type batchResponseDTO struct {
	Results   []batchItemDTO      `json:"results"`
	Errors    []batchItemErrorDTO `json:"errors"`
	Total     int                 `json:"total"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

type batchItemDTO struct {
	Index int `json:"index"`
	numeralDTO
}

type batchItemErrorDTO struct {
	Index int `json:"index"`
	errorDetail
}

// problemDetail represents an RFC 9457 Problem Details response.
type problemDetail struct {
	Title  string        `json:"title"`
	Status int           `json:"status"`
	Detail string        `json:"detail"`
	Errors []errorDetail `json:"errors"`
}

// errorDetail represents a single located error within a problem response
// or a batch result.
type errorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	Value    *int   `json:"value,omitempty"`
}
