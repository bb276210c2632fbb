package model

// URLMapping associates a short identifier with the URL it redirects to.
// A mapping is never modified once stored.
type URLMapping struct {
	ID     string
	Target string
}

// ShortenRequest is the JSON body accepted by the shorten API.
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenResponse is the JSON body returned by the shorten API.
type ShortenResponse struct {
	Result string `json:"result"`
}
