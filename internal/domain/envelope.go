package domain

// Upstream envelope status codes. The content API reports errors inside
// a 200 response body, so services must check StatusCode before trusting
// Results.
const (
	EnvelopeStatusOK            = 1
	EnvelopeStatusInvalidAPIKey = 100
	EnvelopeStatusNotFound      = 101
)

// CharacterListEnvelope wraps multi-result responses from the content
// API (/characters/, /search/).
type CharacterListEnvelope struct {
	Error                string      `json:"error"`
	Limit                int         `json:"limit"`
	Offset               int         `json:"offset"`
	NumberOfPageResults  int         `json:"number_of_page_results"`
	NumberOfTotalResults int         `json:"number_of_total_results"`
	StatusCode           int         `json:"status_code"`
	Results              []Character `json:"results"`
}

// CharacterEnvelope wraps single-result responses (/character/<id>/).
type CharacterEnvelope struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"status_code"`
	Results    Character `json:"results"`
}
