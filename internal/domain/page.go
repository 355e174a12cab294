package domain

// ScrapeStatus marks the outcome of a single page fetch.
type ScrapeStatus string

const (
	ScrapeSuccess ScrapeStatus = "success"
	ScrapeError   ScrapeStatus = "error"
)

// NoTitleFallback is reported when the source document carries no <title>.
const NoTitleFallback = "No title found"

// ScrapeResult is the normalized outcome of fetching and cleaning one page.
// An error result has empty Title and Text; a success result always carries
// a title (fallback literal if the document has none).
type ScrapeResult struct {
	Title  string       `json:"title,omitempty"`
	Text   string       `json:"text,omitempty"`
	URL    string       `json:"url"`
	Status ScrapeStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

// OK reports whether the fetch succeeded.
func (r ScrapeResult) OK() bool {
	return r.Status == ScrapeSuccess
}

// Session carries one user interaction's configuration. It is built per
// request and passed by value; nothing in it is shared across users.
type Session struct {
	Provider    string
	Model       string
	APIKey      string
	EndpointURL string
}

// ChatRequest describes one chat-completion exchange.
type ChatRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

// BackendTarget points a chat or catalog call at a concrete endpoint.
type BackendTarget struct {
	BaseURL string
	APIKey  string
}
