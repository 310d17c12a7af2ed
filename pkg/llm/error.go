// Package llm provides internal representations of LLM inference API requests
// and responses (Ollama-compatible) shared by every provider.
package llm

// ErrorResponse represents an error returned over HTTP.
type ErrorResponse struct {
	Error string `json:"error"`
}
