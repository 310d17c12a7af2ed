package llm

// Options contains model inference parameters forwarded to the provider.
type Options struct {
	// Sampling parameters
	Temperature *float64 `json:"temperature,omitempty"` // Creativity (0.0-2.0)
	Seed        *int     `json:"seed,omitempty"`        // Random seed for reproducibility

	// Length parameters
	NumPredict *int `json:"num_predict,omitempty"` // Max tokens to generate
	NumCtx     *int `json:"num_ctx,omitempty"`     // Context window size
}

// MaxTokens returns NumPredict or fallback when unset.
func (o *Options) MaxTokens(fallback int) int {
	if o == nil || o.NumPredict == nil || *o.NumPredict <= 0 {
		return fallback
	}
	return *o.NumPredict
}
