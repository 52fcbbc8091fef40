package domain

// SearchOptions configures a remedy search.
type SearchOptions struct {
	// Limit is the maximum number of chunks considered for remedy
	// extraction. Corresponds to the `k` field of the search request.
	Limit int

	// MaxRemedies caps the number of remedies in the response.
	// Zero means the service default.
	MaxRemedies int
}

// ScoredChunk pairs a chunk with its keyword relevance score.
type ScoredChunk struct {
	Chunk Chunk

	// Score is the keyword overlap score: per-word occurrence counts
	// plus fixed bonuses for remedy vocabulary.
	Score int
}
