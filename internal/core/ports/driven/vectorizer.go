package driven

// Vectorizer converts text into weighted term-frequency vectors over a
// fixed vocabulary.
//
// The vocabulary is built exactly once per instance, from the first
// corpus passed to FitTransform. Every later text, including whole new
// documents, is projected through that same vocabulary: unknown terms
// are dropped, never added. This fit-once behaviour keeps memory
// bounded at the cost of retrieval quality for texts whose vocabulary
// diverges from the fitted corpus. It is a deliberate, known
// limitation; callers wanting a new vocabulary build a new instance.
//
// No method performs network or disk I/O.
type Vectorizer interface {
	// FitTransform builds the vocabulary from texts if none exists yet,
	// then returns one weighted, L2-normalized vector per input.
	FitTransform(texts []string) ([][]float64, error)

	// Transform projects a single text through the existing vocabulary.
	// Returns domain.ErrNotFitted when no vocabulary has been built.
	Transform(text string) ([]float64, error)

	// Fitted reports whether a vocabulary has been built.
	Fitted() bool

	// Dimension returns the vocabulary size, 0 before fitting.
	Dimension() int
}
