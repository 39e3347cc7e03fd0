package model

// ProofGenerator renders a scannable encoding of a credential public id,
// deterministic for the same input.
type ProofGenerator interface {
	Render(text string) ([]byte, error)
}
