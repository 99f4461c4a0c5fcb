// ABOUTME: Encoder abstraction over the external embedding model
// ABOUTME: Implementations turn batches of strings into fixed-dimension vectors
package embedding

import "context"

// Encoder converts text into fixed-dimension float vectors. Encode is
// deterministic for a given model version and returns one vector per input
// string, in order.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}
