package populator

import "fmt"

// DefaultBatchSize is the number of rows sent per INSERT statement
const DefaultBatchSize = 1000

// Chunk splits items into consecutive slices of at most size elements
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size <= 0 {
		return nil, fmt.Errorf("batch size must be > 0, got %d", size)
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks, nil
}
