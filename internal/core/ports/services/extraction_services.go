package services

import (
	"context"

	"github.com/uneural/treasury_backend/internal/dto"
)

// TransactionExtractor is the boundary to the external extraction
// service. One round-trip, no partial results: it either returns a
// structured payload or fails as a unit. Implementations must honor
// context cancellation while the round-trip is in flight.
type TransactionExtractor interface {
	ExtractTransaction(ctx context.Context, input dto.ExtractionInput) (*dto.ExtractedTransaction, error)
}
