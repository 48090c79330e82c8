package batch

import (
	"time"

	"github.com/google/uuid"
)

// Batch is a user-defined label grouping products that arrived together. It
// carries no stock semantics of its own; deleting a batch orphans its
// products rather than deleting them.
type Batch struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBatchRequest is the payload for creating a batch.
type CreateBatchRequest struct {
	Name string `json:"name"`
}
