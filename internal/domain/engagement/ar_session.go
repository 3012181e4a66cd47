package engagement

import (
	"github.com/google/uuid"

	"github.com/optivista/backend/internal/domain/shared"
)

const maxSnapshots = 20

// ARSession records a single virtual try-on session.
// Sessions are append-only; they are never updated after logging.
type ARSession struct {
	shared.BaseEntity
	UserID       uuid.UUID
	ProductID    uuid.UUID
	SnapshotURLs []string
	Metadata     map[string]string // device model, engine version, etc.
}

// NewARSession creates a new try-on session record
func NewARSession(userID, productID uuid.UUID, snapshotURLs []string, metadata map[string]string) (*ARSession, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if len(snapshotURLs) > maxSnapshots {
		return nil, shared.NewDomainError("INVALID_SNAPSHOTS", "Too many snapshots in one session")
	}
	for _, u := range snapshotURLs {
		if u == "" || len(u) > 500 {
			return nil, shared.NewDomainError("INVALID_SNAPSHOTS", "Snapshot URLs must be non-empty and at most 500 characters")
		}
	}

	if snapshotURLs == nil {
		snapshotURLs = make([]string, 0)
	}
	if metadata == nil {
		metadata = make(map[string]string)
	}

	return &ARSession{
		BaseEntity:   shared.NewBaseEntity(),
		UserID:       userID,
		ProductID:    productID,
		SnapshotURLs: snapshotURLs,
		Metadata:     metadata,
	}, nil
}
