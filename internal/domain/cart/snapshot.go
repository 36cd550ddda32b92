// internal/domain/cart/snapshot.go
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/pos-backend/internal/pkg/types"
)

// snapshotVersion is bumped whenever the persisted shape changes
const snapshotVersion = 1

// ErrCorruptSnapshot is returned when a persisted cart cannot be restored
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

type snapshot struct {
	Version int       `json:"version"`
	Lines   []Line    `json:"lines"`
	SavedAt time.Time `json:"saved_at"`
}

// Encode serialises the cart for persistence
func Encode(c *Cart, savedAt time.Time) ([]byte, error) {
	lines := c.Lines()
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(snapshot{
		Version: snapshotVersion,
		Lines:   lines,
		SavedAt: savedAt.UTC(),
	})
}

// Decode restores a cart from Encode output. Snapshots that break the cart
// invariants are rejected rather than repaired.
func Decode(data []byte) (*Cart, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, snap.Version)
	}

	seenVariants := make(map[types.ID]struct{}, len(snap.Lines))
	seenLines := make(map[string]struct{}, len(snap.Lines))
	for _, line := range snap.Lines {
		if line.LineID == "" || line.ID.IsZero() {
			return nil, fmt.Errorf("%w: line without id", ErrCorruptSnapshot)
		}
		if _, dup := seenVariants[line.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate variant %s", ErrCorruptSnapshot, line.ID)
		}
		if _, dup := seenLines[line.LineID]; dup {
			return nil, fmt.Errorf("%w: duplicate line %s", ErrCorruptSnapshot, line.LineID)
		}
		if line.Quantity < 1 || line.Quantity > line.StockQuantity {
			return nil, fmt.Errorf("%w: line %s quantity %d outside 1..%d",
				ErrCorruptSnapshot, line.LineID, line.Quantity, line.StockQuantity)
		}
		seenVariants[line.ID] = struct{}{}
		seenLines[line.LineID] = struct{}{}
	}

	c := New()
	if len(snap.Lines) > 0 {
		c.lines = snap.Lines
	}
	return c, nil
}
