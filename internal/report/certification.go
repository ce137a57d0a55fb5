package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// certPrefix marks ids issued by this pipeline.
const certPrefix = "GCR"

// Certification asserts that a report was produced by this pipeline.
// Generated fresh per request and not persisted here. The id combines a
// wall-clock timestamp with a random fragment; it is collision-unlikely but
// makes no global-uniqueness claim.
type Certification struct {
	ID          string    `json:"certification_id"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewCertification issues a certification record for the given instant.
func NewCertification(now time.Time) Certification {
	return Certification{
		ID:          fmt.Sprintf("%s-%d-%s", certPrefix, now.UnixMilli(), uuid.NewString()[:8]),
		GeneratedAt: now,
	}
}
