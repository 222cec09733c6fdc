package helpers

import (
	"net/http"

	"github.com/google/uuid"

	"passin/internal/domain"
)

// canonicalUUIDLen is the length of the 8-4-4-4-12 textual form.
const canonicalUUIDLen = 36

// ParseUUIDPathValue reads the named path value and parses it as a canonical
// (8-4-4-4-12, hex, any case) UUID. Braced, URN and undashed forms are rejected.
// On failure it returns a *domain.ValidationError naming the parameter.
func ParseUUIDPathValue(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return uuid.Nil, &domain.ValidationError{Field: name, Reason: "is required"}
	}
	if len(raw) != canonicalUUIDLen {
		return uuid.Nil, &domain.ValidationError{Field: name, Reason: "must be a UUID"}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &domain.ValidationError{Field: name, Reason: "must be a UUID"}
	}
	return id, nil
}
