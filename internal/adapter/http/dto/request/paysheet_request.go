package request

import (
	"strings"

	"proassignment/internal/domain/entities"
)

type MarkPaidRequest struct {
	Reference string `json:"reference"`
}

// ResolveKind defaults to writer sheets.
func ResolveKind(v string) entities.PaysheetKind {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return entities.PaysheetKindWriter
	}
	return entities.PaysheetKind(v)
}
