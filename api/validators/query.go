package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/sneakhead/sneakhead-backend/pkg/errors"
)

// RequiredQuery returns the trimmed query parameter or a validation error
// when it is absent.
func RequiredQuery(r *http.Request, key string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// OptionalQuery returns the trimmed query parameter, which may be empty.
func OptionalQuery(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
