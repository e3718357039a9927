package response

import (
	"net/http"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
)

// StatusOf maps an error's kind onto the HTTP status it is reported with.
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindReferential, domain.KindConflict:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAuthentication:
		return http.StatusUnauthorized
	case domain.KindAuthorization:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
