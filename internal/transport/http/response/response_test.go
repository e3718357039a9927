package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
)

func TestEnvelopeIsFlat(t *testing.T) {
	b, err := json.Marshal(OK("Clients retrieved successfully", Fields{"clients": []string{"a"}, "count": 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Clients retrieved successfully","clients":["a"],"count":1}`, string(b))

	b, err = json.Marshal(Error("Client not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Client not found"}`, string(b))
}

func TestEnvelopeKeepsReservedKeys(t *testing.T) {
	b, err := json.Marshal(OK("ok", Fields{"success": false, "message": "spoof"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"ok"}`, string(b))
}

func TestPaged(t *testing.T) {
	p := domain.NewPage([]int{4, 5}, domain.PageRequest{Page: 1, Size: 3}, 5)
	b, err := json.Marshal(Paged("Orders retrieved successfully", "orders", p))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true, "message": "Orders retrieved successfully",
		"orders": [4, 5], "totalElements": 5, "totalPages": 2,
		"currentPage": 1, "pageSize": 3, "hasNext": false, "hasPrevious": true
	}`, string(b))
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.Validation("x"), http.StatusBadRequest},
		{domain.Referential("x"), http.StatusBadRequest},
		{domain.Conflict("x"), http.StatusBadRequest},
		{domain.NotFound("x"), http.StatusNotFound},
		{domain.Unauthenticated("x"), http.StatusUnauthorized},
		{domain.Forbidden("x"), http.StatusForbidden},
		{fmt.Errorf("wrapped: %w", domain.NotFound("x")), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusOf(c.err), c.err.Error())
	}
}
