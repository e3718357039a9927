package response

import (
	"encoding/json"

	"github.com/khaoulaLakhdim/orders-management/internal/domain"
)

// Fields are the payload keys merged into the envelope next to success and
// message, e.g. "client", "orders", "count".
type Fields map[string]any

// Resp is the envelope every endpoint answers with.
type Resp struct {
	Success bool
	Message string
	Data    Fields
}

func (r Resp) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Data)+2)
	for k, v := range r.Data {
		m[k] = v
	}
	m["success"] = r.Success
	m["message"] = r.Message
	return json.Marshal(m)
}

func OK(msg string, data Fields) Resp { return Resp{Success: true, Message: msg, Data: data} }

func Error(msg string) Resp { return Resp{Message: msg} }

// Paged lays out one page of items under key together with its metadata.
func Paged[T any](msg, key string, p domain.Page[T]) Resp {
	return OK(msg, Fields{
		key:             p.Content,
		"totalElements": p.TotalElements,
		"totalPages":    p.TotalPages(),
		"currentPage":   p.Number,
		"pageSize":      p.Size,
		"hasNext":       p.HasNext(),
		"hasPrevious":   p.HasPrevious(),
	})
}
