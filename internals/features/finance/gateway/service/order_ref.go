// file: internals/features/finance/gateway/service/order_ref.go
package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrBadOrderRef = errors.New("invalid gateway order reference")

func parseOrderID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, ErrBadOrderRef
	}
	return id, nil
}

// ParseGatewayOrderID membalikkan format "<order_uuid>.<unix>" dari
// CreateCheckout ke UUID order internal.
func ParseGatewayOrderID(raw string) (uuid.UUID, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(raw), ".")
	id, err := uuid.Parse(head)
	if err != nil {
		return uuid.Nil, ErrBadOrderRef
	}
	return id, nil
}
