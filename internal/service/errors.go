package service

import (
	"fmt"
	"strings"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/order"
)

// ValidationError reports missing or malformed input fields. Never retried.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "campos inválidos: " + strings.Join(e.Fields, ", ")
}

// PermissionError means the caller's role lacks the required permission.
type PermissionError struct {
	Resource string
	Action   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permiso denegado: %s:%s", e.Resource, e.Action)
}

// StateConflictError rejects a transition the order's current state does
// not allow.
type StateConflictError struct {
	OrderID int64
	Current order.Status
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("el pedido %d no admite esa operación en estado %q", e.OrderID, e.Current.Name())
}
