package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
)

// Service answers "may this role perform this action on this resource".
// Controllers consume it directly instead of hiding the checks inside
// route middleware, so the policy travels with the operation.
type Service struct {
	enforcer *casbin.Enforcer
}

// New loads the RBAC model and policy from the configured files.
func New(cfg *config.AuthzConfig) (*Service, error) {
	e, err := casbin.NewEnforcer(cfg.ModelPath, cfg.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("initialize policy enforcer: %w", err)
	}
	return &Service{enforcer: e}, nil
}

// NewWithEnforcer wraps a prebuilt enforcer (tests build one in memory).
func NewWithEnforcer(e *casbin.Enforcer) *Service {
	return &Service{enforcer: e}
}

// Can evaluates the policy for role/resource/action.
func (s *Service) Can(role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		return false, fmt.Errorf("policy check failed: %w", err)
	}
	return allowed, nil
}
