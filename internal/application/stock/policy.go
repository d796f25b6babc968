package stock

import (
	"fmt"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// Capability es un permiso nombrado que se evalúa antes de cualquier mutación.
type Capability string

// Capacidades del motor de stock.
const (
	CapAdjustInventory     Capability = "adjust_inventory"
	CapRequestPurchase     Capability = "request_purchase"
	CapApprovePurchase     Capability = "approve_purchase"
	CapAutoApprovePurchase Capability = "auto_approve_purchase"
	CapProduce             Capability = "produce"
	CapRecordLoss          Capability = "record_loss"
	CapRecordSale          Capability = "record_sale"
	CapCreateProduct       Capability = "create_product"
	CapViewAudit           Capability = "view_audit"
)

// Policy decide si un actor tiene una capacidad.
type Policy interface {
	Allows(actor entity.Actor, c Capability) bool
}

// RolePolicy asigna capacidades a nombres de rol.
type RolePolicy map[Capability]map[string]struct{}

var _ Policy = RolePolicy(nil)

// NewRolePolicy construye la política a partir de capacidad -> roles.
func NewRolePolicy(roles map[Capability][]string) RolePolicy {
	p := make(RolePolicy, len(roles))
	for c, names := range roles {
		set := make(map[string]struct{}, len(names))
		for _, n := range names {
			set[n] = struct{}{}
		}
		p[c] = set
	}
	return p
}

// DefaultRolePolicy es la asignación de roles del negocio.
func DefaultRolePolicy() RolePolicy {
	all := []string{entity.RoleManager, entity.RoleSupervisor, entity.RoleBaker, entity.RoleCashier}
	return NewRolePolicy(map[Capability][]string{
		CapAdjustInventory:     {entity.RoleManager},
		CapRequestPurchase:     {entity.RoleManager, entity.RoleSupervisor},
		CapApprovePurchase:     {entity.RoleManager},
		CapAutoApprovePurchase: {entity.RoleManager},
		CapProduce:             {entity.RoleManager},
		CapRecordLoss:          {entity.RoleManager, entity.RoleSupervisor},
		CapRecordSale:          all,
		CapCreateProduct:       {entity.RoleManager, entity.RoleSupervisor, entity.RoleBaker},
		CapViewAudit:           {entity.RoleManager, entity.RoleSupervisor},
	})
}

// Allows implementa Policy. Un actor sin rol no tiene ninguna capacidad.
func (p RolePolicy) Allows(actor entity.Actor, c Capability) bool {
	if actor.Role == "" {
		return false
	}
	_, ok := p[c][actor.Role]
	return ok
}

func authorize(p Policy, actor entity.Actor, c Capability) error {
	if actor.UserID == "" {
		return domain.ErrUnauthorized
	}
	if !p.Allows(actor, c) {
		return fmt.Errorf("%w: el rol %q no tiene la capacidad %s", domain.ErrForbidden, actor.Role, c)
	}
	return nil
}
