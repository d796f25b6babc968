package entity

// Roles conocidos del negocio.
const (
	RoleManager    = "Gerente"
	RoleSupervisor = "Encargado"
	RoleBaker      = "Panadero"
	RoleCashier    = "Cajero"
)

// Actor es la identidad autenticada que origina una mutación.
type Actor struct {
	UserID string
	Role   string
}
