package enums

import "fmt"

// Role is the employee role tag that drives authorization decisions.
type Role string

const (
	RoleOwner                 Role = "OWNER"
	RoleAdminGeneral          Role = "ADMIN_GENERAL"
	RoleAtCliente             Role = "AT_CLIENTE"
	RoleEncargadoPagoMexico   Role = "ENCARGADO_PAGO_MEXICO"
	RoleEncargadoPagoPeru     Role = "ENCARGADO_PAGO_PERU"
	RoleEncargadoPagoColombia Role = "ENCARGADO_PAGO_COLOMBIA"
	RoleEncargadoPagoZelle    Role = "ENCARGADO_PAGO_ZELLE"
	RoleEmpleado              Role = "EMPLEADO"
)

var validRoles = []Role{
	RoleOwner,
	RoleAdminGeneral,
	RoleAtCliente,
	RoleEncargadoPagoMexico,
	RoleEncargadoPagoPeru,
	RoleEncargadoPagoColombia,
	RoleEncargadoPagoZelle,
	RoleEmpleado,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
