package authz

import "github.com/omega-store/omega-backend/pkg/enums"

// Permission names a capability an operation requires. Route handlers check
// permissions through Allowed instead of repeating role allow-lists inline.
type Permission string

const (
	PermSalesCreate     Permission = "sales.create"
	PermSalesRead       Permission = "sales.read"
	PermDeliveriesRead  Permission = "deliveries.read"
	PermDeliveriesWrite Permission = "deliveries.write"
	PermPaymentsCreate  Permission = "payments.create"
	PermPaymentsRead    Permission = "payments.read"
	PermPaymentsReview  Permission = "payments.review"
	PermOrdersRead      Permission = "orders.read"
	PermOrdersWrite     Permission = "orders.write"
	PermEmployeesManage Permission = "employees.manage"
	PermTasksManage     Permission = "tasks.manage"
	PermTasksRead       Permission = "tasks.read"
	PermChatUse         Permission = "chat.use"
	PermCalendarUse     Permission = "calendar.use"
	PermTimeClockUse    Permission = "timeclock.use"
)

var paymentHandlerRoles = []enums.Role{
	enums.RoleEncargadoPagoMexico,
	enums.RoleEncargadoPagoPeru,
	enums.RoleEncargadoPagoColombia,
	enums.RoleEncargadoPagoZelle,
}

// grants is the single capability table. Admin-level roles get the union of
// everything; the remaining roles are listed explicitly per permission.
var grants = buildGrants()

func buildGrants() map[enums.Role]map[Permission]struct{} {
	table := map[enums.Role][]Permission{
		enums.RoleOwner: {
			PermSalesCreate, PermSalesRead,
			PermDeliveriesRead, PermDeliveriesWrite,
			PermPaymentsCreate, PermPaymentsRead, PermPaymentsReview,
			PermOrdersRead, PermOrdersWrite,
			PermEmployeesManage,
			PermTasksManage, PermTasksRead,
			PermChatUse, PermCalendarUse, PermTimeClockUse,
		},
		enums.RoleAtCliente: {
			PermSalesCreate, PermSalesRead,
			PermDeliveriesRead, PermDeliveriesWrite,
			PermPaymentsCreate, PermPaymentsRead,
			PermOrdersRead, PermOrdersWrite,
			PermTasksRead,
			PermChatUse, PermCalendarUse, PermTimeClockUse,
		},
		enums.RoleEmpleado: {
			PermSalesCreate, PermSalesRead,
			PermPaymentsCreate, PermPaymentsRead,
			PermOrdersRead,
			PermTasksRead,
			PermChatUse, PermCalendarUse, PermTimeClockUse,
		},
	}
	table[enums.RoleAdminGeneral] = table[enums.RoleOwner]

	for _, role := range paymentHandlerRoles {
		table[role] = []Permission{
			PermSalesRead,
			PermPaymentsCreate, PermPaymentsRead, PermPaymentsReview,
			PermOrdersRead,
			PermTasksRead,
			PermChatUse, PermCalendarUse, PermTimeClockUse,
		}
	}

	out := make(map[enums.Role]map[Permission]struct{}, len(table))
	for role, perms := range table {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		out[role] = set
	}
	return out
}

// Allowed reports whether the role holds the named permission. Unknown roles
// hold nothing.
func Allowed(role enums.Role, perm Permission) bool {
	set, ok := grants[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// RolesWith returns every role holding the permission, for diagnostics.
func RolesWith(perm Permission) []enums.Role {
	var roles []enums.Role
	for role, set := range grants {
		if _, ok := set[perm]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}
