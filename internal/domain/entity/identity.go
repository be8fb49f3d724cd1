package entity

// Roles con trato especial en el storefront.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Identity es el usuario autenticado ya normalizado: username resuelto,
// email y roles en minúsculas. La ausencia de sesión se representa con
// *Identity nil, que es un estado válido y no un error.
type Identity struct {
	Username string
	Email    string
	Roles    []string
}

// Equal indica si ambas identidades son la misma persona con los mismos
// roles. Dos ausencias (nil) son iguales; un cambio de roles cuenta como
// identidad distinta, porque cambia quién puede tener carrito persistido.
func (i *Identity) Equal(other *Identity) bool {
	if i == nil || other == nil {
		return i == other
	}
	if i.Username != other.Username || i.Email != other.Email {
		return false
	}
	if len(i.Roles) != len(other.Roles) {
		return false
	}
	for k, r := range i.Roles {
		if other.Roles[k] != r {
			return false
		}
	}
	return true
}

// HasRole indica si la identidad tiene el rol (ya normalizado a minúsculas).
func (i *Identity) HasRole(role string) bool {
	if i == nil {
		return false
	}
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin indica si la identidad pertenece al grupo admin.
func (i *Identity) IsAdmin() bool { return i.HasRole(RoleAdmin) }

// IsEmployee indica si la identidad pertenece al grupo employee.
func (i *Identity) IsEmployee() bool { return i.HasRole(RoleEmployee) }

// IsPrivileged indica admin o employee: identidades que nunca tienen un
// carrito de cliente persistido.
func (i *Identity) IsPrivileged() bool { return i.IsAdmin() || i.IsEmployee() }
