package entity

import "time"

// Pools de identidades.
const (
	PoolCustomer = "customer"
	PoolAdmin    = "admin"
)

// PoolUser cuenta de un pool de identidades (customer o admin). Es el respaldo
// local del proveedor gestionado: el email es único por pool, Groups alimenta
// el claim de grupos del token y MustChangePassword fuerza el desafío de
// cambio de contraseña en el siguiente sign-in.
type PoolUser struct {
	ID                 string
	Pool               string // customer | admin
	Email              string
	PasswordHash       string // bcrypt, nunca plano en dominio después de persistir
	Name               string
	Groups             []string // ej: ["admin"], ["employee"]
	Status             string   // active, inactive
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
