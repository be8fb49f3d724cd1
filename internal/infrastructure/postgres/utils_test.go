package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: codeUniqueViolation}

	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert pool user: %w", dup)),
		"debe reconocer el error aun envuelto")
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}),
		"otras violaciones de constraint no cuentan")
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
}
