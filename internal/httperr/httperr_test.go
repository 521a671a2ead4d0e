package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness("time_conflict"))

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "too_soon"))
	assert.False(t, IsBusiness(errors.New("time_conflict"), "time_conflict"))
	assert.Equal(t, "too_soon", ErrBusiness("too_soon").Error())
}

func TestIsConflict(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	exclusion := &pgconn.PgError{Code: "23P01"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsConflict(unique))
	assert.True(t, IsConflict(fmt.Errorf("insert: %w", exclusion)))
	assert.False(t, IsConflict(fk))
	assert.False(t, IsConflict(errors.New("boom")))
	assert.False(t, IsConflict(nil))
}
