package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParty(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates an active party", func(t *testing.T) {
		p, err := NewParty(tenantID, "Aceros del Norte", false, true)

		require.NoError(t, err)
		assert.True(t, p.Active)
		assert.False(t, p.IsCustomer)
		assert.True(t, p.IsSupplier)
		assert.Equal(t, tenantID, p.TenantID)
	})

	t.Run("allows both roles", func(t *testing.T) {
		p, err := NewParty(tenantID, "Comercial Lopez", true, true)
		require.NoError(t, err)
		assert.True(t, p.IsCustomer)
		assert.True(t, p.IsSupplier)
	})

	t.Run("fails with no role", func(t *testing.T) {
		_, err := NewParty(tenantID, "Sin Rol SA", false, false)
		assert.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewParty(tenantID, "", true, false)
		assert.Error(t, err)
	})
}

func TestParty_SetRoles(t *testing.T) {
	p, err := NewParty(uuid.New(), "Aceros del Norte", true, false)
	require.NoError(t, err)

	t.Run("cannot drop every role", func(t *testing.T) {
		assert.Error(t, p.SetRoles(false, false))
		assert.True(t, p.IsCustomer)
	})

	t.Run("switches roles", func(t *testing.T) {
		require.NoError(t, p.SetRoles(false, true))
		assert.False(t, p.IsCustomer)
		assert.True(t, p.IsSupplier)
	})
}

func TestParty_Deactivate(t *testing.T) {
	p, err := NewParty(uuid.New(), "Aceros del Norte", true, false)
	require.NoError(t, err)

	p.Deactivate()
	assert.False(t, p.Active)

	p.Activate()
	assert.True(t, p.Active)
}

func TestNewWarehouse(t *testing.T) {
	t.Run("creates an active warehouse", func(t *testing.T) {
		w, err := NewWarehouse(uuid.New(), "Central", "CEN")
		require.NoError(t, err)
		assert.True(t, w.Active)
		assert.False(t, w.IsDefault)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewWarehouse(uuid.New(), "", "CEN")
		assert.Error(t, err)
	})
}
