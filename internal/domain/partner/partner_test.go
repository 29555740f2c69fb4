package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPartner(t *testing.T) {
	p, err := NewPartner(uuid.New(), " acme ", "Acme Corp", TypeSupplier)
	require.NoError(t, err)
	assert.Equal(t, "ACME", p.Code)
	assert.True(t, p.Active)

	_, err = NewPartner(uuid.New(), "acme corp", "Acme", TypeSupplier)
	require.Error(t, err)
}

func TestPartner_Update(t *testing.T) {
	p, _ := NewPartner(uuid.New(), "ACME", "Acme", TypeSupplier)

	require.NoError(t, p.Update("Acme Ltd", TypeLessor, "Billing@Acme.COM", " 555 ", "", "TX-1", false))
	assert.Equal(t, "billing@acme.com", p.Email)
	assert.Equal(t, "555", p.Phone)
	assert.False(t, p.Active)
	assert.Equal(t, 2, p.Version)

	require.Error(t, p.Update("Acme", TypeLessor, "not-an-email", "", "", "", true))
}

func TestParseType(t *testing.T) {
	pt, err := ParseType("")
	require.NoError(t, err)
	assert.Equal(t, TypeOther, pt)

	pt, err = ParseType("LESSEE")
	require.NoError(t, err)
	assert.Equal(t, TypeLessee, pt)

	_, err = ParseType("vendor")
	require.Error(t, err)
}
