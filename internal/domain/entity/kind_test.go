package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func TestParseEntityKind(t *testing.T) {
	cases := []struct {
		in   string
		want entity.EntityKind
	}{
		{"brand", entity.KindBrand},
		{"category", entity.KindCategory},
		{"product", entity.KindProduct},
	}
	for _, tc := range cases {
		got, err := entity.ParseEntityKind(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.in, got.String(), "String es el inverso del parse")
	}
}

func TestParseEntityKind_Invalido(t *testing.T) {
	for _, in := range []string{"", "Brand", "marca", "products", "BRAND", "brand "} {
		_, err := entity.ParseEntityKind(in)
		assert.ErrorIs(t, err, domain.ErrInvalidEntityKind, "%q debe rechazarse", in)
	}
}

// product no tiene listado propio en la tienda: solo brand y category son listables.
func TestParseListableKind(t *testing.T) {
	_, err := entity.ParseListableKind("brand")
	assert.NoError(t, err)
	_, err = entity.ParseListableKind("category")
	assert.NoError(t, err)

	_, err = entity.ParseListableKind("product")
	assert.ErrorIs(t, err, domain.ErrInvalidEntityKind)
	_, err = entity.ParseListableKind("otra-cosa")
	assert.ErrorIs(t, err, domain.ErrInvalidEntityKind)
}
