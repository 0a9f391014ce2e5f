package images_test

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/infrastructure/images"
)

func newMemStore(t *testing.T) *images.Store {
	t.Helper()
	store, err := images.NewStore(afero.NewMemMapFs(), "/uploads")
	require.NoError(t, err)
	return store
}

// Guardar asigna un nombre aleatorio conservando la extensión original.
func TestSave_NombreAleatorioConExtension(t *testing.T) {
	store := newMemStore(t)

	name, err := store.Save(strings.NewReader("png-bytes"), "foto producto.PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".png"), "conserva la extensión en minúsculas")
	assert.NotContains(t, name, " ", "el nombre original no se reutiliza")
	assert.NotContains(t, name, "-", "uuid sin guiones")
	assert.True(t, store.Exists(name))
}

// Dos guardados del mismo archivo no colisionan.
func TestSave_SinColisiones(t *testing.T) {
	store := newMemStore(t)

	a, err := store.Save(strings.NewReader("uno"), "img.jpg")
	require.NoError(t, err)
	b, err := store.Save(strings.NewReader("dos"), "img.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, store.Exists(a))
	assert.True(t, store.Exists(b))
}

// Extensión fuera de la lista -> ErrInvalidInput, no se escribe nada.
func TestSave_ExtensionNoPermitida(t *testing.T) {
	store := newMemStore(t)

	for _, name := range []string{"script.exe", "nota.txt", "sin-extension", "doble.jpg.sh"} {
		_, err := store.Save(strings.NewReader("x"), name)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

// Borrar una imagen existente la quita del directorio.
func TestDelete(t *testing.T) {
	store := newMemStore(t)

	name, err := store.Save(strings.NewReader("bytes"), "img.gif")
	require.NoError(t, err)

	require.NoError(t, store.Delete(name))
	assert.False(t, store.Exists(name))
}

// Borrar un nombre vacío o un archivo ausente no es error (borrado idempotente).
func TestDelete_AusenteNoEsError(t *testing.T) {
	store := newMemStore(t)

	assert.NoError(t, store.Delete(""))
	assert.NoError(t, store.Delete("nunca-existio.jpg"))
}

// Un nombre con rutas no puede salir del directorio de uploads.
func TestDelete_PathTraversal(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/passwd.jpg", []byte("fuera"), 0o644))
	store, err := images.NewStore(fs, "/uploads")
	require.NoError(t, err)

	require.NoError(t, store.Delete("../etc/passwd.jpg"))

	exists, err := afero.Exists(fs, "/etc/passwd.jpg")
	require.NoError(t, err)
	assert.True(t, exists, "el archivo fuera del directorio no debe tocarse")
}
