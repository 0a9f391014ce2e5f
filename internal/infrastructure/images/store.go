// Package images guarda las imágenes subidas de productos bajo un nombre
// aleatorio y las elimina cuando el producto cambia de imagen o se borra.
// El filesystem va detrás de afero para poder testear con MemMapFs.
package images

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/spf13/afero"
)

// Extensiones aceptadas para imágenes de producto.
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".svg":  true,
	".gif":  true,
}

// Store almacena imágenes en un directorio plano.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore construye el store sobre un afero.Fs (tests usan MemMapFs).
func NewStore(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

// NewDiskStore construye el store sobre el disco real.
func NewDiskStore(dir string) (*Store, error) {
	return NewStore(afero.NewOsFs(), dir)
}

// Dir devuelve el directorio de almacenamiento.
func (s *Store) Dir() string { return s.dir }

// Save guarda el contenido bajo un nombre aleatorio (uuid sin guiones) conservando
// la extensión original. El nombre generado evita colisiones y path traversal.
// Extensión no permitida -> domain.ErrInvalidInput.
func (s *Store) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !allowedExts[ext] {
		return "", domain.ErrInvalidInput
	}
	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext

	f, err := s.fs.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("crear archivo de imagen: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		_ = s.fs.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("escribir imagen: %w", err)
	}
	return name, nil
}

// SaveMultipart abre el archivo del form multipart y delega en Save.
func (s *Store) SaveMultipart(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer src.Close()
	return s.Save(src, fh.Filename)
}

// Delete elimina una imagen si existe. Nombre vacío o archivo ya ausente no es error.
func (s *Store) Delete(name string) error {
	if name == "" {
		return nil
	}
	// filepath.Base corta cualquier intento de salir del directorio
	err := s.fs.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar imagen: %w", err)
	}
	return nil
}

// Exists indica si la imagen está en el directorio.
func (s *Store) Exists(name string) bool {
	if name == "" {
		return false
	}
	ok, err := afero.Exists(s.fs, filepath.Join(s.dir, filepath.Base(name)))
	return err == nil && ok
}
