package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
info:
  name: Café Norte
  slogan: Tostado en casa
  whatsapp: "999888777"
  social:
    instagram: "@cafenorte"
menu:
  - id: "10"
    name: Americano
    price: 3.5
    category: bebida
    sizes:
      - name: Regular
        price: 3.5
      - name: Grande
        price: 4.5
testimonials:
  - id: "1"
    name: Rosa
    text: Delicioso
    rating: 5
gallery: []
`

func TestLoadSeed_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	data, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, "Café Norte", data.Info.Name)
	assert.Equal(t, "@cafenorte", data.Info.Social.Instagram)
	require.Len(t, data.Menu, 1)
	assert.Equal(t, 4.5, data.Menu[0].Sizes[1].Price)
	assert.Equal(t, 5, data.Testimonials[0].Rating)
}

func TestLoadSeed_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"info":{"name":"Café Sur"},"menu":[],"testimonials":[],"gallery":[]}`), 0o600))

	data, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, "Café Sur", data.Info.Name)
}

func TestLoadSeed_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	_, err := LoadSeed(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yml")
	require.NoError(t, os.WriteFile(invalid, []byte("info:\n  name: X\nmenu:\n  - name: Y\n    category: comida\n"), 0o600))
	_, err = LoadSeed(invalid)
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = LoadSeed(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
