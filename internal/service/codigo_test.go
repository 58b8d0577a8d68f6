package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codigoPattern = regexp.MustCompile(`^C-\d{13}-[0-9a-z]{5}$`)

func TestGenerarCodigoCompra_Formato(t *testing.T) {
	cod := GenerarCodigoCompra()
	require.Regexp(t, codigoPattern, cod)
}

func TestGenerarCodigoCompra_SinColisionesEnElMismoTick(t *testing.T) {
	// Two calls inside the same millisecond must still differ thanks to the
	// random suffix.
	vistos := make(map[string]struct{}, 500)
	for i := 0; i < 500; i++ {
		cod := GenerarCodigoCompra()
		_, repetido := vistos[cod]
		assert.False(t, repetido, "código repetido: %s", cod)
		vistos[cod] = struct{}{}
	}
}
