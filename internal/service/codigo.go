package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

// GeneradorCodigo produces a purchase code. Injected into CompraService so
// tests can force collisions; production uses GenerarCodigoCompra.
type GeneradorCodigo func() string

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerarCodigoCompra returns a human-legible purchase code of the form
// C-<unix-millis>-<5 random base36 chars>. The millisecond component plus the
// random suffix make same-tick collisions overwhelmingly unlikely; the unique
// index on compras.cod_compra is the actual correctness backstop.
func GenerarCodigoCompra() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// clock so the code is still well-formed.
		for i := range buf {
			buf[i] = byte(time.Now().UnixNano() >> (i * 8))
		}
	}
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return fmt.Sprintf("C-%d-%s", time.Now().UnixMilli(), buf)
}
