package insecurerand

import (
	crand "crypto/rand"
	"math/rand" // want "math/rand is forbidden, use crypto/rand"
)

func ID() byte {
	b := make([]byte, 1)
	_, _ = crand.Read(b)
	return b[0] ^ byte(rand.Intn(256))
}
