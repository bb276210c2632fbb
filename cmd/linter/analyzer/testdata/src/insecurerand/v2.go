package insecurerand

import "math/rand/v2" // want "math/rand/v2 is forbidden, use crypto/rand"

func Other() int {
	return rand.IntN(10)
}
