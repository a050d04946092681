package common

import (
	"crypto/rand"
	"math/big"
)

// RandomDigits returns an n-digit decimal string, e.g. for upload file names.
func RandomDigits(n int) (string, error) {
	const digits = "0123456789"
	out := make([]byte, n)
	for i := range out {
		v, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		out[i] = digits[v.Int64()]
	}
	return string(out), nil
}
