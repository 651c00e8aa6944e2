package roomcode

import "math/rand"

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	length   = 4
)

// Generate returns a fresh room code that inUse reports as free. Codes are
// only unique against rooms that are live at the moment of generation; a
// code may be reissued after its room empties out.
func Generate(inUse func(string) bool) string {
	for {
		code := random()
		if !inUse(code) {
			return code
		}
	}
}

func random() string {
	code := make([]byte, length)
	for i := range code {
		code[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(code)
}
