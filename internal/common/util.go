package common

// WipeByteArray overwrites every byte of the slice with zeros. Used to remove
// passwords from memory as soon as they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
