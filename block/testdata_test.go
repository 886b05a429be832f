package block

import "fmt"

// keyOf and valueOf mirror spec.md scenario S3's generators:
// key_of(i) = "key_" + zero-pad(i*5, 3), value_of(i) = "value_" + zero-pad(i, 10).
func keyOf(i int) []byte {
	return []byte(fmt.Sprintf("key_%03d", i*5))
}

func valueOf(i int) []byte {
	return []byte(fmt.Sprintf("value_%010d", i))
}

func hundredEntries() (keys, values [][]byte) {
	keys = make([][]byte, 100)
	values = make([][]byte, 100)
	for i := 0; i < 100; i++ {
		keys[i] = keyOf(i)
		values[i] = valueOf(i)
	}
	return keys, values
}
