package registry

import "fmt"

// maxReadAttempts bounds retries for values that keep growing between reads.
const maxReadAttempts = 3

// readSized reads a value whose size is only known after asking. get fills
// buf and returns the byte count and kind; when buf is too small it returns
// an error together with the size it needs, and the read is retried with a
// buffer of that size.
func readSized(get func(buf []byte) (int, uint32, error)) ([]byte, ValueKind, error) {
	var buf []byte
	for attempt := 0; attempt < maxReadAttempts; attempt++ {
		n, kind, err := get(buf)
		if err == nil {
			if n > len(buf) {
				// 仅查询长度时 buf 为空
				buf = make([]byte, n)
				continue
			}
			return buf[:n], ValueKind(kind), nil
		}
		if n <= len(buf) {
			return nil, 0, err
		}
		buf = make([]byte, n)
	}
	return nil, 0, fmt.Errorf("value still growing after %d reads", maxReadAttempts)
}
