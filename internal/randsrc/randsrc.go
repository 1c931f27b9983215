package randsrc

import "encoding/binary"

// Uint64 returns a single random uint64 drawn from Read.
func Uint64() (uint64, error) {
	var buf [8]byte
	if err := Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// UniformUint64 returns a value drawn uniformly from [0, bound) by
// rejection sampling: draws landing in the trailing partial bucket of the
// uint64 range (the one that would bias a plain `Uint64() % bound` toward
// the low end) are discarded and redrawn.
func UniformUint64(bound uint64) (uint64, error) {
	if bound == 0 {
		panic("randsrc: UniformUint64 requires a positive bound")
	}
	limit := ^uint64(0) - (^uint64(0) % bound)
	for {
		v, err := Uint64()
		if err != nil {
			return 0, err
		}
		if v < limit {
			return v % bound, nil
		}
	}
}
