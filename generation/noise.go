package generation

// Squirrel noise hash constants
const (
	bitNoise1 uint32 = 0xB5297A4D
	bitNoise2 uint32 = 0x68E31DA4
	bitNoise3 uint32 = 0x1B56C4E9

	primeY = 198491317
	primeZ = 6542989
)

// Noise1D hashes a position and seed into a well mixed 32 bit value
func Noise1D(position int, seed uint32) uint32 {
	mangled := uint32(position)
	mangled *= bitNoise1
	mangled += seed
	mangled ^= mangled >> 8
	mangled += bitNoise2
	mangled ^= mangled << 8
	mangled *= bitNoise3
	mangled ^= mangled >> 8
	return mangled
}

// Noise2D hashes a 2D position
func Noise2D(x, y int, seed uint32) uint32 {
	return Noise1D(x+primeY*y, seed)
}

// Noise3D hashes a 3D position
func Noise3D(x, y, z int, seed uint32) uint32 {
	return Noise1D(x+primeY*y+primeZ*z, seed)
}

// NoiseSource is a math/rand source that walks the 1D noise function.
// Each value is a pure function of seed and position, so any draw can be
// reproduced without replaying the stream.
type NoiseSource struct {
	seed     uint32
	position int
}

// NewNoiseSource creates a source positioned at 0
func NewNoiseSource(seed int64) *NoiseSource {
	s := &NoiseSource{}
	s.Seed(seed)
	return s
}

// Seed resets the source to position 0 with a new seed
func (s *NoiseSource) Seed(seed int64) {
	s.seed = uint32(seed) ^ uint32(seed>>32)
	s.position = 0
}

// Uint64 returns the next 64 bits, built from two consecutive positions
func (s *NoiseSource) Uint64() uint64 {
	hi := Noise1D(s.position, s.seed)
	lo := Noise1D(s.position+1, s.seed)
	s.position += 2
	return uint64(hi)<<32 | uint64(lo)
}

// Int63 returns a non-negative 63 bit value
func (s *NoiseSource) Int63() int64 {
	return int64(s.Uint64() >> 1)
}
