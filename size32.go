//go:build !(amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x || wasm)

package settled

// DefaultReservationSize is the default size of an arena's address-space
// reservation (1 GiB on 32-bit platforms).
const DefaultReservationSize = 1 << 30
