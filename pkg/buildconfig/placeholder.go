package buildconfig

import (
	"strings"
)

// placeholderToken is the repeated filler appended to the build prefix.
// Compiled artifacts embed the padded prefix; relocation later overwrites
// it byte-for-byte with the real install path, which only works when every
// padded prefix has the same fixed length.
const placeholderToken = "_placehold"

// padPrefix pads stub with placeholder tokens and truncates to exactly
// length characters. A stub already at or past the target length is
// returned unchanged, never truncated.
//
// Postcondition: len(result) == length when len(stub) < length, else
// result == stub.
func padPrefix(stub string, length int) string {
	remaining := length - len(stub)
	if remaining <= 0 {
		return stub
	}
	// One extra repetition guarantees the concatenation overshoots the
	// target before truncation.
	repeats := (remaining+len(placeholderToken)-1)/len(placeholderToken) + 1
	padded := stub + strings.Repeat(placeholderToken, repeats)
	return padded[:length]
}
