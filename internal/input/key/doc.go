// Package key defines the platform-independent key identifiers used by every
// translator.
//
//   - Key: a semantic key id. Printable keys use the upper-case ASCII code
//     of their US-layout character, special keys start at 0x100.
//   - Modifier: the modifier flags attached to a key stroke.
//   - Table: a native-code to Key lookup used by the platform translators.
//
// # Non-ASCII keys
//
// Layout-dependent keys whose character falls outside ASCII are encoded as
// KeyNonASCII|code. Consumers test for them with Key.IsNonASCII.
package key
