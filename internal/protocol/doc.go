// Package protocol owns the scoreboard wire contract.
//
// Ownership boundary:
// - protocol versions and the features each one enables
// - message kinds and their version-resolved numeric identifiers
// - message variants with version-gated fields
// - the error taxonomy shared by the codec and entity layers
//
// Binary primitives live in protocol/wire, per-version encoders in
// protocol/codec.
package protocol
