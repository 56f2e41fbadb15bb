// Package hub builds the in-memory portrait index: every sprite the game's
// portrait metadata declares, grouped under the atlas that actually contains
// it, plus the canonical size each extracted portrait must be normalized to.
//
// The hub is built once per run from the raw metadata records and is
// read-only afterwards; the reconstruction engine consumes it without
// further synchronization.
package hub
