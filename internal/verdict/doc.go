// Package verdict classifies probe outcomes against the dialect policy
// and folds every judgment into a single run-level warning flag.
//
// The classification is deliberately asymmetric. Under the hardened
// posture, accepting a dialect that should be refused is a security
// warning, while refusing a dialect that should be supported is only an
// informational miss and never raises the run-level flag. Under the
// weakened posture any successful connection is a warning, because it
// proves the server will downgrade to legacy authentication.
package verdict
