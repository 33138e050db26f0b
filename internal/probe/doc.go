// Package probe drives the dialect test matrix against a live server.
//
// The actual SMB session establishment is delegated to a Connector, an
// opaque collaborator that answers exactly one question: can a client
// connect to this host under these constraints? The default Connector
// spawns the system smbclient binary; a test Connector is a function
// value. The Runner walks the policy matrix in order and probes every
// entry under both postures, collapsing any connector failure to
// "not connected".
package probe
