// Package capability implements the shared language-model backend used by
// every part of the research pipeline.
//
// The backend exposes a single operation: given a persona instruction and a
// user message, return natural-language text. The decomposer, every research
// engine and the synthesizer all route through the same [Client]; engines
// differ only in the persona instruction they pass.
//
// # Credential Handling
//
// The client is constructed with the credential from process configuration;
// no component reads ambient environment state directly. A missing credential
// is not an error: [Client.Complete] returns [NotConfiguredMessage] as an
// ordinary successful completion, so the pipeline proceeds with a visible
// notice per engine instead of failing.
//
// # Error Mapping
//
// Upstream failures are returned as [errors.CapabilityError] values carrying
// the HTTP status code. Authentication, rate-limit and server-side failures
// wrap the corresponding sentinel errors so callers can classify them. The
// client never retries; retry policy is deliberately out of scope.
package capability
