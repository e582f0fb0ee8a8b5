// Package robot implements the platform capability interfaces on top of
// robotgo. It is intentionally thin: screen capture, synthetic input and
// clipboard access map 1:1 onto robotgo calls, and window enumeration
// reports one top-level window per matching process, which is all the
// single-application lifecycle model needs.
//
// All matching rules (exact/suffix title filtering, impostor exclusion,
// dialog detection) live above this package in internal/winstate so they
// can be exercised against fakes.
package robot
