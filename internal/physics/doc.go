// Package physics provides the ODE models integrated by the dynamo
// simulator. Each model implements [dynamo.System]; models with a tracked
// total energy also implement [dynamo.Hamiltonian], and models with runtime
// tunable parameters implement [dynamo.Configurable].
package physics
