// Package entities provides the host-native value types exchanged across the
// shim boundary: buffer views, register and blob descriptors, the host tri-state
// boolean and events.
//
// These types carry no validation logic. They exist so that functions outside
// internal/rawspan never handle raw integers that stand for memory.
package entities
