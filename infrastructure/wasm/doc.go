// Package wasm binds the guest side of the module to the host's imports.
//
// ImportHost implements ports.Environment by calling the "env" imports the
// host runtime provides. It is only functional when compiled for wasip1;
// native builds get a stub that panics on use.
package wasm
