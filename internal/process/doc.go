// Package process terminates browser process trees left behind by the
// snapshot renderer.
package process
