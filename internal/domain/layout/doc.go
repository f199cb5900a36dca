// Package layout measures the area windows may occupy.
//
// The oracle asks a bound Source (normally the connected renderer) for
// the size of the window layout element and falls back to fixed bounds,
// 1920x1080 unless configured, when nothing is bound or measurable.
package layout
