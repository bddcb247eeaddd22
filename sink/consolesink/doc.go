// Package consolesink provides a terminal sink.
//
// The sink writes to stdout by default and paints the pattern's color
// range (%^ ... %$) with a per-level color. In ColorAuto mode color is
// used only when the writer is a terminal and NO_COLOR is unset.
package consolesink
