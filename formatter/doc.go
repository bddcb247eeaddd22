// Package formatter turns records into text using spdlog-style patterns.
//
// A pattern is compiled once by NewPattern into a list of literal and flag
// items, so rendering is a single pass that appends into a caller-owned
// bytes.Buffer. Time parts use Go's Append-style functions
// (time.AppendFormat, strconv.AppendInt) to stay allocation-free.
//
// Supported flags:
//
//	%v  message             %l  level name        %L  level letter
//	%n  logger name         %Y  year (2006)       %y  year (06)
//	%m  month (01)          %d  day (02)          %H  hour (15)
//	%I  hour (03)           %M  minute            %S  second
//	%p  AM/PM               %e  milliseconds      %f  microseconds
//	%F  nanoseconds         %T  %H:%M:%S          %D  %m/%d/%y
//	%a  weekday (Mon)       %A  weekday (Monday)  %b  month (Jan)
//	%B  month (January)     %z  UTC offset        %E  epoch seconds
//	%s  short source file   %g  full source file  %#  source line
//	%!  function name       %@  file:line         %P  process id
//	%^  start color range   %$  end color range   %%  literal percent
//
// Unknown flags are rendered verbatim. Every rendered record ends with a
// newline.
//
// The color range is reported back to the caller rather than rendered,
// so only sinks that paint (the console sink) pay for escape sequences.
package formatter
