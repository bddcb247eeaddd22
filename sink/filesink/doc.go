// Package filesink provides a size-rotated file sink.
//
// Rotation is delegated to lumberjack: once the active file would exceed
// MaxSizeMB it is renamed with a timestamp and a fresh file is opened,
// keeping at most MaxBackups old files. Writes go through a
// zapcore.BufferedWriteSyncer, so records sit in memory until the buffer
// fills, FlushInterval elapses or Flush is called.
package filesink
