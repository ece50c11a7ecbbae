package soul

import "log"

// debugEnabled gates verbose session logging. It is set from the Debug
// config flag at session construction and flipped only through
// Session.SetDebug; nothing else may write it.
var debugEnabled bool

func debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}
