package retro

import (
	"fmt"
	"os"
)

// debugLog prints the frame's input stats to stderr. Frames without any
// pointer activity are skipped.
func (c *Canvas) debugLog() {
	if !c.debug {
		return
	}
	st := c.manager.stats
	if st.samples == 0 && st.emitted == 0 && st.spawned == 0 && st.removed == 0 {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[retro] frame %d | samples: %d | events: %d | out of view: %d | spawned: %d | despawned: %d | live: %d\n",
		c.frame, st.samples, st.emitted, st.dropped, st.spawned, st.removed, len(c.manager.registry.live))
}
