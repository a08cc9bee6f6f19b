// notifier.go - Best-effort terminal bell cues for sent and received messages.

package sound

import (
	"io"
	"sync"
)

// Cue identifies a sound event.
type Cue string

const (
	CueSend    Cue = "send"
	CueReceive Cue = "receive"
)

// Notifier writes terminal bell cues. Failures are swallowed: a sound
// problem must never abort a send.
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// New builds a notifier writing to out. A nil writer produces a silent
// notifier.
func New(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Play emits the cue at the given volume. Zero volume is silent; a receive
// cue rings twice so it stays distinguishable from a send.
func (n *Notifier) Play(cue Cue, volume float64) {
	if n == nil || n.out == nil || volume <= 0 {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	bells := "\a"
	if cue == CueReceive {
		bells = "\a\a"
	}
	_, _ = io.WriteString(n.out, bells)
}
