// Package input turns a raw terminal byte stream into per-frame key levels.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report presses and auto-repeats but never releases.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Shoot   bool
	Restart bool
	Closed  bool   // The underlying reader is gone
	Pressed []byte // Raw bytes received this frame
}

// IsLeftPressed reports whether a left key is held.
func (in Input) IsLeftPressed() bool { return in.Left }

// IsRightPressed reports whether a right key is held.
func (in Input) IsRightPressed() bool { return in.Right }

// IsShootPressed reports whether a fire key is held.
func (in Input) IsShootPressed() bool { return in.Shoot }

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	shoot   time.Time
	restart time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	now := time.Now()
	s.apply(buf, now)
	in := s.state.at(now)
	in.Pressed = buf
	in.Closed = s.closed
	return in
}

// ResetKeyInput forgets all held keys, so a key used to leave one screen does
// not carry into the next.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// apply parses bytes and updates key state timestamps.
func (s *Stream) apply(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			case 'A', 'B': // Up/down arrows are unused
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}
}

// at builds input from key state - keys are "pressed" if seen within hold duration.
func (k keyState) at(now time.Time) Input {
	return Input{
		Quit:    now.Sub(k.quit) < keyHoldDuration,
		Left:    now.Sub(k.left) < keyHoldDuration,
		Right:   now.Sub(k.right) < keyHoldDuration,
		Shoot:   now.Sub(k.shoot) < keyHoldDuration,
		Restart: now.Sub(k.restart) < keyHoldDuration,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // 0x03 is Ctrl+C in raw mode
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', '\n', '\r':
		state.shoot = now
	case 'r', 'R':
		state.restart = now
	}
}
