// Package input turns raw terminal bytes into per-frame control state.
package input

import (
	"bufio"
	"io"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, so a held key is one that keeps arriving.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
// Left, Right and Fire are held controls; Restart and Quit are discrete presses.
type Input struct {
	Left    bool
	Right   bool
	Fire    bool
	Restart bool
	Quit    bool
	Pressed []byte // Raw bytes read this frame
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	fire  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	closed  bool
	state   keyState
	pending []byte // Unfinished escape sequence carried over from the previous Read
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error; the stream then reports Quit.
func StartStream(r io.Reader) *Stream {
	s := newStream()
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Read drains all available bytes from the stream without blocking and
// returns the controls as of now.
//
// An escape sequence split across reads is completed on the next Read.
// A trailing ESC counts as a quit only once a Read finds no new bytes.
func (s *Stream) Read(now time.Time) Input {
	var buf []byte

drain:
	for {
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

	data := buf
	if len(s.pending) > 0 {
		data = append(s.pending, buf...)
		s.pending = nil
	}
	flush := len(buf) == 0 || s.closed

	in := s.parse(data, flush, now)
	in.Pressed = buf
	if s.closed {
		in.Quit = true
	}
	return in
}

// Reset forgets held keys, so a key held across a restart does not carry over.
func (s *Stream) Reset() {
	s.state = keyState{}
	s.pending = nil
}

// parse updates key timestamps from buf and builds the frame's input.
// Arrow keys arrive as CSI sequences: ESC [ C (right) and ESC [ D (left).
// An ESC that does not start a CSI sequence quits. When flush is false an
// unfinished sequence at the end of buf is saved for the next call instead.
func (s *Stream) parse(buf []byte, flush bool, now time.Time) Input {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+1 == len(buf) {
				if !flush {
					s.pending = append(s.pending, b)
					break
				}
				in.Quit = true
				continue
			}
			if buf[i+1] != '[' {
				in.Quit = true
				continue
			}

			// Skip parameter and intermediate bytes up to the final byte.
			j := i + 2
			for j < len(buf) && buf[j] >= 0x20 && buf[j] <= 0x3f {
				j++
			}
			if j == len(buf) {
				if !flush {
					s.pending = append(s.pending, buf[i:]...)
				}
				break
			}
			switch buf[j] {
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			// Other CSI sequences (up/down, focus events) are ignored.
			i = j
			continue
		}

		switch b {
		case 'a', 'A', 'h':
			s.state.left = now
		case 'd', 'D', 'l':
			s.state.right = now
		case ' ':
			s.state.fire = now
		case 'r', 'R':
			in.Restart = true
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}

	in.Left = held(s.state.left, now)
	in.Right = held(s.state.right, now)
	in.Fire = held(s.state.fire, now)
	return in
}

func held(last, now time.Time) bool {
	return !last.IsZero() && now.Sub(last) < keyHoldDuration
}
