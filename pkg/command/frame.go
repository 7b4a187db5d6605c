package command

import (
	"bufio"
	"errors"
	"io"

	"github.com/teslashibe/go-roboeyes/internal/log"
)

// Framed byte protocol for UART-style links without line discipline:
// sync byte, destination address, command byte, additive checksum. One
// bus can carry several addressed faces; a face acts only on frames for
// its own address or the broadcast address.
const (
	FrameSync     byte = 0xAA
	AddrBroadcast byte = 0xFF

	frameLen = 4
)

// EncodeFrame packs an addressed command into a wire frame.
func EncodeFrame(addr, cmd byte) [4]byte {
	return [4]byte{FrameSync, addr, cmd, addr + cmd}
}

// DecodeFrame validates a candidate frame and extracts the addressed
// command.
func DecodeFrame(frame [4]byte) (addr, cmd byte, ok bool) {
	if frame[0] != FrameSync {
		return 0, 0, false
	}
	if frame[1]+frame[2] != frame[3] {
		return 0, 0, false
	}
	return frame[1], frame[2], true
}

// ScanFrames reads frames from r and forwards commands addressed to addr
// (or broadcast) to sink. The scanner keeps a sliding window: bytes that
// do not line up as a valid frame are discarded one at a time until the
// stream re-syncs, so line noise or a partial frame can never poison the
// commands that follow it. Blocks until r is exhausted.
func ScanFrames(r io.Reader, addr byte, sink func(int) bool) error {
	br := bufio.NewReader(r)
	var win [frameLen]byte
	n := 0
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		win[n] = b
		n++
		if n < frameLen {
			continue
		}
		if a, cmd, ok := DecodeFrame(win); ok {
			n = 0
			if a != addr && a != AddrBroadcast {
				log.Debug("frame for another address", "addr", a)
				continue
			}
			if !sink(int(cmd)) {
				log.Debug("command dropped, queue full", "value", cmd)
			}
			continue
		}
		copy(win[:], win[1:])
		n = frameLen - 1
	}
}
