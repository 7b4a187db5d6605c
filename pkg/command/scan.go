package command

import (
	"bufio"
	"io"
	"strconv"

	"github.com/teslashibe/go-roboeyes/internal/log"
)

// ScanInts reads whitespace-separated tokens from r and forwards every
// integer to sink, skipping tokens that do not parse. It blocks until r
// is exhausted, so callers run it in a goroutine feeding a Queue:
//
//	go command.ScanInts(os.Stdin, queue.Send)
func ScanInts(r io.Reader, sink func(int) bool) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			log.Debug("command token skipped", "token", sc.Text())
			continue
		}
		if !sink(v) {
			log.Debug("command dropped, queue full", "value", v)
		}
	}
	return sc.Err()
}
