package linereader

import (
	"bufio"
	"context"
	"io"
)

// Line is one line read from the input, or the error that ended reading.
type Line struct {
	Text string
	Err  error
}

// Read scans r on its own goroutine and delivers lines on the returned
// channel, so callers can select on it together with ctx.Done(). The channel
// is closed at end of input, after a Line carrying a read error, or once ctx
// is done. A Read already blocked inside r only returns when r does.
func Read(ctx context.Context, r io.Reader) <-chan Line {
	out := make(chan Line)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case out <- Line{Text: sc.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case out <- Line{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return out
}

// Next waits for the next line. ok is false at end of input. It returns
// ctx.Err() as soon as ctx is done, even while the reader is blocked.
func Next(ctx context.Context, lines <-chan Line) (text string, ok bool, err error) {
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case l, open := <-lines:
		if !open {
			return "", false, nil
		}
		if l.Err != nil {
			return "", false, l.Err
		}
		return l.Text, true, nil
	}
}
