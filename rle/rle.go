// Package rle decodes the run-length scheme used by compressed SC2 segments.
//
// A compressed stream is a sequence of runs, each introduced by one control
// byte:
//
//	0..126   literal run: the next c bytes are copied verbatim (1+c bytes)
//	127..255 repeat run: the next byte is repeated c-127 times (2 bytes)
//
// A control byte of exactly 127 is a valid repeat run of length zero.
package rle

import (
	"errors"
	"fmt"
	"io"
)

const (
	maxLiteral   = 126
	repeatBias   = 127
	maxRepeatLen = 255 - repeatBias
)

// ErrTruncated reports a run whose data would cross the end of the
// compressed input.
var ErrTruncated = errors.New("truncated run")

// Decode decompresses all of src. It consumes exactly len(src) bytes and
// returns a newly allocated buffer.
func Decode(src []byte) ([]byte, error) {
	// Literal runs never expand, so len(src) is a reasonable starting size.
	dst := make([]byte, 0, len(src))
	pos := 0
	for pos < len(src) {
		runOffset := pos
		control := src[pos]
		pos++

		if control <= maxLiteral {
			n := int(control)
			if n > len(src)-pos {
				return nil, fmt.Errorf("%w: literal run at offset %d needs %d bytes, have %d", ErrTruncated, runOffset, n, len(src)-pos)
			}
			dst = append(dst, src[pos:pos+n]...)
			pos += n
			continue
		}

		if pos >= len(src) {
			return nil, fmt.Errorf("%w: repeat run at offset %d is missing its fill byte", ErrTruncated, runOffset)
		}
		fill := src[pos]
		pos++
		for i := 0; i < int(control)-repeatBias; i++ {
			dst = append(dst, fill)
		}
	}
	return dst, nil
}

// ReadFrom reads exactly n compressed bytes from r and decodes them.
// It never reads more than n bytes from r, and buffers only what r
// actually delivers.
func ReadFrom(r io.Reader, n int64) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative compressed length: %d", n)
	}
	src, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, fmt.Errorf("read %d compressed bytes: %w", n, err)
	}
	if int64(len(src)) < n {
		return nil, fmt.Errorf("read %d compressed bytes: got %d: %w", n, len(src), io.ErrUnexpectedEOF)
	}
	return Decode(src)
}

// MaxDecodedLen reports an upper bound on the decoded size of n compressed
// bytes.
func MaxDecodedLen(n int) int {
	if n <= 0 {
		return 0
	}
	return (n / 2) * maxRepeatLen
}
