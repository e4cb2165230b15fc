package sc2

import (
	"fmt"
	"io"
)

// Validate reports whether rs looks like an SC2 container. It checks the
// stream size bounds and the two magic tags of the header; the declared
// total length is not compared with the real size.
//
// rs is rewound to offset 0 before Validate returns, whether or not the
// check passed.
func Validate(rs io.ReadSeeker) (err error) {
	defer func() {
		if _, seekErr := rs.Seek(0, io.SeekStart); seekErr != nil && err == nil {
			err = fmt.Errorf("rewind stream: %w", seekErr)
		}
	}()

	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("measure stream: %w", err)
	}
	if size <= headerSize {
		return fmt.Errorf("%w: %d bytes is too small for a header", ErrInvalidContainer, size)
	}
	if size > maxContainerSize {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrInvalidContainer, size, maxContainerSize)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind stream: %w", err)
	}
	var header [headerSize]byte
	if _, err := io.ReadFull(rs, header[:]); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	return checkHeader(header)
}

// IsValid is Validate reduced to a boolean.
func IsValid(rs io.ReadSeeker) bool {
	return Validate(rs) == nil
}

func checkHeader(header [headerSize]byte) error {
	if sig := string(header[0:4]); sig != containerSignature {
		return fmt.Errorf("%w: signature at offset 0 is %q, want %q", ErrInvalidContainer, sig, containerSignature)
	}
	if typ := string(header[8:12]); typ != containerType {
		return fmt.Errorf("%w: container type at offset 8 is %q, want %q", ErrInvalidContainer, typ, containerType)
	}
	return nil
}
