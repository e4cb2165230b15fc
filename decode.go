package sc2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/seiflotfy/sc2/rle"
)

// Wire format:
//
//	signature     [4]byte  = "FORM"
//	totalLength   uint32   big-endian, not checked
//	containerType [4]byte  = "SCDH"
//	repeat until end of stream:
//	  name    [4]byte
//	  length  uint32 big-endian
//	  payload length bytes, RLE-compressed for most segment types
//
// Unknown segments are skipped via their length.

type segmentHandler struct {
	compressed bool
	decode     func(d *decoder, payload []byte) error
}

var segmentHandlers = map[string]segmentHandler{
	"CNAM": {compressed: false, decode: (*decoder).decodeCityName},
	"MISC": {compressed: true, decode: (*decoder).decodeMisc},
	"XLAB": {compressed: true, decode: (*decoder).decodeLabels},
	"ALTM": {compressed: false, decode: (*decoder).decodeAltitude},
	"XBIT": {compressed: true, decode: (*decoder).decodeFlags},
	"XUND": {compressed: true, decode: (*decoder).decodeUnderground},
	"XZON": {compressed: true, decode: (*decoder).decodeZoning},
	"XBLD": {compressed: true, decode: (*decoder).decodeBuildings},
}

// quickSegments are the only segments read in quick mode.
var quickSegments = map[string]bool{
	"CNAM": true,
	"MISC": true,
	"XLAB": true,
}

type decoder struct {
	cfg  Config
	city *City
}

// Decode reads an SC2 container from rs. The stream is validated first;
// any failure returns a nil City.
func Decode(rs io.ReadSeeker, opts ...Option) (*City, error) {
	d := &decoder{cfg: newConfig(opts), city: newCity()}
	if err := d.run(rs); err != nil {
		return nil, err
	}
	return d.city, nil
}

// DecodeQuick reads only the city name, the statistics and the mayor's
// name from rs.
func DecodeQuick(rs io.ReadSeeker, opts ...Option) (*City, error) {
	return Decode(rs, append(opts[:len(opts):len(opts)], WithQuick())...)
}

// DecodeBytes decodes an in-memory SC2 file.
func DecodeBytes(data []byte, opts ...Option) (*City, error) {
	return Decode(bytes.NewReader(data), opts...)
}

func (d *decoder) handler(name string) (segmentHandler, bool) {
	if d.cfg.Quick && !quickSegments[name] {
		return segmentHandler{}, false
	}
	if kind, ok := integerMapSegments[name]; ok {
		return segmentHandler{
			compressed: true,
			decode: func(d *decoder, payload []byte) error {
				return d.decodeIntegerMap(kind, payload)
			},
		}, true
	}
	h, ok := segmentHandlers[name]
	return h, ok
}

func (d *decoder) run(rs io.ReadSeeker) error {
	if err := Validate(rs); err != nil {
		return err
	}
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("measure stream: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind stream: %w", err)
	}

	var header [headerSize]byte
	if _, err := io.ReadFull(rs, header[:]); err != nil {
		return fmt.Errorf("read header at offset 0: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return err
	}

	log := d.cfg.Logger
	seen := make(map[string]bool)
	offset := int64(headerSize)
	for i := 0; offset < size; i++ {
		if size-offset < segmentHeaderSize {
			return &SegmentError{Offset: offset, Index: i,
				Err: fmt.Errorf("%w: %d trailing bytes cannot hold a segment header", ErrMalformedSegment, size-offset)}
		}

		var hdr [segmentHeaderSize]byte
		if _, err := io.ReadFull(rs, hdr[:]); err != nil {
			return &SegmentError{Offset: offset, Index: i, Err: fmt.Errorf("read segment header: %w", err)}
		}
		name := string(hdr[:4])
		length := int64(binary.BigEndian.Uint32(hdr[4:]))
		payloadOffset := offset + segmentHeaderSize
		if remaining := size - payloadOffset; length > remaining {
			return &SegmentError{Name: name, Offset: offset, Index: i,
				Err: fmt.Errorf("%w: declared length %d exceeds the %d bytes left in the file", ErrMalformedSegment, length, remaining)}
		}

		h, ok := d.handler(name)
		if !ok {
			log.WithFields(logrus.Fields{
				"segment": name,
				"length":  length,
				"offset":  offset,
			}).Debug("skipping segment")
			if _, err := rs.Seek(length, io.SeekCurrent); err != nil {
				return &SegmentError{Name: name, Offset: offset, Index: i, Err: fmt.Errorf("skip payload: %w", err)}
			}
			offset = payloadOffset + length
			continue
		}

		if seen[name] {
			return &SegmentError{Name: name, Offset: offset, Index: i,
				Err: fmt.Errorf("%w: duplicate segment", ErrMalformedSegment)}
		}
		seen[name] = true

		var payload []byte
		if h.compressed {
			payload, err = rle.ReadFrom(rs, length)
			if errors.Is(err, rle.ErrTruncated) {
				err = fmt.Errorf("%w: %w", ErrMalformedSegment, err)
			}
		} else {
			payload = make([]byte, length)
			_, err = io.ReadFull(rs, payload)
		}
		if err != nil {
			return &SegmentError{Name: name, Offset: offset, Index: i, Err: fmt.Errorf("read payload: %w", err)}
		}
		if err := h.decode(d, payload); err != nil {
			return &SegmentError{Name: name, Offset: offset, Index: i, Err: err}
		}
		d.city.segments = append(d.city.segments, name)
		offset = payloadOffset + length
	}

	log.WithFields(logrus.Fields{
		"city":     d.city.name,
		"segments": len(d.city.segments),
		"quick":    d.cfg.Quick,
	}).Debug("decoded city")
	return nil
}
