package sc2

import (
	"bytes"
	"encoding/binary"
)

// ============================================================================
// Fixture builders
// ============================================================================

type segment struct {
	name    string
	payload []byte
}

// buildContainer frames segments behind a FORM/SCDH header.
func buildContainer(segs ...segment) []byte {
	var body bytes.Buffer
	for _, s := range segs {
		body.WriteString(s.name)
		_ = binary.Write(&body, binary.BigEndian, uint32(len(s.payload)))
		body.Write(s.payload)
	}

	var buf bytes.Buffer
	buf.WriteString(containerSignature)
	_ = binary.Write(&buf, binary.BigEndian, uint32(4+body.Len()))
	buf.WriteString(containerType)
	buf.Write(body.Bytes())
	return buf.Bytes()
}

// compressRLE encodes src with the segment compression scheme, preferring
// repeat runs for three or more equal bytes.
func compressRLE(src []byte) []byte {
	var out []byte
	for i := 0; i < len(src); {
		j := i
		for j < len(src) && src[j] == src[i] && j-i < 128 {
			j++
		}
		if j-i >= 3 {
			out = append(out, byte(127+j-i), src[i])
			i = j
			continue
		}

		start := i
		for i < len(src) && i-start < 126 {
			if i+2 < len(src) && src[i] == src[i+1] && src[i] == src[i+2] {
				break
			}
			i++
		}
		out = append(out, byte(i-start))
		out = append(out, src[start:i]...)
	}
	return out
}

func compressed(name string, raw []byte) segment {
	return segment{name: name, payload: compressRLE(raw)}
}

// cityNameSegment stores raw behind a length prefix of len(raw), padded
// with zeros to width bytes.
func cityNameSegment(raw string, width int) segment {
	payload := make([]byte, width)
	payload[0] = byte(len(raw))
	copy(payload[1:], raw)
	return segment{name: "CNAM", payload: payload}
}

func miscPayload(n int, values map[int]int32) []byte {
	payload := make([]byte, n*4)
	for i, v := range values {
		binary.BigEndian.PutUint32(payload[i*4:], uint32(v))
	}
	return payload
}

func labelPayload(labels ...string) []byte {
	payload := make([]byte, labelSlots*labelSlotSize)
	for i, l := range labels {
		slot := payload[i*labelSlotSize:]
		slot[0] = byte(len(l))
		copy(slot[1:], l)
	}
	return payload
}

func tilePayload(width int, set map[[2]int][]byte) []byte {
	payload := make([]byte, TileCount*width)
	for xy, v := range set {
		copy(payload[tileIndex(xy[0], xy[1])*width:], v)
	}
	return payload
}

const (
	fixtureFunds        = 25000
	fixtureFounded      = 1900
	fixtureCitySize     = 12345
	fixtureNeighbor3    = 800
	fixtureTourismTax   = 9
	fixtureUnmapped     = 1199
	fixtureUnmappedText = -42
)

// fixtureSegments returns one segment of every kind the decoder knows,
// plus two it skips.
func fixtureSegments() []segment {
	values := map[int]int32{
		miscAvailableFunds: fixtureFunds,
		miscYearOfFounding: fixtureFounded,
		miscCitySize:       fixtureCitySize,
		fixtureUnmapped:    fixtureUnmappedText,
	}
	values[miscNeighborBase+2*miscNeighborStride] = fixtureNeighbor3
	values[miscIndustryTaxBase+int(IndustryTourism)] = fixtureTourismTax
	misc := miscPayload(1200, values)

	altm := tilePayload(2, map[[2]int][]byte{
		{0, 0}: {0x00, 0x1F},
		{1, 0}: {0x00, 0x00},
		{5, 3}: {0xFF, 0x02},
	})

	xbit := tilePayload(1, map[[2]int][]byte{
		{2, 0}: {0xFF},
		{3, 0}: {0x0A},
		{4, 0}: {0x41},
	})
	xund := tilePayload(1, map[[2]int][]byte{
		{0, 1}: {0x05},
		{1, 1}: {0x10},
		{2, 1}: {0x20},
		{3, 1}: {0x22},
		{4, 1}: {0x23},
		{5, 1}: {0x40},
	})
	xzon := tilePayload(1, map[[2]int][]byte{
		{0, 2}: {0x11},
		{1, 2}: {0xF9},
		{2, 2}: {0x0C},
	})
	xbld := tilePayload(1, map[[2]int][]byte{
		{127, 127}: {0xAB},
	})
	xplt := tilePayload(1, map[[2]int][]byte{
		{10, 20}: {200},
	})
	xcrm := tilePayload(1, map[[2]int][]byte{
		{2, 0}: {7},
		{3, 1}: {7},
	})
	xplc := tilePayload(1, map[[2]int][]byte{
		{0, 0}:     {9},
		{127, 127}: {9},
	})

	return []segment{
		cityNameSegment("Metropolis\x00garbage", 32),
		compressed("MISC", misc),
		{name: "XTER", payload: compressRLE(make([]byte, TileCount))},
		compressed("XLAB", labelPayload("Dustin", "Hello", "", "Downtown")),
		{name: "ALTM", payload: altm},
		compressed("XBIT", xbit),
		compressed("XUND", xund),
		compressed("XZON", xzon),
		compressed("XBLD", xbld),
		compressed("XPLT", xplt),
		compressed("XCRM", xcrm),
		compressed("XPLC", xplc),
		{name: "XMIC", payload: []byte{1, 2, 3, 4, 5}},
	}
}

func fixtureFile() []byte {
	return buildContainer(fixtureSegments()...)
}

// replaceSegment returns the fixture segments with the named one replaced.
func replaceSegment(segs []segment, s segment) []segment {
	out := make([]segment, len(segs))
	for i, old := range segs {
		if old.name == s.name {
			old = s
		}
		out[i] = old
	}
	return out
}
