package sc2

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	labelSlots     = 256
	labelTextWidth = 24
	labelSlotSize  = 1 + labelTextWidth
)

func (d *decoder) decodeCityName(payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: empty city name segment", ErrMalformedSegment)
	}
	n := int(payload[0])
	if n > len(payload)-1 {
		return fmt.Errorf("%w: city name length %d exceeds the %d bytes that follow", ErrMalformedSegment, n, len(payload)-1)
	}
	name, err := d.text(payload[1 : 1+n])
	if err != nil {
		return err
	}
	d.city.name = name
	return nil
}

func (d *decoder) decodeMisc(payload []byte) error {
	if len(payload)%4 != 0 {
		return fmt.Errorf("%w: %d bytes is not a whole number of 32-bit values", ErrMalformedSegment, len(payload))
	}
	n := len(payload) / 4
	if n < minMiscValues {
		return fmt.Errorf("%w: segment holds %d values, statistics need %d", ErrStatisticIndex, n, minMiscValues)
	}
	values := make([]int32, n)
	for i := range values {
		values[i] = int32(binary.BigEndian.Uint32(payload[i*4:]))
	}
	d.city.setMisc(values)
	return nil
}

// decodeLabels reads the fixed label table. Slot 0 is the mayor's name; in
// quick mode it is the only slot read.
func (d *decoder) decodeLabels(payload []byte) error {
	slots := labelSlots
	if d.cfg.Quick {
		slots = 1
		if len(payload) < labelSlotSize {
			return fmt.Errorf("%w: %d bytes cannot hold the mayor's label", ErrMalformedSegment, len(payload))
		}
	} else if len(payload) != labelSlots*labelSlotSize {
		return fmt.Errorf("%w: label table length mismatch: payload=%d expected=%d", ErrMalformedSegment, len(payload), labelSlots*labelSlotSize)
	}

	for slot := 0; slot < slots; slot++ {
		raw := payload[slot*labelSlotSize : (slot+1)*labelSlotSize]
		n := int(raw[0])
		if n > labelTextWidth {
			return fmt.Errorf("%w: label slot %d length %d exceeds %d", ErrMalformedSegment, slot, n, labelTextWidth)
		}
		text, err := d.text(raw[1 : 1+n])
		if err != nil {
			return fmt.Errorf("label slot %d: %w", slot, err)
		}
		if slot == 0 {
			d.city.mayor = text
			continue
		}
		d.city.signs = append(d.city.signs, text)
	}
	return nil
}

// text decodes a fixed-width string field. Everything from the first NUL
// on is padding.
func (d *decoder) text(raw []byte) (string, error) {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	out, err := d.cfg.Charmap.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode text %q: %w", raw, err)
	}
	return string(out), nil
}

// eachTile walks a per-tile payload of width bytes per tile in raster
// order. The payload must cover the grid exactly.
func eachTile(payload []byte, width int, fn func(x, y int, entry []byte) error) error {
	if want := TileCount * width; len(payload) != want {
		return fmt.Errorf("%w: tile payload length mismatch: payload=%d expected=%d", ErrMalformedSegment, len(payload), want)
	}
	seq := NewTileSequencer(TilesPerSide)
	for off := 0; off < len(payload); off += width {
		x, y, err := seq.Next()
		if err != nil {
			return err
		}
		if err := fn(x, y, payload[off:off+width]); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeAltitude(payload []byte) error {
	return eachTile(payload, 2, func(x, y int, e []byte) error {
		d.city.tileAt(x, y).Altitude = AltitudeFromBytes(e[0], e[1])
		return nil
	})
}

func (d *decoder) decodeFlags(payload []byte) error {
	return eachTile(payload, 1, func(x, y int, e []byte) error {
		d.city.tileAt(x, y).Flags = FlagsFromByte(e[0])
		return nil
	})
}

func (d *decoder) decodeUnderground(payload []byte) error {
	return eachTile(payload, 1, func(x, y int, e []byte) error {
		if u, ok := UndergroundFromByte(e[0]); ok {
			d.city.tileAt(x, y).Underground = u
		}
		return nil
	})
}

func (d *decoder) decodeZoning(payload []byte) error {
	return eachTile(payload, 1, func(x, y int, e []byte) error {
		t := d.city.tileAt(x, y)
		if z, ok := ZoneFromByte(e[0]); ok {
			t.Zone = z
		}
		t.Corners = CornersFromByte(e[0])
		return nil
	})
}

func (d *decoder) decodeBuildings(payload []byte) error {
	return eachTile(payload, 1, func(x, y int, e []byte) error {
		d.city.tileAt(x, y).Building = e[0]
		if d.cfg.Buildings == nil {
			return nil
		}
		if err := d.cfg.Buildings.PlaceBuilding(x, y, e[0]); err != nil {
			return fmt.Errorf("place building %#02x at (%d, %d): %w", e[0], x, y, err)
		}
		return nil
	})
}

// decodeIntegerMap stores a simulation layer of one byte per tile. With
// CoarseMaps set, coarse layers are expanded so every tile of a block
// carries the block's value.
func (d *decoder) decodeIntegerMap(kind MapKind, payload []byte) error {
	block := 1
	if len(payload) != TileCount {
		coarse, ok := coarseBlockSizes[len(payload)]
		if !ok || !d.cfg.CoarseMaps {
			return fmt.Errorf("%w: %s map length mismatch: payload=%d expected=%d", ErrMalformedSegment, kind, len(payload), TileCount)
		}
		block = coarse
	}
	values := make([]byte, TileCount)
	seq := NewTileSequencer(TilesPerSide / block)
	for _, v := range payload {
		bx, by, err := seq.Next()
		if err != nil {
			return err
		}
		for dy := 0; dy < block; dy++ {
			for dx := 0; dx < block; dx++ {
				values[tileIndex(bx*block+dx, by*block+dy)] = v
			}
		}
	}
	d.city.setMap(kind, values)
	return nil
}
