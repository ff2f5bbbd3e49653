package catalog

import (
	"strings"

	"github.com/kozaktomas/art-inventory/internal/constants"
)

// SniffDimensions reads pixel width and height from the container header of a
// PNG, JPEG, GIF or WebP image without decoding it. The format is chosen from the
// declared content type. Any parse failure yields a square fallback size.
func SniffDimensions(data []byte, contentType string) (width, height int) {
	ct := strings.ToLower(contentType)
	var w, h int
	var ok bool
	switch {
	case strings.Contains(ct, "png"):
		w, h, ok = sniffPNG(data)
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		w, h, ok = sniffJPEG(data)
	case strings.Contains(ct, "gif"):
		w, h, ok = sniffGIF(data)
	case strings.Contains(ct, "webp"):
		w, h, ok = sniffWebP(data)
	}
	if !ok || w <= 0 || h <= 0 {
		return constants.FallbackImageDimension, constants.FallbackImageDimension
	}
	return w, h
}

// IHDR always follows the 8-byte signature and 8-byte chunk header.
func sniffPNG(data []byte) (int, int, bool) {
	if len(data) < 24 {
		return 0, 0, false
	}
	return int(readU32BE(data, 16)), int(readU32BE(data, 20)), true
}

// The logical screen size follows the 6-byte GIF87a/GIF89a signature.
func sniffGIF(data []byte) (int, int, bool) {
	if len(data) < 10 || (string(data[:6]) != "GIF87a" && string(data[:6]) != "GIF89a") {
		return 0, 0, false
	}
	return int(readU16LE(data, 6)), int(readU16LE(data, 8)), true
}

func sniffJPEG(data []byte) (int, int, bool) {
	i := 2
	for i < len(data)-8 {
		if data[i] != 0xFF {
			return 0, 0, false
		}
		marker := data[i+1]
		if marker >= 0xC0 && marker <= 0xC2 {
			return int(readU16BE(data, i+7)), int(readU16BE(data, i+5)), true
		}
		length := int(readU16BE(data, i+2))
		if length < 2 {
			return 0, 0, false
		}
		i += 2 + length
	}
	return 0, 0, false
}

func sniffWebP(data []byte) (int, int, bool) {
	if len(data) < 30 {
		return 0, 0, false
	}
	switch string(data[12:16]) {
	case "VP8 ":
		return int(readU16LE(data, 26) & 0x3FFF), int(readU16LE(data, 28) & 0x3FFF), true
	case "VP8L":
		bits := readU32LE(data, 21)
		return int(bits&0x3FFF) + 1, int((bits>>14)&0x3FFF) + 1, true
	case "VP8X":
		// Extended format: 24-bit canvas width-1 and height-1.
		return int(readU24LE(data, 24)) + 1, int(readU24LE(data, 27)) + 1, true
	}
	return 0, 0, false
}

func readU16BE(b []byte, off int) uint16 {
	return uint16(b[off])<<8 | uint16(b[off+1])
}

func readU32BE(b []byte, off int) uint32 {
	return uint32(b[off])<<24 | uint32(b[off+1])<<16 | uint32(b[off+2])<<8 | uint32(b[off+3])
}

func readU16LE(b []byte, off int) uint16 {
	return uint16(b[off]) | uint16(b[off+1])<<8
}

func readU24LE(b []byte, off int) uint32 {
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16
}

func readU32LE(b []byte, off int) uint32 {
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}
