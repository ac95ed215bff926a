package rvg

import (
	"errors"
	"fmt"
)

// Decode and stream errors.
var (
	ErrHeaderMismatch = errors.New("invalid RVG magic: expected 'rVgA'")
	ErrUnexpectedEOF  = errors.New("unexpected end of RVG data")
	ErrUnknownTag     = errors.New("unknown RVG tag")
	ErrCompression    = errors.New("RVG compression failure")
)

// Validation errors. Each wraps ErrInvalidGraphic.
var (
	ErrInvalidGraphic  = errors.New("invalid RVG graphic")
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrInvalidGraphic)
	ErrReservedValue   = fmt.Errorf("%w: reserved sentinel value", ErrInvalidGraphic)
	ErrEmptyPath       = fmt.Errorf("%w: empty path", ErrInvalidGraphic)
	ErrBadFrames       = fmt.Errorf("%w: frame list must end with exactly one Done", ErrInvalidGraphic)
	ErrBitmapSize      = fmt.Errorf("%w: bitmap pixel buffer size", ErrInvalidGraphic)
	ErrOddVertexList   = fmt.Errorf("%w: odd vertex coordinate count", ErrInvalidGraphic)
	ErrUnknownVariant  = fmt.Errorf("%w: unknown variant", ErrInvalidGraphic)
)

// Section names a region of the payload for error reporting.
type Section uint8

const (
	SectionHeader Section = iota
	SectionAttributes
	SectionVertices
	SectionPaths
	SectionProperties
	SectionTransforms
	SectionAnimation
	SectionModels
	SectionBitmaps
)

// String returns the section name.
func (s Section) String() string {
	switch s {
	case SectionHeader:
		return "header"
	case SectionAttributes:
		return "attributes"
	case SectionVertices:
		return "vertices"
	case SectionPaths:
		return "paths"
	case SectionProperties:
		return "properties"
	case SectionTransforms:
		return "transforms"
	case SectionAnimation:
		return "animation"
	case SectionModels:
		return "models"
	case SectionBitmaps:
		return "bitmaps"
	default:
		return fmt.Sprintf("section(%d)", uint8(s))
	}
}

// TagError reports a tag byte outside the documented set of a section.
type TagError struct {
	Section Section
	Tag     uint8
	Offset  int64 // payload offset of the tag byte
}

func (e *TagError) Error() string {
	return fmt.Sprintf("%v: 0x%02X in %s at offset %d", ErrUnknownTag, e.Tag, e.Section, e.Offset)
}

// Unwrap returns ErrUnknownTag.
func (e *TagError) Unwrap() error {
	return ErrUnknownTag
}
