package hub

// This file contains the metadata record types, their raw wire shapes, and
// the validating decoders that convert one into the other.

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Rect is a sprite's placement inside its atlas. Coordinates use the
// atlas's own bottom-left origin; the crop engine flips them into image
// space when extracting.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// SpriteRecord describes one portrait's placement. Rotate carries the 0/1
// wire value; nonzero means the sprite was packed pre-rotated and must be
// rotated 90 degrees counter-clockwise on extraction. GUID is carried
// through but never used for logic.
type SpriteRecord struct {
	Name   string `json:"name"`
	GUID   string `json:"guid"`
	Atlas  int    `json:"atlas"`
	Rect   Rect   `json:"rect"`
	Rotate int    `json:"rotate"`
}

// SpriteSize is the canonical output size, in pixels, that every extracted
// portrait must conform to.
type SpriteSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RootRecord is the validated root portrait metadata record: the full
// declared sprite list, the canonical sprite size, and the names of the
// atlas records holding the pixel placement data.
type RootRecord struct {
	Sprites       []SpriteRecord
	RootAtlasName string
	SpriteSize    SpriteSize
	AtlasNames    []string
}

// AtlasRecord is one validated per-atlas metadata record: the atlas's own
// sprite list plus the names of its texture and alpha mask surfaces.
type AtlasRecord struct {
	Sprites     []SpriteRecord
	Index       int
	TextureName string
	AlphaName   string
}

// RecordError reports a missing or malformed field in a metadata record.
type RecordError struct {
	Record string
	Field  string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %q: field %q: %s", e.Record, e.Field, e.Reason)
}

// Raw wire shapes. Pointer and slice fields stay nil when the key is absent,
// which is how the decoders tell a missing field from a present-but-empty
// one.
type rawImageName struct {
	Name *string `json:"name"`
}

type rawSign struct {
	Atlases []rawImageName `json:"m_atlases"`
	Alphas  []rawImageName `json:"m_alphas"`
}

type rawRootRecord struct {
	Sprites       []SpriteRecord `json:"_sprites"`
	RootAtlasName *string        `json:"_rootAtlasName"`
	SpriteSize    *SpriteSize    `json:"_spriteSize"`
	AtlasNames    []string       `json:"_atlases"`
}

type rawAtlasRecord struct {
	Sprites []SpriteRecord `json:"_sprites"`
	Index   *int           `json:"_index"`
	Sign    *rawSign       `json:"_sign"`
}

// DecodeRootRecord decodes and validates the root portrait metadata record.
// name is only used to identify the record in errors.
func DecodeRootRecord(r io.Reader, name string) (*RootRecord, error) {
	var raw rawRootRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, "could not decode root record %q", name)
	}

	if raw.Sprites == nil {
		return nil, &RecordError{Record: name, Field: "_sprites", Reason: "missing"}
	}
	if raw.SpriteSize == nil {
		return nil, &RecordError{Record: name, Field: "_spriteSize", Reason: "missing"}
	}
	if raw.SpriteSize.Width <= 0 || raw.SpriteSize.Height <= 0 {
		return nil, &RecordError{Record: name, Field: "_spriteSize",
			Reason: fmt.Sprintf("bad dimensions %dx%d", raw.SpriteSize.Width, raw.SpriteSize.Height)}
	}
	if raw.AtlasNames == nil && raw.RootAtlasName == nil {
		return nil, &RecordError{Record: name, Field: "_atlases", Reason: "no atlas list and no root atlas name"}
	}

	rec := &RootRecord{
		Sprites:    raw.Sprites,
		SpriteSize: *raw.SpriteSize,
		AtlasNames: raw.AtlasNames,
	}
	if raw.RootAtlasName != nil {
		rec.RootAtlasName = *raw.RootAtlasName
	}
	return rec, nil
}

// DecodeAtlasRecord decodes and validates one per-atlas metadata record.
//
// A record must expose a non-empty sprite list, an atlas index, and exactly
// one texture name and one alpha mask name. Anything else is rejected with a
// *RecordError; the caller decides whether that skips the atlas or aborts.
func DecodeAtlasRecord(r io.Reader, name string) (*AtlasRecord, error) {
	var raw rawAtlasRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, "could not decode atlas record %q", name)
	}

	if raw.Sprites == nil {
		return nil, &RecordError{Record: name, Field: "_sprites", Reason: "missing"}
	}
	if raw.Index == nil {
		return nil, &RecordError{Record: name, Field: "_index", Reason: "missing"}
	}
	if raw.Sign == nil {
		return nil, &RecordError{Record: name, Field: "_sign", Reason: "missing"}
	}
	if raw.Sign.Atlases == nil || raw.Sign.Alphas == nil {
		return nil, &RecordError{Record: name, Field: "_sign", Reason: "atlas images were not found"}
	}
	if len(raw.Sprites) == 0 {
		return nil, &RecordError{Record: name, Field: "_sprites", Reason: "no portraits"}
	}
	if len(raw.Sign.Atlases) != 1 || len(raw.Sign.Alphas) != 1 {
		return nil, &RecordError{Record: name, Field: "_sign",
			Reason: fmt.Sprintf("incorrect number of atlas images (%d textures, %d alphas)",
				len(raw.Sign.Atlases), len(raw.Sign.Alphas))}
	}
	if raw.Sign.Atlases[0].Name == nil || raw.Sign.Alphas[0].Name == nil {
		return nil, &RecordError{Record: name, Field: "_sign", Reason: "unnamed atlas image"}
	}

	return &AtlasRecord{
		Sprites:     raw.Sprites,
		Index:       *raw.Index,
		TextureName: *raw.Sign.Atlases[0].Name,
		AlphaName:   *raw.Sign.Alphas[0].Name,
	}, nil
}
