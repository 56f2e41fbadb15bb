package hub

import (
	"fmt"
	"sort"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-portraits/store"
)

// RootRecordName is the store name of the root portrait metadata record.
const RootRecordName = "portrait_hub"

// AtlasDescriptor is one packed texture pair along with the sprites that
// belong to it. TextureName and AlphaName resolve to pixel surfaces through
// store.Store.Surface.
type AtlasDescriptor struct {
	TextureName string
	AlphaName   string
	Sprites     []SpriteRecord
}

// PortraitHub is the root aggregate consumed by the reconstruction engine.
//
// SpriteCount is the number of sprites the root record declares;
// LoadedSpriteCount the number actually resolved into some descriptor.
// LoadedAtlasCount/AtlasCount are the accepted vs. attempted atlas records,
// kept for diagnostics.
type PortraitHub struct {
	SpriteCount       int
	LoadedSpriteCount int
	LoadedAtlasCount  int
	AtlasCount        int
	SpriteSize        SpriteSize
	Atlases           []AtlasDescriptor
}

// Build reads the root record and every atlas record it names out of st and
// assembles the portrait hub.
//
// A missing root record is fatal. A missing atlas record is skipped
// silently; an atlas record failing validation is logged and skipped. A
// sprite whose atlas never loads is simply absent from the hub.
func Build(st store.Store) (*PortraitHub, error) {
	rc, err := st.Record(RootRecordName)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching root record %q", RootRecordName)
	}
	root, err := DecodeRootRecord(rc, RootRecordName)
	rc.Close()
	if err != nil {
		return nil, err
	}

	// Membership filter: atlas index -> set of sprite names. Guards against
	// drift between the root record and the per-atlas records; the atlas
	// records stay the source of truth for sprite content.
	members := make(map[int]map[string]bool)
	for _, sp := range root.Sprites {
		m := members[sp.Atlas]
		if m == nil {
			m = make(map[string]bool)
			members[sp.Atlas] = m
		}
		m[sp.Name] = true
	}

	names := root.AtlasNames
	if len(names) == 0 {
		names = derivedAtlasNames(root.RootAtlasName, members)
	}

	h := &PortraitHub{
		SpriteCount: len(root.Sprites),
		SpriteSize:  root.SpriteSize,
		AtlasCount:  len(names),
	}
	for _, name := range names {
		rec, err := fetchAtlasRecord(st, name)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				glog.V(1).Infof("atlas record %q not in store, skipping", name)
				continue
			}
			glog.Warningf("skipping atlas record %q: %v", name, err)
			continue
		}

		filter := members[rec.Index]
		var kept []SpriteRecord
		for _, sp := range rec.Sprites {
			if filter[sp.Name] {
				kept = append(kept, sp)
			}
		}

		h.Atlases = append(h.Atlases, AtlasDescriptor{
			TextureName: rec.TextureName,
			AlphaName:   rec.AlphaName,
			Sprites:     kept,
		})
		h.LoadedSpriteCount += len(kept)
		h.LoadedAtlasCount++
	}

	glog.V(1).Infof("loaded [%d/%d] sprite data, from [%d/%d] atlas(-es)",
		h.LoadedSpriteCount, h.SpriteCount, h.LoadedAtlasCount, h.AtlasCount)
	return h, nil
}

func fetchAtlasRecord(st store.Store, name string) (*AtlasRecord, error) {
	rc, err := st.Record(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return DecodeAtlasRecord(rc, name)
}

// derivedAtlasNames reconstructs the atlas record names from the root atlas
// name and the atlas indices the sprites reference, for root records that
// don't carry an explicit atlas list. The names follow the packer's
// "<root>#<index>" convention.
func derivedAtlasNames(rootAtlasName string, members map[int]map[string]bool) []string {
	if rootAtlasName == "" {
		return nil
	}
	idxs := make([]int, 0, len(members))
	for idx := range members {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	names := make([]string, 0, len(idxs))
	for _, idx := range idxs {
		names = append(names, fmt.Sprintf("%s#%d", rootAtlasName, idx))
	}
	return names
}
