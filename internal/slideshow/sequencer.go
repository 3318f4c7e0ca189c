package slideshow

import (
	"encoding/binary"
	"math/rand"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
)

// BuildPass produces the ordering of the catalog for one pass.
// Every catalog item appears exactly once per pass. The result is a pure
// function of (catalog, config, passIndex): two resolvers building the
// same pass always agree, which is what lets any number of frames poll
// independently and see the same timeline.
func BuildPass(catalog []*models.MediaItem, cfg Config, passIndex uint64) ([]*models.MediaItem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	if cfg.Ordering == models.OrderingShuffle {
		return buildShufflePass(catalog, passIndex), nil
	}
	return buildSequentialPass(catalog), nil
}

// buildSequentialPass orders by ordinal ascending, identical for every
// pass index
func buildSequentialPass(catalog []*models.MediaItem) []*models.MediaItem {
	pass := make([]*models.MediaItem, len(catalog))
	copy(pass, catalog)
	sort.Slice(pass, func(i, j int) bool {
		return pass[i].ID < pass[j].ID
	})
	return pass
}

// buildShufflePass returns the deterministic permutation for a pass,
// adjusted so consecutive passes never show the same item twice in a
// row: if the raw permutation opens with the previous pass's closing
// item, the head is swapped with index 1. The swap never touches the
// last element of a pass with more than two items, so the adjustment
// needs only the raw previous permutation, not a recursive walk.
func buildShufflePass(catalog []*models.MediaItem, passIndex uint64) []*models.MediaItem {
	n := len(catalog)
	if passIndex == 0 || n < 2 {
		return rawShufflePass(catalog, passIndex)
	}

	// With exactly two items the no-repeat rule forces strict
	// alternation, which pins every pass to the pass-0 order.
	if n == 2 {
		return rawShufflePass(catalog, 0)
	}

	pass := rawShufflePass(catalog, passIndex)
	prev := rawShufflePass(catalog, passIndex-1)
	if pass[0].ID == prev[n-1].ID {
		pass[0], pass[1] = pass[1], pass[0]
	}
	return pass
}

// rawShufflePass runs a Fisher-Yates shuffle over the ordinal-ordered
// catalog, seeded from the catalog fingerprint and the pass index.
// Time of query never enters the seed.
func rawShufflePass(catalog []*models.MediaItem, passIndex uint64) []*models.MediaItem {
	pass := buildSequentialPass(catalog)

	rng := rand.New(rand.NewSource(passSeed(CatalogFingerprint(pass), passIndex)))
	for i := len(pass) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		pass[i], pass[j] = pass[j], pass[i]
	}
	return pass
}

// passSeed derives the shuffle seed from (catalog fingerprint, pass index)
func passSeed(fingerprint uint64, passIndex uint64) int64 {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], fingerprint)
	binary.BigEndian.PutUint64(buf[8:], passIndex)
	return int64(xxhash.Sum64(buf[:]))
}
