// Package tree implements the hierarchical point-cloud index algebra: the
// Structure configuration, the ChunkInfo derivation, and the Climber used
// to compute subset bounding regions. Apart from Structure.MakeWhole, which
// changes a Structure in place, it is purely functional over immutable
// inputs and safe to call from any number of goroutines at once.
package tree

import (
	"github.com/digimatspa/entwine/bigid"
	"github.com/digimatspa/entwine/internal/logging"
)

// Params are the explicit construction parameters for a Structure, the
// in-process analogue of the persisted metadata document in package
// config.
type Params struct {
	NullDepth     uint64
	BaseDepth     uint64
	ColdDepth     uint64 // 0 means unbounded.
	ChunkPoints   uint64
	Dimensions    uint64 // 2 or 3.
	NumPointsHint uint64 // 0 means "never sparse".
	DynamicChunks bool
	SubsetID      uint64
	SubsetSplits  uint64 // 0, 4, 16, or 64.
}

// Metadata is the persisted-metadata shape described in spec.md §6,
// round-tripped by Structure.ToMetadata / NewStructureFromMetadata.
type Metadata struct {
	NullDepth     uint64    `json:"nullDepth"`
	BaseDepth     uint64    `json:"baseDepth"`
	ColdDepth     uint64    `json:"coldDepth"`
	ChunkPoints   uint64    `json:"chunkPoints"`
	Dimensions    uint64    `json:"dimensions"`
	NumPointsHint uint64    `json:"numPointsHint"`
	DynamicChunks bool      `json:"dynamicChunks"`
	Subset        [2]uint64 `json:"subset"`
}

// Structure holds a fully validated index configuration: the depth bands,
// chunk sizing policy, and subset identity. It is immutable after
// construction except for MakeWhole, which clears the subset identity. All
// derived boundaries are computed once at construction and never recomputed.
type Structure struct {
	nullDepthBegin, nullDepthEnd uint64
	baseDepthBegin, baseDepthEnd uint64
	coldDepthBegin, coldDepthEnd uint64

	dimensions uint64
	factor     uint64

	chunkPoints   uint64
	dynamicChunks bool
	numPointsHint uint64

	sparse           bool
	sparseDepthBegin uint64
	sparseIndexBegin bigid.Id

	subsetID, subsetSplits uint64

	nullIndexBegin, nullIndexEnd bigid.Id
	baseIndexBegin, baseIndexEnd bigid.Id
	coldIndexBegin, coldIndexEnd bigid.Id

	nominalChunkDepth uint64
	nominalChunkIndex bigid.Id
}

// NewStructure constructs and validates a Structure from explicit
// parameters.
func NewStructure(p Params) (*Structure, error) {
	if p.Dimensions != 2 && p.Dimensions != 3 {
		return nil, configErrorf("dimensions must be 2 or 3, got %d", p.Dimensions)
	}

	s := &Structure{
		nullDepthBegin: 0,
		nullDepthEnd:   p.NullDepth,
		baseDepthBegin: p.NullDepth,
		baseDepthEnd:   max(p.NullDepth, p.BaseDepth),
		dimensions:     p.Dimensions,
		factor:         uint64(1) << p.Dimensions,
		chunkPoints:    p.ChunkPoints,
		dynamicChunks:  p.DynamicChunks,
		numPointsHint:  p.NumPointsHint,
		subsetID:       p.SubsetID,
		subsetSplits:   p.SubsetSplits,
	}
	s.coldDepthBegin = s.baseDepthEnd
	s.coldDepthEnd = max(s.coldDepthBegin, p.ColdDepth)
	if p.ColdDepth == 0 {
		s.coldDepthEnd = 0
	}

	if err := s.loadIndexValues(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStructureFromMetadata constructs a Structure from a persisted
// metadata document.
func NewStructureFromMetadata(m Metadata) (*Structure, error) {
	return NewStructure(Params{
		NullDepth:     m.NullDepth,
		BaseDepth:     m.BaseDepth,
		ColdDepth:     m.ColdDepth,
		ChunkPoints:   m.ChunkPoints,
		Dimensions:    m.Dimensions,
		NumPointsHint: m.NumPointsHint,
		DynamicChunks: m.DynamicChunks,
		SubsetID:      m.Subset[0],
		SubsetSplits:  m.Subset[1],
	})
}

// ToMetadata serializes the structure's parameters. NewStructureFromMetadata
// round-trips: NewStructureFromMetadata(s.ToMetadata()) yields an equal
// structure.
func (s *Structure) ToMetadata() Metadata {
	return Metadata{
		NullDepth:     s.nullDepthEnd,
		BaseDepth:     s.baseDepthEnd,
		ColdDepth:     s.coldDepthEnd,
		ChunkPoints:   s.chunkPoints,
		Dimensions:    s.dimensions,
		NumPointsHint: s.numPointsHint,
		DynamicChunks: s.dynamicChunks,
		Subset:        [2]uint64{s.subsetID, s.subsetSplits},
	}
}

func max(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// hasCold reports whether the cold band is non-empty: either unbounded, or
// bounded with positive width.
func (s *Structure) hasCold() bool {
	return s.coldDepthEnd == 0 || s.coldDepthEnd > s.coldDepthBegin
}

// floorLogFactorUint64 returns floor(log_factor(val)) for a machine-word
// value, by the same exact repeated-multiplication approach as
// floorLogFactor, just without the big.Int overhead since val always fits a
// word here (a point-count hint, not a tree index).
func floorLogFactorUint64(val, factor uint64) uint64 {
	var d uint64
	cur := uint64(1)
	for cur*factor <= val && cur*factor > cur {
		cur *= factor
		d++
	}
	return d
}

func (s *Structure) loadIndexValues() error {
	if s.baseDepthEnd < 4 {
		return configErrorf("base depth too small: %d (must be >= 4)", s.baseDepthEnd)
	}

	if s.chunkPoints == 0 && s.hasCold() {
		return configErrorf("points per chunk not specified, but a cold depth was given")
	}

	if s.hasCold() && !isPerfectLogN(s.chunkPoints, s.factor) {
		return configErrorf(
			"invalid chunk specification - must be of the form %d^n for this tree", s.factor)
	}

	if s.hasCold() {
		depth, err := logN(s.chunkPoints, s.factor)
		if err != nil {
			return configErrorf("%s", err)
		}
		s.nominalChunkDepth = depth
		s.nominalChunkIndex = calcLevelIndex(s.dimensions, s.nominalChunkDepth)
	}

	s.nullIndexBegin = bigid.Zero()
	s.nullIndexEnd = calcLevelIndex(s.dimensions, s.nullDepthEnd)
	s.baseIndexBegin = s.nullIndexEnd
	s.baseIndexEnd = calcLevelIndex(s.dimensions, s.baseDepthEnd)
	s.coldIndexBegin = s.baseIndexEnd
	if s.coldDepthEnd != 0 {
		s.coldIndexEnd = calcLevelIndex(s.dimensions, s.coldDepthEnd)
	} else {
		s.coldIndexEnd = bigid.Zero()
	}

	if s.numPointsHint > 0 {
		s.sparse = true
		hintDepth := floorLogFactorUint64(s.numPointsHint, s.factor)
		s.sparseDepthBegin = max(hintDepth+1, s.coldDepthBegin)
		s.sparseIndexBegin = calcLevelIndex(s.dimensions, s.sparseDepthBegin)
	} else {
		logging.Global().Warn(
			"no numPointsHint provided; for more than a few billion points " +
				"there may be a large performance hit")
	}

	if s.subsetSplits != 0 {
		if s.nullDepthEnd == 0 || pow4(s.nullDepthEnd) < s.subsetSplits {
			return configErrorf("invalid null depth for requested subset")
		}
		if s.subsetSplits != 4 && s.subsetSplits != 16 && s.subsetSplits != 64 {
			return configErrorf("invalid subset split: %d", s.subsetSplits)
		}
		if s.subsetID >= s.subsetSplits {
			return configErrorf("invalid subset identifier: %d >= %d", s.subsetID, s.subsetSplits)
		}
		if s.hasCold() {
			coldFirstSpan := pointsAtDepth(s.dimensions, s.coldDepthBegin).MustSimple()
			ratio := coldFirstSpan / s.chunkPoints
			if ratio < s.subsetSplits || ratio%s.subsetSplits != 0 {
				return configErrorf("invalid chunk size for this subset")
			}
		}
	}

	return nil
}

func pow4(n uint64) uint64 {
	return uint64(1) << (2 * n)
}
