package tree

import (
	"math/bits"

	"github.com/digimatspa/entwine/bigid"
)

// ChunkInfo is the derived placement of a single tree index: which depth it
// falls at, which chunk owns it, that chunk's 0-based ordinal among all
// cold-band chunks, and the point's offset within the chunk.
type ChunkInfo struct {
	Depth       uint64
	ChunkId     bigid.Id
	ChunkNum    uint64
	ChunkOffset uint64
	ChunkPoints uint64
}

// binaryPow returns 2^(exp*baseLog2), i.e. (2^baseLog2)^exp computed as a
// single shift. Callers pass the dimensions count (2 or 3) as baseLog2, so
// the result is factor^exp (4^exp or 8^exp).
func binaryPow(baseLog2, exp uint64) bigid.Id {
	return bigid.FromUint64(1).Lsh(uint(exp * baseLog2))
}

// floorLogFactor returns floor(log_factor(x)) for factor a power of two,
// computed by exact repeated multiplication rather than a floating-point
// log so that the exact power-sum arguments this package produces can
// never round to the wrong depth.
func floorLogFactor(x bigid.Id, factor uint64) uint64 {
	var d uint64
	cur := bigid.FromUint64(1)
	for {
		next := cur.MulSmall(factor)
		if x.Less(next) {
			return d
		}
		cur = next
		d++
	}
}

// calcDepth returns the depth at which tree index equals index, for a tree
// with the given child factor (4 for a quadtree, 8 for an octree).
func calcDepth(factor uint64, index bigid.Id) uint64 {
	x := index.MulSmall(factor - 1).Add(bigid.FromUint64(1))
	return floorLogFactor(x, factor)
}

// calcLevelIndex returns the first tree index at the given depth.
func calcLevelIndex(dimensions, depth uint64) bigid.Id {
	factor := uint64(1) << dimensions
	numerator := binaryPow(dimensions, depth).Sub(bigid.FromUint64(1))
	q, _ := numerator.DivMod(factor - 1)
	return q
}

// pointsAtDepth returns the number of tree slots that exist at exactly the
// given depth.
func pointsAtDepth(dimensions, depth uint64) bigid.Id {
	return binaryPow(dimensions, depth)
}

// logN returns log2(val)/log2(n) for n in {4, 8}, the only two factors this
// tree supports (quadtree, octree).
func logN(val, n uint64) (uint64, error) {
	if n != 4 && n != 8 {
		return 0, configErrorf("invalid logN arg: %d", n)
	}
	if val == 0 {
		return 0, configErrorf("logN of zero is undefined")
	}
	log2n := uint64(bits.Len64(n) - 1)
	log2val := uint64(bits.Len64(val) - 1)
	return log2val / log2n, nil
}

// isPerfectLogN reports whether val == n^k for some non-negative integer k.
func isPerfectLogN(val, n uint64) bool {
	k, err := logN(val, n)
	if err != nil {
		return false
	}
	return uint64(1)<<(k*uint64(bits.Len64(n)-1)) == val
}

// newChunkInfo derives the ChunkInfo for tree index idx within s. idx must
// be at or past s.coldIndexBegin; the caller is responsible for routing
// null- and base-band indices elsewhere (spec: IndexOutOfBand is a
// programmer error, not a recoverable condition).
func newChunkInfo(s *Structure, idx bigid.Id) ChunkInfo {
	depth := calcDepth(s.factor, idx)
	levelIdx := calcLevelIndex(s.dimensions, depth)

	info := ChunkInfo{Depth: depth}

	if !s.sparse || !s.dynamicChunks || levelIdx.LessOrEqual(s.sparseIndexBegin) {
		info.ChunkPoints = s.chunkPoints
		q, r := idx.Sub(s.coldIndexBegin).DivMod(info.ChunkPoints)
		info.ChunkNum = q.MustSimple()
		info.ChunkOffset = r.MustSimple()
		info.ChunkId = s.coldIndexBegin.Add(q.MulSmall(info.ChunkPoints))
		return info
	}

	sparseFirstSpan := pointsAtDepth(s.dimensions, s.sparseDepthBegin).MustSimple()
	chunksPerSparseDepth := sparseFirstSpan / s.chunkPoints

	k := depth - s.sparseDepthBegin
	info.ChunkPoints = binaryPow(s.dimensions, k).MulSmall(s.chunkPoints).MustSimple()

	coldSpan := s.sparseIndexBegin.Sub(s.coldIndexBegin)
	numColdChunksQ, _ := coldSpan.DivMod(s.chunkPoints)
	numColdChunks := numColdChunksQ.MustSimple()

	prevLevelsChunkCount := numColdChunks + chunksPerSparseDepth*k

	levelOffset := idx.Sub(levelIdx).MustSimple()
	slot := levelOffset / info.ChunkPoints

	info.ChunkNum = prevLevelsChunkCount + slot
	info.ChunkOffset = levelOffset % info.ChunkPoints
	info.ChunkId = levelIdx.Add(bigid.FromUint64(slot).MulSmall(info.ChunkPoints))

	return info
}
