package tree

import "github.com/digimatspa/entwine/bigid"

// Dimensions returns 2 or 3.
func (s *Structure) Dimensions() uint64 { return s.dimensions }

// Factor returns 4 (quadtree) or 8 (octree).
func (s *Structure) Factor() uint64 { return s.factor }

// BaseChunkPoints returns the nominal, non-sparse chunk size.
func (s *Structure) BaseChunkPoints() uint64 { return s.chunkPoints }

// DynamicChunks reports whether chunk size grows with depth past the
// sparse threshold.
func (s *Structure) DynamicChunks() bool { return s.dynamicChunks }

// NumPointsHint returns the configured point-count hint, or 0 if none was
// given.
func (s *Structure) NumPointsHint() uint64 { return s.numPointsHint }

// NullDepthEnd, BaseDepthEnd, ColdDepthEnd return the exclusive upper bound
// of each depth band. ColdDepthEnd of 0 means unbounded.
func (s *Structure) NullDepthEnd() uint64 { return s.nullDepthEnd }
func (s *Structure) BaseDepthEnd() uint64 { return s.baseDepthEnd }
func (s *Structure) ColdDepthEnd() uint64 { return s.coldDepthEnd }

// ColdIndexBegin returns the first tree index in the cold band.
func (s *Structure) ColdIndexBegin() bigid.Id { return s.coldIndexBegin }

// SparseDepthBegin returns the depth at which chunk size begins to grow,
// or (0, false) if the structure was built without a point-count hint.
func (s *Structure) SparseDepthBegin() (uint64, bool) {
	return s.sparseDepthBegin, s.sparse
}

// ChunkInfo derives the placement of tree index idx. idx must lie at or
// past ColdIndexBegin(); calling this on a null- or base-band index panics
// (the subtraction of ColdIndexBegin underflows) rather than returning an
// error, since routing those indices elsewhere is the caller's
// responsibility.
func (s *Structure) ChunkInfo(idx bigid.Id) ChunkInfo {
	return newChunkInfo(s, idx)
}

// NumChunksAtDepth returns how many chunks exist at the given depth: a
// constant past the sparse threshold (the defining property of dynamic
// chunking), otherwise the exact span of the depth divided by chunk size.
func (s *Structure) NumChunksAtDepth(depth uint64) uint64 {
	if !s.sparse || !s.dynamicChunks || depth <= s.sparseDepthBegin {
		depthSpan := calcLevelIndex(s.dimensions, depth+1).Sub(calcLevelIndex(s.dimensions, depth))
		q, _ := depthSpan.DivMod(s.chunkPoints)
		return q.MustSimple()
	}
	sparseFirstSpan := pointsAtDepth(s.dimensions, s.sparseDepthBegin)
	q, _ := sparseFirstSpan.DivMod(s.chunkPoints)
	return q.MustSimple()
}

// GetInfoFromNum is the left-inverse of ChunkInfo.ChunkNum: for any chunk
// number n reachable in the cold band, GetInfoFromNum(n).ChunkNum == n.
func (s *Structure) GetInfoFromNum(chunkNum uint64) ChunkInfo {
	var chunkId bigid.Id

	if s.hasCold() {
		if s.sparse && s.dynamicChunks {
			endFixed := calcLevelIndex(s.dimensions, s.sparseDepthBegin+1)
			fixedSpan := endFixed.Sub(s.coldIndexBegin)
			fixedNumQ, _ := fixedSpan.DivMod(s.chunkPoints)
			fixedNum := fixedNumQ.MustSimple()

			if chunkNum < fixedNum {
				chunkId = s.coldIndexBegin.Add(bigid.FromUint64(chunkNum).MulSmall(s.chunkPoints))
			} else {
				leftover := chunkNum - fixedNum
				chunksPerSparseDepth := s.NumChunksAtDepth(s.sparseDepthBegin)

				depth := s.sparseDepthBegin + 1 + leftover/chunksPerSparseDepth
				chunkNumInDepth := leftover % chunksPerSparseDepth

				depthIndexBegin := calcLevelIndex(s.dimensions, depth)
				depthChunkSizeQ, _ := pointsAtDepth(s.dimensions, depth).DivMod(chunksPerSparseDepth)
				depthChunkSize := depthChunkSizeQ.MustSimple()

				chunkId = depthIndexBegin.Add(bigid.FromUint64(chunkNumInDepth).MulSmall(depthChunkSize))
			}
		} else {
			chunkId = s.coldIndexBegin.Add(bigid.FromUint64(chunkNum).MulSmall(s.chunkPoints))
		}
	}

	return s.ChunkInfo(chunkId)
}

// IsSubset reports whether this structure identifies one shard of a split
// index.
func (s *Structure) IsSubset() bool {
	return s.subsetSplits != 0
}

// Subset returns the (id, splits) pair identifying this shard. (0, 0)
// means whole.
func (s *Structure) Subset() (id, splits uint64) {
	return s.subsetID, s.subsetSplits
}

// MakeWhole erases subset identity, used when merging shards back into a
// single coherent index.
func (s *Structure) MakeWhole() {
	s.subsetID = 0
	s.subsetSplits = 0
}

// SubsetPostfix returns "-<id>" when this structure is a subset, otherwise
// the empty string. Used by the external chunk store to name shard-scoped
// artifacts without colliding.
func (s *Structure) SubsetPostfix() string {
	if !s.IsSubset() {
		return ""
	}
	return "-" + bigid.FromUint64(s.subsetID).String()
}

// Equal reports whether two structures carry the same configuration,
// field-by-field (the round-trip law for ToMetadata/NewStructureFromMetadata).
func (s *Structure) Equal(other *Structure) bool {
	return s.ToMetadata() == other.ToMetadata()
}
