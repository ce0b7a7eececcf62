package tree

import "github.com/digimatspa/entwine/geom"

// timesForSplits maps a subset split count to the number of descents
// needed to reach it: 4 -> depth 1, 16 -> depth 2, 64 -> depth 3.
func timesForSplits(splits uint64) (uint64, error) {
	switch splits {
	case 4:
		return 1, nil
	case 16:
		return 2, nil
	case 64:
		return 3, nil
	default:
		return 0, configErrorf("invalid magnification subset: %d", splits)
	}
}

// SubsetBBox computes the bounding region of this structure's subset
// shard within full, by descending a Climber log4(splits) times. Octree
// subset splitting is not supported: a 3D structure or a 3D full region
// returns ErrUnsupportedSplit3D.
func (s *Structure) SubsetBBox(full geom.BBox) (geom.BBox, error) {
	if s.dimensions == 3 || full.Is3D {
		return geom.BBox{}, ErrUnsupportedSplit3D
	}

	times, err := timesForSplits(s.subsetSplits)
	if err != nil {
		return geom.BBox{}, err
	}

	climber := NewClimber(full)
	for i := uint64(0); i < times; i++ {
		dir := geom.DirectionFromTwoBits(s.subsetID >> (i * 2))
		climber.Go(dir)
	}

	return climber.BBox(), nil
}
