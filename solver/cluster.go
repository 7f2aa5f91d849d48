package solver

import (
	"math"

	"powercalc/domain/power"
)

// DesignEffect computes DEFF = 1 + (m-1)*ICC for a cluster-randomized design
// with cluster size m. DEFF is exactly 1 at ICC 0 and strictly increasing in
// both ICC and cluster size.
func DesignEffect(icc float64, clusterSize int) (float64, error) {
	if icc < 0 || icc >= 1 {
		return 0, power.NewInvalidInputError("intra-cluster correlation", "must be in [0,1)")
	}
	if clusterSize < 2 {
		return 0, power.NewInvalidInputError("cluster size", "must be at least 2")
	}
	return 1 + float64(clusterSize-1)*icc, nil
}

// SolveCluster inflates an individual-level required N by the design effect
// and converts it to a cluster count.
func SolveCluster(individualN float64, clusterSize int, icc float64) (power.SolveResult, error) {
	if individualN < 1 {
		return power.SolveResult{}, power.NewInvalidInputError("individual-level N", "must be at least 1")
	}
	deff, err := DesignEffect(icc, clusterSize)
	if err != nil {
		return power.SolveResult{}, err
	}

	inflated := individualN * deff
	clusters := int(math.Ceil(inflated / float64(clusterSize)))
	return power.SolveResult{
		TotalSize:    power.Float(inflated),
		DesignEffect: power.Float(deff),
		Clusters:     &clusters,
	}, nil
}
