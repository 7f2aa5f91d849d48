package app

import (
	"fmt"

	"powercalc/domain/power"
	"powercalc/registry"
	"powercalc/solver"
)

// SolveService is the engine facade the UI and CLI consume. It routes a
// request to its family solver by the closed family enumeration; every call
// is a pure function of the request plus the read-only constant tables, so
// services are safe for arbitrary concurrent use.
type SolveService struct{}

// NewSolveService creates the engine facade.
func NewSolveService() *SolveService {
	return &SolveService{}
}

// SolvePower computes the power achieved at the given sample size.
// SampleSize must be set and Power unset; anything else is a contract
// violation, not a silent failure.
func (s *SolveService) SolvePower(req power.SolveRequest) (power.SolveResult, error) {
	if req.Power != nil {
		return power.SolveResult{}, power.NewContractError("power supplied to SolvePower")
	}
	if req.SampleSize == nil {
		return power.SolveResult{}, power.NewContractError("sample size required by SolvePower")
	}
	return s.dispatch(req)
}

// SolveSampleSize computes the sample size required for the given power.
func (s *SolveService) SolveSampleSize(req power.SolveRequest) (power.SolveResult, error) {
	if req.SampleSize != nil {
		return power.SolveResult{}, power.NewContractError("sample size supplied to SolveSampleSize")
	}
	if req.Power == nil {
		return power.SolveResult{}, power.NewContractError("power required by SolveSampleSize")
	}
	return s.dispatch(req)
}

// SolveForTest routes a request through the registry by display name,
// stamping the config's family onto the request.
func (s *SolveService) SolveForTest(testName string, req power.SolveRequest) (power.SolveResult, error) {
	cfg, ok := registry.Get(testName)
	if !ok {
		return power.SolveResult{}, fmt.Errorf("%w: %q", power.ErrUnknownTest, testName)
	}
	req.Family = cfg.Family
	return s.dispatch(req)
}

// ClusterAdjust inflates an individual-level required N for a
// cluster-randomized design.
func (s *SolveService) ClusterAdjust(individualN float64, clusterSize int, icc float64) (power.SolveResult, error) {
	return solver.SolveCluster(individualN, clusterSize, icc)
}

func (s *SolveService) dispatch(req power.SolveRequest) (power.SolveResult, error) {
	switch req.Family {
	case power.FamilyOneSampleT, power.FamilyPairedT:
		return solver.SolveOneSampleT(req)
	case power.FamilyTwoSampleT:
		return solver.SolveTwoSampleT(req)
	case power.FamilyANOVA:
		return solver.SolveANOVA(req)
	case power.FamilyTwoProportions:
		return solver.SolveTwoProportions(req)
	case power.FamilySingleProportion:
		return solver.SolveSingleProportion(req)
	case power.FamilyFisherExact:
		return solver.SolveFisherExact(req)
	case power.FamilyMannWhitney:
		return solver.SolveMannWhitney(req)
	case power.FamilyWilcoxon:
		return solver.SolveWilcoxon(req)
	case power.FamilyKruskalWallis:
		return solver.SolveKruskalWallis(req)
	case power.FamilyLogRank:
		return solver.SolveLogRank(req)
	case power.FamilyRepeatedMeasures:
		return solver.SolveRepeatedMeasures(req)
	default:
		return power.SolveResult{}, fmt.Errorf("%w: family %q", power.ErrUnknownTest, req.Family)
	}
}
