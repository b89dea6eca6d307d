package calculation

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
)

// SolveIRR finds the rate at which the flat annuity NPV is zero using Newton-Raphson.
//
// The iteration starts at settings.InitialGuess and stops when |npv| drops below
// settings.NPVTolerance (converged), when |derivative| drops below settings.DerivativeFloor,
// or after settings.MaxIterations steps. The raw root is then checked for plausibility:
// it is Computable only for a positive net profit, a converged and finite rate, and
// |rate| <= settings.MaxPlausiblePercent.
func SolveIRR(investment, netProfit decimal.Decimal, years int, settings domain.IRRSettings) domain.IRRSolution {
	return solveIRR(investment, netProfit, years, settings, false)
}

// TraceIRR is SolveIRR with every Newton step recorded in the solution.
func TraceIRR(investment, netProfit decimal.Decimal, years int, settings domain.IRRSettings) domain.IRRSolution {
	return solveIRR(investment, netProfit, years, settings, true)
}

func solveIRR(investment, netProfit decimal.Decimal, years int, settings domain.IRRSettings, trace bool) domain.IRRSolution {
	inv := investment.InexactFloat64()
	cf := netProfit.InexactFloat64()

	var sol domain.IRRSolution
	rate := settings.InitialGuess
	for i := 1; i <= settings.MaxIterations; i++ {
		npv, deriv := npvAt(rate, inv, cf, years)
		sol.Iterations = i
		sol.Residual = npv
		if trace {
			sol.Trace = append(sol.Trace, domain.IRRStep{Iteration: i, Rate: rate, NPV: npv, Derivative: deriv})
		}
		if !finite(npv) || !finite(deriv) {
			break
		}
		if math.Abs(npv) < settings.NPVTolerance {
			sol.Converged = true
			break
		}
		if math.Abs(deriv) < settings.DerivativeFloor {
			break
		}
		rate -= npv / deriv
		if !finite(rate) || rate <= -1 {
			break
		}
	}

	sol.RatePercent = rate * 100
	sol.Computable = netProfit.IsPositive() &&
		sol.Converged &&
		finite(sol.RatePercent) &&
		math.Abs(sol.RatePercent) <= settings.MaxPlausiblePercent
	return sol
}

// irrPercentage converts a solution into the value stored on FinancialResults.
// Non-computable rates are reported as zero with IRRComputable false.
func irrPercentage(sol domain.IRRSolution) decimal.Decimal {
	if !sol.Computable {
		return decimal.Zero
	}
	return decimal.NewFromFloat(sol.RatePercent).Round(4)
}
