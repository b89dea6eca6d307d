package main

import (
	"fmt"
	"os"

	calc "github.com/tirecycle/feasibility/internal/calculation"
	"github.com/tirecycle/feasibility/internal/config"
	"github.com/tirecycle/feasibility/internal/domain"
)

// irr_trace prints every Newton-Raphson step of the IRR search for a plant configuration,
// as CSV, followed by the NPV at the solved rate.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: irr_trace <plant.yaml> [assumptions.yaml]")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	assumptions := domain.DefaultAssumptions()
	if len(os.Args) > 2 {
		if assumptions, err = p.LoadAssumptions(os.Args[2]); err != nil {
			panic(err)
		}
	}

	engine := calc.NewEngine(assumptions)
	a := engine.Analyze(*cfg)
	investment := a.Results.TotalInvestment
	net := a.Breakdown.Profitability.NetProfit

	fmt.Printf("# investment=%s net_profit=%s years=%d guess=%g\n",
		investment.StringFixed(2), net.StringFixed(2), assumptions.HorizonYears, assumptions.IRR.InitialGuess)
	fmt.Println("Iteration,Rate,NPV,Derivative")

	sol := calc.TraceIRR(investment, net, assumptions.HorizonYears, assumptions.IRR)
	for _, s := range sol.Trace {
		fmt.Printf("%d,%.8f,%.4f,%.4f\n", s.Iteration, s.Rate, s.NPV, s.Derivative)
	}

	fmt.Printf("\nconverged=%t iterations=%d residual=%.6f rate=%.4f%% computable=%t\n",
		sol.Converged, sol.Iterations, sol.Residual, sol.RatePercent, sol.Computable)
	if sol.Computable {
		rate := a.Results.IRRPercentage
		fmt.Printf("NPV at %s%%: %s\n", rate.StringFixed(4), calc.NPV(investment, net, rate, assumptions.HorizonYears).StringFixed(2))
	}
}
