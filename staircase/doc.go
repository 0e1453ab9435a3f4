// Package staircase estimates perceptual thresholds with a QUEST-style
// Bayesian adaptive procedure.
//
// A Staircase keeps a discretized posterior over the threshold of a Weibull
// psychometric function in log stimulus units. Each trial, the caller asks
// for a recommendation, presents a stimulus at (or near) that value, and
// feeds the binary outcome back in. The posterior sharpens trial by trial;
// the run terminates once its standard deviation falls below a target, or at
// a hard trial ceiling.
//
// # Usage
//
//	s, err := staircase.New(
//	    staircase.WithPrior(math.Log10(4), 1),
//	    staircase.WithStopRule(15, 60, 0.08),
//	)
//	if err != nil {
//	    // handle configuration error
//	}
//
//	levels := []float64{0, 0.30, 0.48, 0.60, 0.70, 0.78, 0.85, 0.90, 0.95, 1}
//
//	for s.State() == staircase.Active {
//	    x, _ := s.RecommendOn(levels)
//	    outcome := presentTrial(x) // caller's presentation layer
//	    if err := s.Update(x, outcome); err != nil {
//	        break
//	    }
//	}
//	estimate := s.Recommend()
//
// A run is strictly sequential. Independent thresholds (say, figure coherence
// and background tone count) are estimated by independent Staircase
// instances; one run may consume another's final estimate as a fixed input,
// but instances never share state.
package staircase
