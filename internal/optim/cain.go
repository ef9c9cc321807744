package optim

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cain-ml/cain/internal/graph"
)

// condEpsilon guards the conditioned update against division by zero when
// the curvature estimate is still near zero (e.g. at step 0).
const condEpsilon = 1e-8

// correctionCutoff is the step count past which the curvature bias
// correction has decayed to within float precision of 1 and is skipped.
const correctionCutoff = 1_000_000

// config holds the hyperparameters that do not change after construction.
type config struct {
	numSubbatches           float64
	momentum                float64
	aggression              float64
	targetErr               float64
	subbatchIncreaseDamping float64
	subbatchDecreaseDamping float64
	rateAdaptCoefficient    float64
	maxEvalBatchSize        int
	minSubbatchSize         int
}

// Builder assembles a Cain optimizer through fluent configuration calls.
//
// Hyperparameters are used as given; out-of-range values are not rejected
// and silently produce degenerate adaptation. The only clamps applied at
// configuration time are NumSubbatches to at least 2 and the initial
// sub-batch size to at least MinSubbatchSize.
type Builder struct {
	initialLearningRate float64
	initialSubbatchSize float64
	progress            ProgressFunc
	cfg                 config
}

// New returns a Builder loaded with the default hyperparameters.
//
// Defaults:
//   - NumSubbatches: 8
//   - Momentum: 0.9
//   - Aggression: 0.75
//   - TargetErr: 0.75
//   - SubbatchIncreaseDamping / SubbatchDecreaseDamping: 0.15
//   - RateAdaptCoefficient: 1.05
//   - MaxEvalBatchSize: unbounded
//   - MinSubbatchSize: 1
//   - InitialLearningRate: 1e-4
//   - InitialSubbatchSize: 2
func New() *Builder {
	return &Builder{
		initialLearningRate: 1e-4,
		initialSubbatchSize: 2.0,
		cfg: config{
			numSubbatches:           8.0,
			momentum:                0.9,
			aggression:              0.75,
			targetErr:               0.75,
			subbatchIncreaseDamping: 0.15,
			subbatchDecreaseDamping: 0.15,
			rateAdaptCoefficient:    1.05,
			maxEvalBatchSize:        math.MaxInt,
			minSubbatchSize:         1,
		},
	}
}

// NumSubbatches sets how many independent sub-batches are drawn per step.
// Values below 2 are clamped to 2; the hold-one-out variance estimate
// needs at least two samples.
func (b *Builder) NumSubbatches(val int) *Builder {
	b.cfg.numSubbatches = math.Max(float64(val), 2.0)
	return b
}

// Momentum sets the exponential decay coefficient of the momentum vector,
// normally in [0, 1).
func (b *Builder) Momentum(val float64) *Builder {
	b.cfg.momentum = val
	return b
}

// Aggression sets the constant bias added to the cosine-similarity signal
// before it drives the learning rate.
func (b *Builder) Aggression(val float64) *Builder {
	b.cfg.aggression = val
	return b
}

// TargetErr sets the desired relative standard error of the gradient
// samples. 1.0 corresponds to random (orthogonal) unit-length vectors on
// each sample.
func (b *Builder) TargetErr(val float64) *Builder {
	b.cfg.targetErr = val
	return b
}

// SubbatchIncreaseDamping sets the exponent, in (0, 1], applied to the
// relative error when growing the batch size.
func (b *Builder) SubbatchIncreaseDamping(val float64) *Builder {
	b.cfg.subbatchIncreaseDamping = val
	return b
}

// SubbatchDecreaseDamping sets the exponent, in (0, 1], applied to the
// relative error when shrinking the batch size.
func (b *Builder) SubbatchDecreaseDamping(val float64) *Builder {
	b.cfg.subbatchDecreaseDamping = val
	return b
}

// RateAdaptCoefficient sets the base (> 1) of the learning-rate
// adaptation; each step multiplies the rate by coefficient^sim.
func (b *Builder) RateAdaptCoefficient(val float64) *Builder {
	b.cfg.rateAdaptCoefficient = val
	return b
}

// MaxEvalBatchSize caps the integer sub-batch size actually drawn from
// the supplier, regardless of how large the continuous batch size grows.
func (b *Builder) MaxEvalBatchSize(val int) *Builder {
	b.cfg.maxEvalBatchSize = val
	return b
}

// MinSubbatchSize sets the floor of the continuous batch size. If the
// initial sub-batch size would fall below the new minimum it is raised to
// match.
func (b *Builder) MinSubbatchSize(val int) *Builder {
	b.cfg.minSubbatchSize = val
	if float64(val) > b.initialSubbatchSize {
		b.initialSubbatchSize = float64(val)
	}
	return b
}

// InitialLearningRate sets the learning rate before any adaptation.
func (b *Builder) InitialLearningRate(val float64) *Builder {
	b.initialLearningRate = val
	return b
}

// InitialSubbatchSize sets the continuous batch size before any
// adaptation.
func (b *Builder) InitialSubbatchSize(val float64) *Builder {
	b.initialSubbatchSize = val
	return b
}

// Progress sets the sink that receives one diagnostic record per step.
// Nil (the default) disables progress reporting.
func (b *Builder) Progress(fn ProgressFunc) *Builder {
	b.progress = fn
	return b
}

// Finish consumes the builder and sizes the optimizer state against the
// graph's current parameter count. All per-parameter vectors start
// zero-filled.
func (b *Builder) Finish(g graph.Graph) *Cain {
	numParams := g.NumParams()
	return &Cain{
		cfg:          b.cfg,
		curvature:    make([]float64, numParams),
		learningRate: b.initialLearningRate,
		batchSize:    b.initialSubbatchSize,
		momentum:     make([]float64, numParams),
		prevGrad:     make([]float64, numParams),
		progress:     b.progress,
	}
}

// Cain is a first-order stochastic optimizer with adaptive batch size and
// adaptive step length.
//
// Per step, with n sub-batch gradients d_i and their mean g:
//
//	h_i      = (g - d_i/n) * n/(n-1)                  // hold-one-out mean
//	rel_err  = sqrt(Σ‖d_i-h_i‖² / (Σ‖h_i‖²·n) / n) / target_err
//	batch    = batch * clamp(rel_err, 0.125, 1000)^damping
//	curv     = decay*curv + (1-decay)*(g - m)²        // decay = max(momentum^¼, 0.9)
//	sim      = clamp(aggression + g·m / m·m, -8, 4)   // 0 on the first step
//	rate     = rate * rate_adapt_coefficient^sim
//	m        = momentum*m + (1-momentum)*g
//	param   -= rate * m / (sqrt(curv/(1-decay^t)) + 1e-8)
//
// Nil convergence guarantees: correctness means reproducing the same
// adaptive trajectory from the same inputs.
//
// All state is exclusively owned by the optimizer and mutated only by
// Step; callbacks observe read-only snapshots. Cain is not safe for
// concurrent use.
type Cain struct {
	cfg config

	evalCount uint64
	stepCount uint64

	curvature    []float64
	learningRate float64
	batchSize    float64

	momentum  []float64
	prevGrad  []float64
	callbacks []Callback
	progress  ProgressFunc
}

var _ Optimizer = (*Cain)(nil)

// subResult is one sub-batch's per-sample-averaged loss and gradient.
type subResult struct {
	loss float64
	grad []float64
}

// AddCallback registers a step callback. Invocation order is registration
// order.
func (c *Cain) AddCallback(cb Callback) {
	c.callbacks = append(c.callbacks, cb)
}

// LearningRate returns the current learning rate.
func (c *Cain) LearningRate() float64 { return c.learningRate }

// BatchSize returns the current continuous sub-batch size.
func (c *Cain) BatchSize() float64 { return c.batchSize }

// StepCount returns the number of completed steps.
func (c *Cain) StepCount() uint64 { return c.stepCount }

// EvalCount returns the total number of samples evaluated so far.
func (c *Cain) EvalCount() uint64 { return c.evalCount }

// partStep draws one sub-batch and returns its per-sample-averaged loss
// and gradient. Collaborator failures propagate undecorated; there are no
// retries.
func (c *Cain) partStep(g graph.Graph, sup graph.Supplier, params []float64, batchSize int) (float64, []float64, error) {
	inputs, targets, err := sup.NextN(batchSize)
	if err != nil {
		return 0, nil, err
	}
	loss, grad, _, err := g.Backprop(batchSize, inputs, targets, params)
	if err != nil {
		return 0, nil, err
	}

	inv := 1.0 / float64(batchSize)
	loss *= inv
	floats.Scale(inv, grad)

	c.evalCount += uint64(batchSize)
	return loss, grad, nil
}

// updateBatchSize adapts the continuous batch size from the hold-one-out
// variance of this step's sub-batch gradients and returns the unclamped
// relative error for diagnostics.
//
// rel_err near 1 means gradient noise at the target level; the batch
// grows when noise exceeds the target and shrinks otherwise, at the
// asymmetric rates set by the two damping exponents. The Σ‖h_i‖²
// denominator is deliberately not epsilon-guarded: near a stationary
// point rel_err blows up and the [0.125, 1000] clamp bounds the effect.
func (c *Cain) updateBatchSize(mean []float64, results []subResult) float64 {
	n := c.cfg.numSubbatches

	var relVar float64
	for _, r := range results {
		var diffDot, meanDot float64
		for i, m := range mean {
			h := (m - r.grad[i]/n) * n / (n - 1)
			diff := r.grad[i] - h
			diffDot += diff * diff
			meanDot += h * h
		}
		relVar += diffDot / (meanDot * n)
	}

	relErr := math.Sqrt(relVar/n) / c.cfg.targetErr

	// Comparison-based clamp: when every gradient is exactly zero relVar
	// is 0/0 and relErr is NaN, which must fall to the lower bound here
	// rather than poisoning the batch size for the rest of the run.
	clamped := relErr
	if clamped > 1000.0 {
		clamped = 1000.0
	} else if !(clamped > 0.125) {
		clamped = 0.125
	}
	if clamped > 1.0 {
		c.batchSize *= math.Pow(clamped, c.cfg.subbatchIncreaseDamping)
	} else {
		c.batchSize *= math.Pow(clamped, c.cfg.subbatchDecreaseDamping)
	}
	c.batchSize = math.Max(c.batchSize, float64(c.cfg.minSubbatchSize))

	return relErr
}

// curvatureDecay is shared by the curvature update and its bias
// correction; both must see the same decay.
func curvatureDecay(momentum float64) float64 {
	return math.Max(math.Pow(momentum, 1.0/4.0), 0.9)
}

// updateCurvature folds the mean gradient's squared deviation from the
// momentum vector into the diagonal curvature estimate. The accumulator
// is un-normalised; bias correction happens at use time in Step.
func (c *Cain) updateCurvature(mean []float64) {
	decay := curvatureDecay(c.cfg.momentum)
	floats.Scale(decay, c.curvature)

	for i, m := range mean {
		diff := m - c.momentum[i]
		c.curvature[i] += diff * diff * (1.0 - decay)
	}
}

// Step performs one optimization step: draws NumSubbatches sub-batches,
// adapts batch size and learning rate, applies the curvature-conditioned
// momentum update and returns the mean per-sample loss with the new
// parameter vector. The input parameter vector is not mutated.
//
// Inputs are assumed to be finite; NaN or Inf from the graph propagates
// through the state unguarded.
func (c *Cain) Step(g graph.Graph, sup graph.Supplier, params []float64) (float64, []float64, error) {
	subbatchSize := int(c.batchSize)
	if subbatchSize > c.cfg.maxEvalBatchSize {
		subbatchSize = c.cfg.maxEvalBatchSize
	}

	results := make([]subResult, 0, int(c.cfg.numSubbatches))
	for i := 0; i < int(c.cfg.numSubbatches); i++ {
		loss, grad, err := c.partStep(g, sup, params, subbatchSize)
		if err != nil {
			return 0, nil, err
		}
		results = append(results, subResult{loss: loss, grad: grad})
	}

	var loss float64
	mean := make([]float64, len(params))
	for _, r := range results {
		loss += r.loss
		floats.Add(mean, r.grad)
	}
	loss /= c.cfg.numSubbatches
	floats.Scale(1.0/c.cfg.numSubbatches, mean)

	relErr := c.updateBatchSize(mean, results)
	c.updateCurvature(mean)

	// On the first step the momentum vector is still zero and carries no
	// direction to compare against. Afterwards m·m is taken to be
	// nonzero; exact cancellation to zero momentum is unguarded.
	var sim float64
	if c.stepCount > 0 {
		sim = c.cfg.aggression + floats.Dot(mean, c.momentum)/floats.Dot(c.momentum, c.momentum)
		sim = math.Min(math.Max(sim, -8.0), 4.0)
	}
	newRate := c.learningRate * math.Pow(c.cfg.rateAdaptCoefficient, sim)

	floats.Scale(c.cfg.momentum, c.momentum)
	floats.AddScaled(c.momentum, 1.0-c.cfg.momentum, mean)

	decay := curvatureDecay(c.cfg.momentum)
	correction := 1.0
	if c.stepCount < correctionCutoff {
		correction = 1.0 / (1.0 - math.Pow(decay, float64(c.stepCount+1)))
	}

	change := make([]float64, len(params))
	for i, m := range c.momentum {
		change[i] = m / (math.Sqrt(c.curvature[i]*correction) + condEpsilon) * -newRate
	}

	newParams := make([]float64, len(params))
	copy(newParams, params)
	floats.Add(newParams, change)

	if c.progress != nil {
		c.progress(Progress{
			SamplesTaken:  sup.SamplesTaken(),
			Loss:          loss,
			RelErr:        relErr,
			NumSubbatches: c.cfg.numSubbatches,
			BatchSize:     int(c.batchSize),
			Sim:           sim,
			Rate:          newRate,
			StepNorm:      floats.Norm(change, 2),
		})
	}

	c.learningRate = newRate
	c.stepCount++
	copy(c.prevGrad, mean)

	return loss, newParams, nil
}

// OptimizeFrom repeatedly invokes Step, feeding each result back as the
// next working parameter vector, until a callback returns Stop. All
// callbacks of the final round still run, in registration order, before
// the loop exits. There is no intrinsic iteration limit.
//
// A collaborator failure aborts the loop and is returned together with
// the last good parameter vector.
func (c *Cain) OptimizeFrom(g graph.Graph, sup graph.Supplier, params []float64) ([]float64, error) {
	for {
		loss, newParams, err := c.Step(g, sup, params)
		if err != nil {
			return params, err
		}
		params = newParams

		stop := false
		for _, cb := range c.callbacks {
			data := StepData{
				Loss:      loss,
				StepCount: c.stepCount,
				EvalCount: c.evalCount,
				Graph:     g,
				Params:    params,
			}
			if cb(data) == Stop {
				stop = true
			}
		}
		if stop {
			return params, nil
		}
	}
}
