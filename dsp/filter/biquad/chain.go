package biquad

// Chain is an ordered cascade of biquad sections processed in series.
type Chain struct {
	sections []Section
}

// NewChain creates a cascade from one or more coefficient sets.
// Each Coefficients value becomes one Section in the cascade.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// DCGain returns the product of the section DC gains.
func (c *Chain) DCGain() float64 {
	g := 1.0
	for i := range c.sections {
		g *= c.sections[i].DCGain()
	}

	return g
}

// Prime loads the steady-state response to the constant input x into every
// section, so a signal starting at x passes through without a start-up
// transient. Each section sees x scaled by the DC gain of the sections
// before it.
func (c *Chain) Prime(x float64) {
	in := x
	for i := range c.sections {
		c.sections[i].SetState(c.sections[i].SteadyState(in))
		in *= c.sections[i].DCGain()
	}
}
