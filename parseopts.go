package formulas

// Option is an option for compiling formulas.
type Option interface {
	option(config) config
}

// config holds the definitions used to compile formulas.
type config struct {
	ops []Operator
	fns []Function
	// ok is set once the definitions have been validated.
	ok bool
}

type (
	opsopt []Operator
	fnsopt struct {
		fns []Function
		add bool
	}
)

// WithOperators replaces the operators used for compiling. Operators are
// matched in order, so any operator whose symbol begins with another
// operator's symbol must be listed before it.
func WithOperators(ops ...Operator) Option {
	return opsopt(ops)
}

func (o opsopt) option(c config) config {
	c.ops = append(([]Operator)(nil), o...)
	return c
}

// WithFunctions replaces the functions used for compiling. To disable all
// functions, pass no arguments; their names will be placeholders instead.
func WithFunctions(fns ...Function) Option {
	return &fnsopt{fns: fns}
}

// AddFunctions adds functions to those used for compiling.
func AddFunctions(fns ...Function) Option {
	return &fnsopt{fns: fns, add: true}
}

// WithMath adds MathFunctions to the functions used for compiling.
func WithMath() Option {
	return AddFunctions(MathFunctions()...)
}

func (o *fnsopt) option(c config) config {
	if o.add {
		c.fns = append(append(([]Function)(nil), c.fns...), o.fns...)
		return c
	}
	c.fns = append(([]Function)(nil), o.fns...)
	return c
}

// configure applies opts in order to the default definitions and validates
// the result.
func configure(opts []Option) (config, error) {
	c := config{ops: DefaultOperators(), fns: LogicalFunctions()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	if err := ValidateOperators(c.ops); err != nil {
		return config{}, err
	}
	if err := ValidateFunctions(c.fns, c.ops); err != nil {
		return config{}, err
	}
	c.ok = true
	return c, nil
}
