package master

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/avasek/smesim/internal/liouville"
	"github.com/avasek/smesim/internal/sde"
)

// Params collects the physical inputs shared by every integrator variant.
type Params struct {
	Coupling *mat.CDense
	Msq      complex128
	N        float64
	H        *mat.CDense
	Basis    liouville.Basis
}

var constructors = map[string]func(Params, []Option) (Integrator, error){
	"vacuum": func(p Params, _ []Option) (Integrator, error) {
		return NewVacuum(p.Coupling, p.Basis)
	},
	"gaussian": func(p Params, _ []Option) (Integrator, error) {
		return NewGaussian(p.Coupling, p.Msq, p.N, p.H, p.Basis)
	},
	"milstein": func(p Params, opts []Option) (Integrator, error) {
		return NewMilsteinHomodyne(p.Coupling, p.Msq, p.N, p.H, p.Basis, opts...)
	},
	"taylor15": func(p Params, opts []Option) (Integrator, error) {
		return NewTaylor15Homodyne(p.Coupling, p.Msq, p.N, p.H, p.Basis, opts...)
	},
	"faulty-milstein": func(p Params, opts []Option) (Integrator, error) {
		return NewFaultyMilsteinHomodyne(p.Coupling, p.Msq, p.N, p.H, p.Basis, opts...)
	},
}

// New builds an integrator by scheme name.
func New(scheme string, p Params, opts ...Option) (Integrator, error) {
	ctor, ok := constructors[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", sde.ErrUnknownScheme, scheme, Schemes())
	}
	return ctor(p, opts)
}

// Schemes lists the registered integrator names.
func Schemes() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
