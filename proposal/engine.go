/*
 * engine.go, part of expanded-ensembles.
 *
 * Copyright 2016 the expanded-ensembles developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package proposal

import (
	"fmt"
	"math/rand/v2"

	"github.com/choderalab/expanded-ensembles/chem"
	"github.com/choderalab/expanded-ensembles/ff"
	"github.com/choderalab/expanded-ensembles/match"
	"go.uber.org/zap"
)

// Solvent selects the environment treatment of the proposal engine.
type Solvent int

const (
	Vacuum Solvent = iota
	Implicit
	Explicit
)

func (s Solvent) String() string {
	switch s {
	case Vacuum:
		return "vacuum"
	case Implicit:
		return "implicit"
	case Explicit:
		return "explicit"
	}
	return fmt.Sprintf("Solvent(%d)", int(s))
}

// Config describes the environment the proposals are made in. One Engine
// type covers all environments; there is no subtype per setup.
type Config struct {
	//HasReceptor declares that proposals happen in a receptor complex.
	//Receptor must then hold the receptor topology, whose atoms come first
	//in every complete system.
	HasReceptor bool
	Receptor    *chem.Topology
	//Solvent selects the environment treatment. Explicit requires every
	//candidate topology to carry periodic box vectors; Vacuum forbids them.
	Solvent Solvent
	//Padding is the solvent padding in nm, kept as metadata for the
	//preparation pipeline that built the boxes.
	Padding float64
}

// Candidate is one chemical state the engine can jump to: a stable key
// naming it and its (ligand) topology.
type Candidate struct {
	Key      string
	Topology *chem.Topology
}

// ChoiceFunc picks one of n candidates and returns its index together with
// the log probability correction for the pick (forward minus reverse).
type ChoiceFunc func(rng *rand.Rand, n int) (int, float64)

// UniformChoice is the default ChoiceFunc: every candidate is equally
// likely, and since the reverse jump chooses from a pool of the same size
// the correction cancels to zero.
func UniformChoice(rng *rand.Rand, n int) (int, float64) {
	return rng.IntN(n), 0
}

// Options collects the optional knobs of an Engine. The zero value (or
// DefaultOptions) gives uniform candidate choice and no logging.
type Options struct {
	choice ChoiceFunc
	log    *zap.Logger
}

// DefaultOptions returns an Options with the default settings.
func DefaultOptions() *Options {
	return &Options{}
}

// SetChoiceFunc replaces the candidate choice distribution.
func (O *Options) SetChoiceFunc(f ChoiceFunc) {
	O.choice = f
}

// SetLogger sets a logger for debug traces of each proposal.
func (O *Options) SetLogger(l *zap.Logger) {
	O.log = l
}

// ParameterizationError reports that a candidate could not be parameterized.
// It is a chem.ParameterError and keeps the chemical key and the underlying
// cause.
type ParameterizationError struct {
	*chem.CError
	Key string
	Err error
}

func (err *ParameterizationError) ParameterProblem() {}

func (err *ParameterizationError) Unwrap() error { return err.Err }

type configError struct {
	*chem.CError
}

func (err *configError) ConfigProblem() {}

// Engine proposes jumps between the registered chemical states. It is safe
// for sequential use only; the RNG is threaded through Propose explicitly.
type Engine struct {
	cfg        Config
	param      ff.Parameterizer
	candidates []Candidate
	byKey      map[string]int
	sysCache   map[string]*ff.System
	topCache   map[string]*chem.Topology //complete (receptor-merged) topologies
	choice     ChoiceFunc
	log        *zap.Logger
}

// NewEngine builds a proposal engine over the given candidate set. At least
// two candidates are needed, keys must be unique, and the Config must be
// internally consistent.
func NewEngine(cfg Config, param ff.Parameterizer, candidates []Candidate, options ...*Options) (*Engine, error) {
	if param == nil {
		return nil, &configError{chem.NewError("NewEngine", "nil parameterizer")}
	}
	if len(candidates) < 2 {
		return nil, &configError{chem.NewError("NewEngine",
			fmt.Sprintf("need at least 2 candidate states, got %d", len(candidates)))}
	}
	if cfg.HasReceptor && cfg.Receptor == nil {
		return nil, &configError{chem.NewError("NewEngine", "HasReceptor set without a receptor topology")}
	}
	if !cfg.HasReceptor && cfg.Receptor != nil {
		return nil, &configError{chem.NewError("NewEngine", "receptor topology given without HasReceptor")}
	}
	e := &Engine{
		cfg:        cfg,
		param:      param,
		candidates: candidates,
		byKey:      make(map[string]int, len(candidates)),
		sysCache:   make(map[string]*ff.System),
		topCache:   make(map[string]*chem.Topology),
		choice:     UniformChoice,
		log:        zap.NewNop(),
	}
	for i, c := range candidates {
		if c.Topology == nil {
			return nil, &configError{chem.NewError("NewEngine", fmt.Sprintf("candidate %q has a nil topology", c.Key))}
		}
		if _, dup := e.byKey[c.Key]; dup {
			return nil, &configError{chem.NewError("NewEngine", fmt.Sprintf("duplicate candidate key %q", c.Key))}
		}
		if cfg.Solvent == Explicit && c.Topology.Box() == nil {
			return nil, &configError{chem.NewError("NewEngine",
				fmt.Sprintf("explicit solvent but candidate %q has no box", c.Key))}
		}
		if cfg.Solvent == Vacuum && c.Topology.Box() != nil {
			return nil, &configError{chem.NewError("NewEngine",
				fmt.Sprintf("vacuum environment but candidate %q has a box", c.Key))}
		}
		e.byKey[c.Key] = i
	}
	for _, o := range options {
		if o == nil {
			continue
		}
		if o.choice != nil {
			e.choice = o.choice
		}
		if o.log != nil {
			e.log = o.log
		}
	}
	return e, nil
}

// Keys returns the candidate keys in registration order.
func (e *Engine) Keys() []string {
	out := make([]string, len(e.candidates))
	for i, c := range e.candidates {
		out[i] = c.Key
	}
	return out
}

// Propose picks a chemical state different from the current one, maps its
// atoms onto the current state and returns the packaged TopologyProposal.
// The RNG is the only source of randomness used.
func (e *Engine) Propose(currentKey string, rng *rand.Rand) (*TopologyProposal, error) {
	ci, ok := e.byKey[currentKey]
	if !ok {
		return nil, &configError{chem.NewError("Propose", fmt.Sprintf("unknown current state %q", currentKey))}
	}
	pool := make([]int, 0, len(e.candidates)-1)
	for i := range e.candidates {
		if i != ci {
			pool = append(pool, i)
		}
	}
	pick, logp := e.choice(rng, len(pool))
	if pick < 0 || pick >= len(pool) {
		return nil, &configError{chem.NewError("Propose", fmt.Sprintf("choice function picked %d of %d", pick, len(pool)))}
	}
	ni := pool[pick]
	cur := e.candidates[ci]
	next := e.candidates[ni]
	e.log.Debug("proposing topology jump",
		zap.String("from", cur.Key), zap.String("to", next.Key),
		zap.Float64("logp_choice", logp))

	m, err := match.Match(cur.Topology, next.Topology)
	if err != nil {
		return nil, chem.DecorateError(err, "Propose")
	}
	oldTop, err := e.completeTopology(cur)
	if err != nil {
		return nil, chem.DecorateError(err, "Propose")
	}
	newTop, err := e.completeTopology(next)
	if err != nil {
		return nil, chem.DecorateError(err, "Propose")
	}
	if e.cfg.HasReceptor {
		m, err = withReceptorIdentity(m, e.cfg.Receptor.Len())
		if err != nil {
			return nil, chem.DecorateError(err, "Propose")
		}
	}
	oldSys, err := e.systemFor(cur.Key, oldTop)
	if err != nil {
		return nil, err
	}
	newSys, err := e.systemFor(next.Key, newTop)
	if err != nil {
		return nil, err
	}
	prop, err := NewTopologyProposal(oldTop, newTop, oldSys, newSys, m, logp, cur.Key, next.Key)
	if err != nil {
		return nil, chem.DecorateError(err, "Propose")
	}
	e.log.Debug("topology jump packaged",
		zap.Int("mapped", m.Len()),
		zap.Int("unique_new", len(m.UniqueNew())),
		zap.Int("unique_old", len(m.UniqueOld())),
		zap.Int("charge_diff", prop.ChargeDiff()))
	return prop, nil
}

// completeTopology returns the candidate topology with the receptor merged
// in front, cached per key.
func (e *Engine) completeTopology(c Candidate) (*chem.Topology, error) {
	if !e.cfg.HasReceptor {
		return c.Topology, nil
	}
	if t, ok := e.topCache[c.Key]; ok {
		return t, nil
	}
	t, err := mergeTopologies(e.cfg.Receptor, c.Topology)
	if err != nil {
		return nil, chem.DecorateError(err, "completeTopology")
	}
	e.topCache[c.Key] = t
	return t, nil
}

// systemFor parameterizes the complete topology of a candidate, cached per
// key.
func (e *Engine) systemFor(key string, top *chem.Topology) (*ff.System, error) {
	if s, ok := e.sysCache[key]; ok {
		return s, nil
	}
	s, err := e.param.Parameterize(top)
	if err != nil {
		return nil, &ParameterizationError{
			CError: chem.NewError("systemFor", fmt.Sprintf("parameterization of %q failed: %v", key, err)),
			Key:    key,
			Err:    err,
		}
	}
	e.sysCache[key] = s
	return s, nil
}

// withReceptorIdentity shifts a ligand-only atom map past the receptor atoms
// and maps the receptor onto itself.
func withReceptorIdentity(m *match.AtomMap, receptorAtoms int) (*match.AtomMap, error) {
	full := make(map[int]int, m.Len()+receptorAtoms)
	for i := 0; i < receptorAtoms; i++ {
		full[i] = i
	}
	for _, p := range m.Pairs() {
		full[p[0]+receptorAtoms] = p[1]+receptorAtoms
	}
	return match.MakeAtomMap(full, m.NumOld()+receptorAtoms, m.NumNew()+receptorAtoms)
}

// mergeTopologies deep-copies the receptor and ligand into one topology,
// receptor atoms first. Bonds are rebuilt on the copies, so the inputs are
// never touched.
func mergeTopologies(receptor, ligand *chem.Topology) (*chem.Topology, error) {
	atoms := make([]*chem.Atom, 0, receptor.Len()+ligand.Len())
	for i := 0; i < receptor.Len(); i++ {
		atoms = append(atoms, receptor.Atom(i).Copy())
	}
	for i := 0; i < ligand.Len(); i++ {
		atoms = append(atoms, ligand.Atom(i).Copy())
	}
	nb := 0
	for _, b := range receptor.Bonds() {
		chem.NewBond(nb, atoms[b.At1.Index], atoms[b.At2.Index])
		nb++
	}
	off := receptor.Len()
	for _, b := range ligand.Bonds() {
		chem.NewBond(nb, atoms[b.At1.Index+off], atoms[b.At2.Index+off])
		nb++
	}
	box := receptor.Box()
	if box == nil {
		box = ligand.Box()
	}
	return chem.MakeTopology(atoms, receptor.Charge()+ligand.Charge(), box)
}
