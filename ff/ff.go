/*
 * ff.go, part of expanded-ensembles.
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

package ff

import "fmt"

// ForceKind tags the force categories a System can contain. The set is
// closed: anything a foreign system carries that does not fit one of the
// supported kinds is registered as Unsupported, so downstream consumers can
// fail loudly instead of silently dropping energy terms.
type ForceKind int

const (
	Bond ForceKind = iota
	Angle
	Torsion
	Nonbonded
	Barostat
	Unsupported
)

func (k ForceKind) String() string {
	switch k {
	case Bond:
		return "HarmonicBond"
	case Angle:
		return "HarmonicAngle"
	case Torsion:
		return "PeriodicTorsion"
	case Nonbonded:
		return "Nonbonded"
	case Barostat:
		return "MonteCarloBarostat"
	case Unsupported:
		return "Unsupported"
	}
	return fmt.Sprintf("ForceKind(%d)", int(k))
}

// Particle holds the per-particle parameters: mass in g/mol, charge in
// elementary charges, Lennard-Jones sigma in nm and epsilon in kJ/mol.
type Particle struct {
	Mass    float64
	Charge  float64
	Sigma   float64
	Epsilon float64
}

// HarmonicBond is a harmonic stretch term, V = K/2 (r-R0)^2, with K in
// kJ/mol/nm^2 and R0 in nm.
type HarmonicBond struct {
	At1, At2 int
	R0       float64
	K        float64
}

// HarmonicAngle is a harmonic bend term, V = K/2 (theta-Theta0)^2, with K in
// kJ/mol/rad^2 and Theta0 in radians. At2 is the central atom.
type HarmonicAngle struct {
	At1, At2, At3 int
	Theta0        float64
	K             float64
}

// PeriodicTorsion is one cosine term, V = Barrier (1 + cos(n*phi - Phase)).
// Several terms may share the same four atoms.
type PeriodicTorsion struct {
	At1, At2, At3, At4 int
	Periodicity        int
	Phase              float64
	Barrier            float64
}

// Exception replaces the regular nonbonded interaction between a pair of
// particles. 1-2 and 1-3 pairs get all-zero exceptions (full exclusion); 1-4
// pairs get scaled parameters. ChargeProd is the already-scaled product of
// the two charges.
type Exception struct {
	At1, At2   int
	ChargeProd float64
	Sigma      float64
	Epsilon    float64
}

// MonteCarloBarostat holds the pressure coupling parameters of a periodic
// system. Pressure in bar, temperature in K.
type MonteCarloBarostat struct {
	Pressure    float64
	Temperature float64
	Frequency   int
}

// System is a fully parameterized simulation system. Build one through the
// Add* mutators, then treat it as read-only; every accessor hands back values
// or copies, never internal slices that would let a caller mutate terms in
// place.
type System struct {
	particles   []Particle
	bonds       []HarmonicBond
	angles      []HarmonicAngle
	torsions    []PeriodicTorsion
	exceptions  []Exception
	barostat    *MonteCarloBarostat
	unsupported []string
	box         []float64 //9 elements, row-major box vectors, nil if not periodic
}

// NewSystem returns an empty System.
func NewSystem() *System {
	return new(System)
}

// AddParticle appends a particle and returns its index.
func (S *System) AddParticle(p Particle) int {
	S.particles = append(S.particles, p)
	return len(S.particles) - 1
}

// AddBond appends a harmonic bond term and returns its index.
func (S *System) AddBond(b HarmonicBond) int {
	S.bonds = append(S.bonds, b)
	return len(S.bonds) - 1
}

// AddAngle appends a harmonic angle term and returns its index.
func (S *System) AddAngle(a HarmonicAngle) int {
	S.angles = append(S.angles, a)
	return len(S.angles) - 1
}

// AddTorsion appends a periodic torsion term and returns its index.
func (S *System) AddTorsion(t PeriodicTorsion) int {
	S.torsions = append(S.torsions, t)
	return len(S.torsions) - 1
}

// AddException appends a nonbonded exception and returns its index.
func (S *System) AddException(e Exception) int {
	S.exceptions = append(S.exceptions, e)
	return len(S.exceptions) - 1
}

// SetBarostat attaches pressure coupling to the system. A nil argument
// removes it.
func (S *System) SetBarostat(b *MonteCarloBarostat) {
	S.barostat = b
}

// GetBarostat returns the barostat, or nil.
func (S *System) GetBarostat() *MonteCarloBarostat {
	return S.barostat
}

// SetBox sets the periodic box vectors (9 elements, row-major).
func (S *System) SetBox(box []float64) {
	S.box = box
}

// Box returns the periodic box vectors, or nil for a non-periodic system.
func (S *System) Box() []float64 {
	return S.box
}

// AddUnsupportedForce registers a force of a kind this library does not
// model, identified by name. Consumers that cannot tolerate missing energy
// terms check Forces for Unsupported entries and refuse the system.
func (S *System) AddUnsupportedForce(name string) {
	S.unsupported = append(S.unsupported, name)
}

// UnsupportedForces returns the names of the registered unsupported forces.
func (S *System) UnsupportedForces() []string {
	return S.unsupported
}

// NumParticles returns the number of particles.
func (S *System) NumParticles() int {
	return len(S.particles)
}

// NumBonds returns the number of harmonic bond terms.
func (S *System) NumBonds() int {
	return len(S.bonds)
}

// NumAngles returns the number of harmonic angle terms.
func (S *System) NumAngles() int {
	return len(S.angles)
}

// NumTorsions returns the number of periodic torsion terms.
func (S *System) NumTorsions() int {
	return len(S.torsions)
}

// NumExceptions returns the number of nonbonded exceptions.
func (S *System) NumExceptions() int {
	return len(S.exceptions)
}

// ParticleParameters returns the parameters of particle i. Panics if out of
// range.
func (S *System) ParticleParameters(i int) Particle {
	if i < 0 || i >= len(S.particles) {
		panic(fmt.Sprintf("ff: particle %d out of range (%d particles)", i, len(S.particles)))
	}
	return S.particles[i]
}

// SetParticleParameters overwrites the parameters of particle i. Panics if
// out of range.
func (S *System) SetParticleParameters(i int, p Particle) {
	if i < 0 || i >= len(S.particles) {
		panic(fmt.Sprintf("ff: particle %d out of range (%d particles)", i, len(S.particles)))
	}
	S.particles[i] = p
}

// BondParameters returns bond term i. Panics if out of range.
func (S *System) BondParameters(i int) HarmonicBond {
	if i < 0 || i >= len(S.bonds) {
		panic(fmt.Sprintf("ff: bond term %d out of range (%d terms)", i, len(S.bonds)))
	}
	return S.bonds[i]
}

// AngleParameters returns angle term i. Panics if out of range.
func (S *System) AngleParameters(i int) HarmonicAngle {
	if i < 0 || i >= len(S.angles) {
		panic(fmt.Sprintf("ff: angle term %d out of range (%d terms)", i, len(S.angles)))
	}
	return S.angles[i]
}

// TorsionParameters returns torsion term i. Panics if out of range.
func (S *System) TorsionParameters(i int) PeriodicTorsion {
	if i < 0 || i >= len(S.torsions) {
		panic(fmt.Sprintf("ff: torsion term %d out of range (%d terms)", i, len(S.torsions)))
	}
	return S.torsions[i]
}

// ExceptionParameters returns exception i. Panics if out of range.
func (S *System) ExceptionParameters(i int) Exception {
	if i < 0 || i >= len(S.exceptions) {
		panic(fmt.Sprintf("ff: exception %d out of range (%d exceptions)", i, len(S.exceptions)))
	}
	return S.exceptions[i]
}

// Forces enumerates the force kinds present in the system, one entry per
// registered unsupported force.
func (S *System) Forces() []ForceKind {
	var kinds []ForceKind
	if len(S.bonds) > 0 {
		kinds = append(kinds, Bond)
	}
	if len(S.angles) > 0 {
		kinds = append(kinds, Angle)
	}
	if len(S.torsions) > 0 {
		kinds = append(kinds, Torsion)
	}
	if len(S.particles) > 0 {
		kinds = append(kinds, Nonbonded)
	}
	if S.barostat != nil {
		kinds = append(kinds, Barostat)
	}
	for range S.unsupported {
		kinds = append(kinds, Unsupported)
	}
	return kinds
}

// TorsionsOn returns the torsion terms whose four atoms are exactly the
// given quadruple, in either direction.
func (S *System) TorsionsOn(at1, at2, at3, at4 int) []PeriodicTorsion {
	var out []PeriodicTorsion
	for _, t := range S.torsions {
		if (t.At1 == at1 && t.At2 == at2 && t.At3 == at3 && t.At4 == at4) ||
			(t.At1 == at4 && t.At2 == at3 && t.At3 == at2 && t.At4 == at1) {
			out = append(out, t)
		}
	}
	return out
}

// BondOn returns the bond term joining the pair, in either order, and whether
// one exists.
func (S *System) BondOn(at1, at2 int) (HarmonicBond, bool) {
	for _, b := range S.bonds {
		if (b.At1 == at1 && b.At2 == at2) || (b.At1 == at2 && b.At2 == at1) {
			return b, true
		}
	}
	return HarmonicBond{}, false
}

// AngleOn returns the angle term for the ordered triple (central atom second),
// accepting the reversed direction, and whether one exists.
func (S *System) AngleOn(at1, at2, at3 int) (HarmonicAngle, bool) {
	for _, a := range S.angles {
		if a.At2 != at2 {
			continue
		}
		if (a.At1 == at1 && a.At3 == at3) || (a.At1 == at3 && a.At3 == at1) {
			return a, true
		}
	}
	return HarmonicAngle{}, false
}
