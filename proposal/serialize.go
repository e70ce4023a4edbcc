/*
 * serialize.go, part of expanded-ensembles.
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
	"encoding/json"
	"fmt"
	"io"

	"github.com/choderalab/expanded-ensembles/chem"
	"github.com/choderalab/expanded-ensembles/match"
	"github.com/klauspost/compress/zstd"
)

// Archive is the persisted form of a proposal setup: the candidate keys, the
// pairwise proposal probability matrix and the atom maps already computed
// between pairs, keyed "oldkey>newkey". Atom maps are the expensive part to
// recompute, so runs over the same candidate set reload them from here.
type Archive struct {
	Keys          []string                  `json:"keys"`
	Probabilities [][]float64               `json:"probabilities,omitempty"`
	Maps          map[string]*match.AtomMap `json:"maps,omitempty"`
}

// MapKey builds the Maps key for a directed pair of chemical keys.
func MapKey(oldKey, newKey string) string {
	return oldKey + ">" + newKey
}

// validate checks the archive for internal consistency.
func (a *Archive) validate() error {
	n := len(a.Keys)
	if a.Probabilities != nil {
		if len(a.Probabilities) != n {
			return chem.NewError("Archive",
				fmt.Sprintf("probability matrix has %d rows for %d keys", len(a.Probabilities), n))
		}
		for i, row := range a.Probabilities {
			if len(row) != n {
				return chem.NewError("Archive",
					fmt.Sprintf("probability matrix row %d has %d columns for %d keys", i, len(row), n))
			}
		}
	}
	return nil
}

// WriteProposalArchive writes the archive as zstd-compressed JSON.
func WriteProposalArchive(w io.Writer, a *Archive) error {
	if err := a.validate(); err != nil {
		return chem.DecorateError(err, "WriteProposalArchive")
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return chem.NewError("WriteProposalArchive", err.Error())
	}
	if err := json.NewEncoder(zw).Encode(a); err != nil {
		zw.Close()
		return chem.NewError("WriteProposalArchive", err.Error())
	}
	if err := zw.Close(); err != nil {
		return chem.NewError("WriteProposalArchive", err.Error())
	}
	return nil
}

// ReadProposalArchive reads an archive written by WriteProposalArchive.
func ReadProposalArchive(r io.Reader) (*Archive, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, chem.NewError("ReadProposalArchive", err.Error())
	}
	defer zr.Close()
	a := new(Archive)
	if err := json.NewDecoder(zr).Decode(a); err != nil {
		return nil, chem.NewError("ReadProposalArchive", err.Error())
	}
	if err := a.validate(); err != nil {
		return nil, chem.DecorateError(err, "ReadProposalArchive")
	}
	return a, nil
}
