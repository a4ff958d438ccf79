//-----------------------------------------------------------------------------
// Copyright (c) 2022-present Detlef Stern
//
// This file is part of sx.
//
// sx is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//
// SPDX-License-Identifier: EUPL-1.2
// SPDX-FileCopyrightText: 2022-present Detlef Stern
//-----------------------------------------------------------------------------

package lispvm

import "github.com/sahilm/fuzzy"

// suggest returns the closest known identifier to name, for an
// UnboundVariableError's "did you mean" hint: the best-ranked fuzzy match,
// or "" if no known identifier matches name at all.
func (m *Machine) suggest(name string) string {
	names := m.Env.Names()
	if len(names) == 0 {
		return ""
	}
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
