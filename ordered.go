/*
Copyright © 2019 the ncstructure authors.
This file is part of ncstructure.

ncstructure is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ncstructure is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ncstructure.  If not, see <http://www.gnu.org/licenses/>.
*/

package ncstructure

// orderedMap holds values in insertion order together with a
// name -> position index.
type orderedMap[T any] struct {
	keys  []string
	vals  []T
	index map[string]int
}

func (m *orderedMap[T]) get(name string) (T, bool) {
	i, ok := m.index[name]
	if !ok {
		var zero T
		return zero, false
	}
	return m.vals[i], true
}

func (m *orderedMap[T]) has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// add appends v under name. It returns false if name is already present.
func (m *orderedMap[T]) add(name string, v T) bool {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if _, ok := m.index[name]; ok {
		return false
	}
	m.index[name] = len(m.keys)
	m.keys = append(m.keys, name)
	m.vals = append(m.vals, v)
	return true
}

// rename changes the key of an entry while keeping its position.
// The caller must check that oldName exists and newName does not.
func (m *orderedMap[T]) rename(oldName, newName string) {
	i := m.index[oldName]
	delete(m.index, oldName)
	m.index[newName] = i
	m.keys[i] = newName
}

// remove deletes the named entry, shifting later entries forward.
func (m *orderedMap[T]) remove(name string) bool {
	i, ok := m.index[name]
	if !ok {
		return false
	}
	delete(m.index, name)
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
	return true
}

// values returns a copy of the values in insertion order.
func (m *orderedMap[T]) values() []T {
	o := make([]T, len(m.vals))
	copy(o, m.vals)
	return o
}
