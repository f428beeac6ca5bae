// Package reconcile computes the difference between a local collection and
// the authoritative remote collection of syncable records.
//
// Reconciliation is one-directional: the remote side always wins, records
// that only exist locally are scheduled for deletion, and local changes are
// never pushed from here. Outbound changes travel through the sync queue.
package reconcile

import (
	"cmp"
	"slices"
)

// Syncable is a record that can be reconciled by id and last-write timestamp.
type Syncable interface {
	GetID() string
	GetUpdatedAt() int64
}

// Result describes what has to change locally to match the remote.
type Result[T Syncable] struct {
	ToAdd    []T      // ToAdd записи, которые есть только на сервере
	ToUpdate []T      // ToUpdate записи, где серверная версия строго новее
	ToDelete []string // ToDelete идентификаторы записей, которых нет на сервере
}

// Empty reports whether the result carries no changes.
func (r Result[T]) Empty() bool {
	return len(r.ToAdd) == 0 && len(r.ToUpdate) == 0 && len(r.ToDelete) == 0
}

// Reconcile compares local and remote collections.
//
// A remote record with the same id and an equal timestamp is not an update.
// All three lists are sorted by id so the result does not depend on input
// order. Duplicated ids inside one collection keep the newest record.
func Reconcile[T Syncable](local, remote []T) Result[T] {
	localByID := index(local)
	remoteByID := index(remote)

	var result Result[T]

	for id, r := range remoteByID {
		l, ok := localByID[id]
		switch {
		case !ok:
			result.ToAdd = append(result.ToAdd, r)
		case r.GetUpdatedAt() > l.GetUpdatedAt():
			result.ToUpdate = append(result.ToUpdate, r)
		}
	}

	for id := range localByID {
		if _, ok := remoteByID[id]; !ok {
			result.ToDelete = append(result.ToDelete, id)
		}
	}

	byID := func(a, b T) int { return cmp.Compare(a.GetID(), b.GetID()) }
	slices.SortFunc(result.ToAdd, byID)
	slices.SortFunc(result.ToUpdate, byID)
	slices.Sort(result.ToDelete)

	return result
}

func index[T Syncable](items []T) map[string]T {
	m := make(map[string]T, len(items))
	for _, item := range items {
		id := item.GetID()
		if prev, ok := m[id]; ok && prev.GetUpdatedAt() >= item.GetUpdatedAt() {
			continue
		}
		m[id] = item
	}
	return m
}
