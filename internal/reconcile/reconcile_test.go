package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notesync/internal/models"
)

type record struct {
	id string
	ts int64
}

func (r record) GetID() string       { return r.id }
func (r record) GetUpdatedAt() int64 { return r.ts }

func ids[T Syncable](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.GetID())
	}
	return out
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		local      []record
		remote     []record
		wantAdd    []string
		wantUpdate []string
		wantDelete []string
	}{
		{
			name: "both empty",
		},
		{
			name:    "remote only",
			remote:  []record{{"b", 1}, {"a", 1}},
			wantAdd: []string{"a", "b"},
		},
		{
			name:       "local only",
			local:      []record{{"x", 5}},
			wantDelete: []string{"x"},
		},
		{
			name:   "identical",
			local:  []record{{"a", 1}, {"b", 2}},
			remote: []record{{"b", 2}, {"a", 1}},
		},
		{
			name:   "equal timestamps are not updates",
			local:  []record{{"n1", 100}},
			remote: []record{{"n1", 100}},
		},
		{
			name:       "remote newer",
			local:      []record{{"n1", 100}},
			remote:     []record{{"n1", 200}},
			wantUpdate: []string{"n1"},
		},
		{
			name:   "local newer is kept",
			local:  []record{{"n1", 300}},
			remote: []record{{"n1", 200}},
		},
		{
			name:       "disjoint",
			local:      []record{{"l1", 1}, {"l2", 1}},
			remote:     []record{{"r1", 1}},
			wantAdd:    []string{"r1"},
			wantDelete: []string{"l1", "l2"},
		},
		{
			name:       "mixed",
			local:      []record{{"n1", 100}, {"n2", 50}},
			remote:     []record{{"n1", 200}, {"n3", 10}},
			wantAdd:    []string{"n3"},
			wantUpdate: []string{"n1"},
			wantDelete: []string{"n2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.local, tt.remote)

			assert.Equal(t, orEmpty(tt.wantAdd), ids(got.ToAdd))
			assert.Equal(t, orEmpty(tt.wantUpdate), ids(got.ToUpdate))
			assert.Equal(t, orEmpty(tt.wantDelete), orEmpty(got.ToDelete))
		})
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// applying a result and reconciling again yields nothing to do
func TestReconcile_Idempotent(t *testing.T) {
	local := []record{{"a", 1}, {"b", 5}, {"c", 3}}
	remote := []record{{"a", 2}, {"c", 3}, {"d", 7}}

	first := Reconcile(local, remote)
	require.False(t, first.Empty())

	applied := apply(local, first)
	second := Reconcile(applied, remote)
	assert.True(t, second.Empty())
}

func TestReconcile_InputOrderDoesNotMatter(t *testing.T) {
	local := []record{{"c", 1}, {"a", 1}, {"z", 1}}
	remote := []record{{"d", 1}, {"c", 2}, {"b", 1}}

	first := Reconcile(local, remote)
	reversed := Reconcile(reverse(local), reverse(remote))

	assert.Equal(t, first, reversed)
}

func TestReconcile_NeverSchedulesLocalChangesUpstream(t *testing.T) {
	local := []record{{"n1", 500}}
	remote := []record{{"n1", 100}}

	got := Reconcile(local, remote)

	// remote stays as is; the local copy is simply kept
	assert.True(t, got.Empty())
}

func TestReconcile_DuplicateIDsKeepNewest(t *testing.T) {
	remote := []record{{"a", 1}, {"a", 9}, {"a", 4}}
	local := []record{{"a", 5}}

	got := Reconcile(local, remote)
	require.Len(t, got.ToUpdate, 1)
	assert.Equal(t, int64(9), got.ToUpdate[0].GetUpdatedAt())
}

func TestReconcile_Entities(t *testing.T) {
	local := []*models.Entity{
		{ID: "n1", Type: models.EntityTypeNote, UpdatedAt: 100},
		{ID: "n2", Type: models.EntityTypeNote, UpdatedAt: 50},
	}
	remote := []*models.Entity{
		{ID: "n1", Type: models.EntityTypeNote, UpdatedAt: 200},
		{ID: "n3", Type: models.EntityTypeNote, UpdatedAt: 10},
	}

	got := Reconcile(local, remote)

	require.Len(t, got.ToAdd, 1)
	assert.Equal(t, "n3", got.ToAdd[0].ID)
	require.Len(t, got.ToUpdate, 1)
	assert.Equal(t, int64(200), got.ToUpdate[0].UpdatedAt)
	assert.Equal(t, []string{"n2"}, got.ToDelete)
}

func apply(local []record, r Result[record]) []record {
	byID := make(map[string]record, len(local))
	for _, l := range local {
		byID[l.id] = l
	}
	for _, a := range r.ToAdd {
		byID[a.id] = a
	}
	for _, u := range r.ToUpdate {
		byID[u.id] = u
	}
	for _, id := range r.ToDelete {
		delete(byID, id)
	}
	out := make([]record, 0, len(byID))
	for _, v := range byID {
		out = append(out, v)
	}
	return out
}

func reverse(in []record) []record {
	out := make([]record, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
