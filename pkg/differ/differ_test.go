package differ

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

func svc(id string) services.Service {
	return services.Service{
		ID:      id,
		Name:    "Service " + id,
		Rules:   []string{"||" + id + ".com^"},
		IconSVG: "<svg/>",
		Group:   "cdn",
	}
}

func svcs(ids ...string) []services.Service {
	out := make([]services.Service, len(ids))
	for i, id := range ids {
		out[i] = svc(id)
	}
	return out
}

func TestServices(t *testing.T) {
	t.Run("missing records in target order", func(t *testing.T) {
		target := svcs("d", "a", "c", "b")
		source := svcs("a", "b")
		missing, err := Services(target, source)
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "c"}, services.IDs(missing))
	})

	t.Run("nothing missing returns nil", func(t *testing.T) {
		a := svcs("a", "b", "c")
		missing, err := Services(a, a)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("empty target", func(t *testing.T) {
		missing, err := Services(nil, svcs("a"))
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("union minus source is the other part", func(t *testing.T) {
		for n := 0; n < 5; n++ {
			var a, b []services.Service
			for i := 0; i < n; i++ {
				a = append(a, svc(fmt.Sprintf("a%d", i)))
				b = append(b, svc(fmt.Sprintf("b%d", i)))
			}
			union := append(append([]services.Service{}, a...), b...)
			missing, err := Services(union, b)
			require.NoError(t, err)
			if diff := cmp.Diff(a, missing); diff != "" {
				t.Errorf("n=%d (-want +got):\n%s", n, diff)
			}
		}
	})

	t.Run("records without id are rejected", func(t *testing.T) {
		target := svcs("a", "", "c", "")
		_, err := Services(target, nil)
		var shape *errors.InputShapeError
		require.True(t, stderrors.As(err, &shape), "got %v", err)
		assert.Equal(t, []int{1, 3}, shape.Indexes)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("source matches by id only", func(t *testing.T) {
		changed := svc("a")
		changed.Name = "Renamed"
		missing, err := Services(svcs("a"), []services.Service{changed})
		require.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestGroups(t *testing.T) {
	target := []services.Group{{ID: "ai"}, {ID: "cdn"}, {ID: "dating"}}
	source := []services.Group{{ID: "cdn"}}
	assert.Equal(t, []services.Group{{ID: "ai"}, {ID: "dating"}}, Groups(target, source))
	assert.Nil(t, Groups(target, target))
	assert.Nil(t, Groups(nil, source))
}

func TestCompare(t *testing.T) {
	existing := svcs("keep", "edit", "gone")
	edited := svc("edit")
	edited.Name = "Edited"
	edited.Rules = []string{"||edit.com^", "||edit.net^"}
	updated := []services.Service{svc("keep"), edited, svc("new")}

	cs := New().Compare(existing, updated)
	require.True(t, cs.HasChanges())
	assert.Equal(t, []string{"new"}, services.IDs(cs.Added))
	assert.Equal(t, []string{"gone"}, services.IDs(cs.Removed))
	require.Len(t, cs.Updated, 1)

	upd := cs.Updated[0]
	assert.Equal(t, "edit", upd.ID)
	require.Len(t, upd.Changes, 2)
	assert.Equal(t, FieldChange{Path: "name", OldValue: "Service edit", NewValue: "Edited", Type: ChangeTypeUpdate}, upd.Changes[0])
	assert.Equal(t, FieldChange{Path: "rules", NewValue: "||edit.net^", Type: ChangeTypeAdd}, upd.Changes[1])

	assert.Equal(t, "1 added, 1 updated, 1 removed", cs.Summary())
	assert.Contains(t, cs.String(), "+ new")
	assert.Contains(t, cs.String(), "name: Service edit -> Edited")
	assert.Contains(t, cs.String(), "- gone")
}

func TestCompareOptions(t *testing.T) {
	a := svc("a")
	b := svc("a")
	b.IconSVG = "<svg viewBox=\"0 0 24 24\" fill=\"currentColor\"><path d=\"M0 0h24v24H0z\"/></svg>"

	t.Run("long values are truncated", func(t *testing.T) {
		cs := New(WithMaxValueLength(10)).Compare([]services.Service{a}, []services.Service{b})
		require.Len(t, cs.Updated, 1)
		assert.Equal(t, "<svg viewB...", cs.Updated[0].Changes[0].NewValue)
	})

	t.Run("ignored fields", func(t *testing.T) {
		cs := New(WithIgnoredFields("icon_svg")).Compare([]services.Service{a}, []services.Service{b})
		assert.False(t, cs.HasChanges())
		assert.Equal(t, "no changes", cs.Summary())
	})

	t.Run("rule reorder", func(t *testing.T) {
		x := svc("x")
		x.Rules = []string{"1", "2"}
		y := svc("x")
		y.Rules = []string{"2", "1"}
		cs := New().Compare([]services.Service{x}, []services.Service{y})
		require.Len(t, cs.Updated, 1)
		assert.Equal(t, ChangeTypeUpdate, cs.Updated[0].Changes[0].Type)
	})
}
