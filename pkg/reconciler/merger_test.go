package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hostlists/pkg/services"
)

func TestMerge(t *testing.T) {
	t.Run("second set wins on collisions", func(t *testing.T) {
		dest := []services.Service{named(record("x", "cdn"), "from dest")}
		src := []services.Service{named(record("x", "cdn"), "from source")}

		merged := Merge(dest, src)
		require.Len(t, merged, 1)
		assert.Equal(t, "from source", merged[0].Name)

		reversed := Merge(src, dest)
		require.Len(t, reversed, 1)
		assert.Equal(t, "from dest", reversed[0].Name)
	})

	t.Run("union keeps first-seen order", func(t *testing.T) {
		a := []services.Service{record("c", "cdn"), record("a", "cdn")}
		b := []services.Service{record("b", "cdn"), record("c", "ai")}

		merged := Merge(a, b)
		assert.Equal(t, []string{"c", "a", "b"}, services.IDs(merged))
		assert.Equal(t, "ai", merged[0].Group)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, Merge(nil, nil))
		assert.Equal(t, []string{"a"}, services.IDs(Merge(nil, []services.Service{record("a", "ai")})))
		assert.Equal(t, []string{"a"}, services.IDs(Merge([]services.Service{record("a", "ai")}, nil)))
	})

	t.Run("duplicates within one set collapse to the last", func(t *testing.T) {
		a := []services.Service{named(record("a", "ai"), "first"), named(record("a", "ai"), "second")}
		merged := Merge(a, nil)
		require.Len(t, merged, 1)
		assert.Equal(t, "second", merged[0].Name)
	})

	t.Run("inputs are not shared", func(t *testing.T) {
		src := []services.Service{record("a", "ai")}
		merged := Merge(nil, src)
		merged[0].Rules[0] = "mutated"
		assert.Equal(t, "||a.com^", src[0].Rules[0])
	})
}
