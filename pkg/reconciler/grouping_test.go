package reconciler

import (
	stderrors "errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hostlists/pkg/errors"
	"github.com/agentstation/hostlists/pkg/services"
)

func TestGroupAndSort(t *testing.T) {
	t.Run("groups and sorts", func(t *testing.T) {
		input := []services.Service{
			record("zoom", "messenger"),
			record("amazon", "shopping"),
			record("discord", "messenger"),
			record("Zalando", "shopping"),
		}

		art, err := GroupAndSort(input)
		require.NoError(t, err)
		assert.Equal(t, []string{"Zalando", "amazon", "discord", "zoom"}, services.IDs(art.BlockedServices))
		assert.Equal(t, []services.Group{{ID: "messenger"}, {ID: "shopping"}}, art.Groups)
		assert.Equal(t, "zoom", input[0].ID, "input must not be reordered")
	})

	t.Run("empty input", func(t *testing.T) {
		art, err := GroupAndSort(nil)
		require.NoError(t, err)
		assert.NotNil(t, art.BlockedServices)
		assert.NotNil(t, art.Groups)
		assert.Empty(t, art.BlockedServices)
		assert.Empty(t, art.Groups)
	})

	t.Run("every missing group is reported", func(t *testing.T) {
		input := []services.Service{
			record("a", ""),
			record("b", "cdn"),
			record("c", ""),
		}
		_, err := GroupAndSort(input)
		var gerr *errors.GroupValidationError
		require.True(t, stderrors.As(err, &gerr), "got %v", err)
		assert.Equal(t, []string{"a", "c"}, gerr.IDs())
	})

	t.Run("permutations give identical output", func(t *testing.T) {
		base := []services.Service{
			record("a", "cdn"),
			record("b", "ai"),
			record("c", "gaming"),
			record("d", "ai"),
			record("e", "cdn"),
			record("f", "streaming"),
		}
		want, err := GroupAndSort(base)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 20; i++ {
			shuffled := append([]services.Service{}, base...)
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			got, err := GroupAndSort(shuffled)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("permutation %d differs (-want +got):\n%s", i, diff)
			}
		}
	})

	t.Run("groups match distinct service groups", func(t *testing.T) {
		input := []services.Service{record("a", "cdn"), record("b", "cdn"), record("c", "ai")}
		art, err := GroupAndSort(input)
		require.NoError(t, err)
		assert.Equal(t, []string{"ai", "cdn"}, services.GroupIDs(art.Groups))
	})
}
