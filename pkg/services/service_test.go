package services

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hostlists/pkg/errors"
)

func validService(id string) Service {
	return Service{
		ID:      id,
		Name:    "Service " + id,
		Rules:   []string{"||" + id + ".com^"},
		IconSVG: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="currentColor"><path d="M0 0h24v24H0z"/></svg>`,
		Group:   "streaming",
	}
}

func TestServiceValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Service)
		field  string
	}{
		{name: "valid", mutate: func(*Service) {}},
		{name: "empty rules list is valid", mutate: func(s *Service) { s.Rules = []string{} }},
		{name: "missing id", mutate: func(s *Service) { s.ID = "" }, field: "id"},
		{name: "path in id", mutate: func(s *Service) { s.ID = "../etc" }, field: "id"},
		{name: "missing name", mutate: func(s *Service) { s.Name = "" }, field: "name"},
		{name: "missing rules", mutate: func(s *Service) { s.Rules = nil }, field: "rules"},
		{name: "missing icon", mutate: func(s *Service) { s.IconSVG = "" }, field: "icon_svg"},
		{name: "missing group", mutate: func(s *Service) { s.Group = "" }, field: "group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validService("youtube")
			tt.mutate(&s)
			err := s.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *errors.ValidationError
			require.True(t, stderrors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestServiceEqualAndClone(t *testing.T) {
	a := validService("a")
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Rules[0] = "||changed.com^"
	assert.False(t, a.Equal(b))
	assert.Equal(t, "||a.com^", a.Rules[0], "clone must not share rules")

	c := validService("a")
	c.Group = "cdn"
	assert.False(t, a.Equal(c))
}

func TestSortByIDAndIndex(t *testing.T) {
	records := []Service{validService("c"), validService("a"), validService("b")}
	SortByID(records)
	assert.Equal(t, []string{"a", "b", "c"}, IDs(records))

	later := validService("a")
	later.Name = "Later"
	idx := Index(append(records, later))
	assert.Len(t, idx, 3)
	assert.Equal(t, "Later", idx["a"].Name)
}

func TestArtifactNormalize(t *testing.T) {
	a := &Artifact{BlockedServices: []Service{{ID: "x"}}}
	a.Normalize()
	assert.NotNil(t, a.Groups)
	assert.NotNil(t, a.BlockedServices[0].Rules)

	empty := &Artifact{}
	empty.Normalize()
	assert.Empty(t, empty.BlockedServices)
	assert.NotNil(t, empty.BlockedServices)
}

func TestServicesByGroup(t *testing.T) {
	a := validService("a")
	b := validService("b")
	b.Group = "cdn"
	c := validService("c")
	art := &Artifact{
		BlockedServices: []Service{a, b, c},
		Groups:          []Group{{ID: "cdn"}, {ID: "streaming"}},
	}
	byGroup := art.ServicesByGroup()
	assert.Equal(t, []string{"b"}, IDs(byGroup["cdn"]))
	assert.Equal(t, []string{"a", "c"}, IDs(byGroup["streaming"]))
}
