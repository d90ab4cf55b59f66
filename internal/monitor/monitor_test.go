package monitor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relmon/relmon/internal/config"
	"github.com/relmon/relmon/internal/monitor"
)

func newStore() *monitor.Store {
	return monitor.New(config.Config{EntityCapacity: 8, RelationCapacity: 8, InnerCapacity: 8})
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *monitor.Store)
		want  string
	}{
		{
			name: "basic in-degree",
			setup: func(s *monitor.Store) {
				s.AddEntity("alice")
				s.AddEntity("bob")
				s.AddRelation("alice", "bob", "knows")
			},
			want: "\"knows\" \"bob\" 1;\n",
		},
		{
			name: "tied in-degrees across destinations",
			setup: func(s *monitor.Store) {
				for _, e := range []string{"a", "b", "c", "d"} {
					s.AddEntity(e)
				}
				s.AddRelation("a", "c", "r")
				s.AddRelation("b", "c", "r")
				s.AddRelation("a", "d", "r")
				s.AddRelation("b", "d", "r")
			},
			want: "\"r\" \"c\" \"d\" 2;\n",
		},
		{
			name: "cascade delete empties the report",
			setup: func(s *monitor.Store) {
				for _, e := range []string{"a", "b", "c"} {
					s.AddEntity(e)
				}
				s.AddRelation("a", "c", "r")
				s.AddRelation("b", "c", "r")
				s.DelEntity("c")
			},
			want: "none\n",
		},
		{
			name: "relation vanishes after its only arrow is removed",
			setup: func(s *monitor.Store) {
				s.AddEntity("a")
				s.AddEntity("b")
				s.AddRelation("a", "b", "r")
				s.DelRelation("a", "b", "r")
			},
			want: "none\n",
		},
		{
			name: "multiple relations in alphabetical order",
			setup: func(s *monitor.Store) {
				s.AddEntity("x")
				s.AddEntity("y")
				s.AddRelation("x", "y", "zeta")
				s.AddRelation("x", "y", "alpha")
			},
			want: "\"alpha\" \"y\" 1; \"zeta\" \"y\" 1;\n",
		},
		{
			name: "unknown endpoint is a no-op",
			setup: func(s *monitor.Store) {
				s.AddEntity("a")
				s.AddRelation("a", "ghost", "r")
			},
			want: "none\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			tt.setup(s)
			assert.Equal(t, tt.want, s.Report())
		})
	}
}

func TestRelationReappearsAfterEmptying(t *testing.T) {
	s := newStore()
	s.AddEntity("a")
	s.AddEntity("b")
	s.AddRelation("a", "b", "r")
	s.DelRelation("a", "b", "r")
	assert.Equal(t, "none\n", s.Report())

	s.AddRelation("a", "b", "r")
	assert.Equal(t, "\"r\" \"b\" 1;\n", s.Report())
}

func TestEntityNamespaceIndependentFromRelationNamespace(t *testing.T) {
	s := newStore()
	s.AddEntity("knows")
	s.AddEntity("bob")
	s.AddRelation("knows", "bob", "knows")

	assert.Equal(t, "\"knows\" \"bob\" 1;\n", s.Report())
}

func TestAddEntityIdempotent(t *testing.T) {
	s := newStore()
	s.AddEntity("a")
	s.AddEntity("a")
	s.AddEntity("b")
	s.AddRelation("a", "b", "r")
	s.AddRelation("a", "b", "r")

	assert.Equal(t, "\"r\" \"b\" 1;\n", s.Report())
}

func TestDelEntIdempotent(t *testing.T) {
	s := newStore()
	s.AddEntity("a")
	s.DelEntity("a")
	s.DelEntity("a") // must not panic or change anything observable
	assert.Equal(t, "none\n", s.Report())
}

func TestAddRelAfterDelEntRequiresReRegistration(t *testing.T) {
	s := newStore()
	s.AddEntity("a")
	s.AddEntity("b")
	s.AddRelation("a", "b", "r")
	s.DelEntity("b")
	s.AddRelation("a", "b", "r") // b is no longer registered
	assert.Equal(t, "none\n", s.Report())

	s.AddEntity("b")
	s.AddRelation("a", "b", "r")
	assert.Equal(t, "\"r\" \"b\" 1;\n", s.Report())
}
