package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/synapselink/backend/internal/db"
)

func TestAssemble(t *testing.T) {
	profiles := []db.Profile{
		{ID: "u1", Name: "User One", ImageURL: "http://img/1"},
		{ID: "u2", Name: "User Two", ImageURL: "http://img/2"},
	}
	connections := []db.Connection{
		{FromUserID: "u1", ToUserID: "u2", Status: db.StatusAccepted},
	}

	data := Assemble(profiles, connections)

	assert.Len(t, data.Nodes, 2)
	assert.Len(t, data.Edges, 1)
	assert.Equal(t, "u1", data.Edges[0].Source)
	assert.Equal(t, "u2", data.Edges[0].Target)
}

func TestAssembleSkipsNonAcceptedEdges(t *testing.T) {
	profiles := []db.Profile{{ID: "u1"}, {ID: "u2"}}
	connections := []db.Connection{
		{FromUserID: "u1", ToUserID: "u2", Status: db.StatusDeclined},
		{FromUserID: "u2", ToUserID: "u1", Status: db.StatusPending},
	}

	data := Assemble(profiles, connections)

	assert.Len(t, data.Nodes, 2)
	assert.Len(t, data.Edges, 0)
}

func TestAssembleNameFallback(t *testing.T) {
	data := Assemble([]db.Profile{{ID: "u1", Name: ""}}, nil)
	assert.Equal(t, "Unnamed", data.Nodes[0].Name)
}

func TestAssembleKeepsOrphanNodes(t *testing.T) {
	profiles := []db.Profile{{ID: "u1"}, {ID: "loner"}}
	data := Assemble(profiles, nil)
	assert.Len(t, data.Nodes, 2)
}

func TestAssembleEmptyInputs(t *testing.T) {
	data := Assemble(nil, nil)
	assert.NotNil(t, data.Nodes)
	assert.NotNil(t, data.Edges)
	assert.Len(t, data.Nodes, 0)
	assert.Len(t, data.Edges, 0)
}
