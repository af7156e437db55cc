// Package graph assembles the profile/connection network into node and
// edge lists for the force-directed visualization.
package graph

import (
	"github.com/synapselink/backend/internal/db"
)

// nodeColor is a presentation constant consumed by the visualization.
const nodeColor = "#00f0ff"

type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Color    string `json:"colorTag"`
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type Data struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Assemble maps profiles and connections onto node and edge lists.
//
// Every profile becomes a node, connected or not; only accepted
// connections become edges. Parallel edges are kept as-is. Empty inputs
// produce empty (non-nil) lists.
func Assemble(profiles []db.Profile, connections []db.Connection) Data {
	nodes := make([]Node, 0, len(profiles))
	for _, p := range profiles {
		name := p.Name
		if name == "" {
			name = "Unnamed"
		}
		nodes = append(nodes, Node{
			ID:       p.ID,
			Name:     name,
			ImageURL: p.ImageURL,
			Color:    nodeColor,
		})
	}

	edges := make([]Edge, 0)
	for _, c := range connections {
		if c.Status != db.StatusAccepted {
			continue
		}
		edges = append(edges, Edge{Source: c.FromUserID, Target: c.ToUserID})
	}

	return Data{Nodes: nodes, Edges: edges}
}
