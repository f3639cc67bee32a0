package eia

import (
	"bytes"
	"fmt"
)

// NodeKind discriminates the two metadata node shapes.
type NodeKind int

const (
	// KindIntermediate is a folder node that lists child routes.
	KindIntermediate NodeKind = iota

	// KindLeaf is a dataset node with facet, frequency, and column
	// descriptors.
	KindLeaf
)

func (k NodeKind) String() string {
	switch k {
	case KindIntermediate:
		return "intermediate"
	case KindLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Child describes one entry in an intermediate node's route listing.
type Child struct {
	ID          string
	Name        string
	Description string
}

// Node is the classified metadata for one route.
//
// Children is populated for intermediate nodes only. The three identifier
// lists are populated for leaves only and are empty, never nil, when the
// API omits a listing.
type Node struct {
	Route       Route
	Kind        NodeKind
	Name        string
	Description string

	Children []Child

	Facets      []string
	Frequencies []string
	Columns     []string
}

// classify interprets a metadata payload.
//
// A payload with a routes key is an intermediate node regardless of what
// else it carries. Otherwise any of the facets, frequency, or data keys
// makes it a leaf. A payload with none of the four keys does not match
// either shape and fails with [ShapeError].
func classify(route Route, payload *metaPayload) (*Node, error) {
	node := &Node{
		Route:       route,
		Name:        payload.Name,
		Description: payload.Description,
	}

	if payload.Routes != nil {
		node.Kind = KindIntermediate
		node.Children = make([]Child, len(*payload.Routes))
		for i, c := range *payload.Routes {
			node.Children[i] = Child(c)
		}
		return node, nil
	}

	hasData := len(payload.Data) > 0 && !bytes.Equal(payload.Data, nullLiteral)
	if payload.Facets == nil && payload.Frequency == nil && !hasData {
		return nil, &ShapeError{Route: route}
	}

	node.Kind = KindLeaf
	node.Facets = idList(payload.Facets)
	node.Frequencies = idList(payload.Frequency)
	node.Columns = []string{}
	if hasData {
		cols, err := orderedKeys(payload.Data)
		if err != nil {
			return nil, &DecodeError{Route: route, Err: fmt.Errorf("data columns: %w", err)}
		}
		node.Columns = cols
	}
	return node, nil
}

func idList(ds *[]idDescriptor) []string {
	if ds == nil {
		return []string{}
	}
	out := make([]string, len(*ds))
	for i, d := range *ds {
		out[i] = d.ID
	}
	return out
}
