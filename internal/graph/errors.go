package graph

import "errors"

var (
	ErrUnknownNodeType = errors.New("unknown node type")
	ErrNodeNotFound    = errors.New("node not found")
	ErrEdgeNotFound    = errors.New("edge not found")
	ErrSelfConnection  = errors.New("edge cannot connect a node to itself")
	ErrProtectedNode   = errors.New("seed node cannot be deleted")
	ErrProtectedEdge   = errors.New("seed edge cannot be deleted")
)
