package api

import "github.com/ferrant/nous/internal/noteservice"

// NodeDetail is the full node response type (aliased from the domain layer).
type NodeDetail = noteservice.NodeDetail

// NodeListItem is a lightweight item in a list response (aliased from the domain layer).
type NodeListItem = noteservice.NodeListItem

// NodeListResponse wraps node listings.
type NodeListResponse struct {
	Nodes []NodeListItem `json:"nodes"`
	Total int            `json:"total"`
}
