// Package api defines the wire types and the gRPC service descriptor of the
// rebacs.v1.RelationService. Messages travel JSON-encoded; see codec.go.
package api

// Entity identifies a concrete actor or object.
type Entity struct {
	Namespace string `json:"namespace"`
	ID        string `json:"id"`
}

// PermissionSet identifies a named permission on an object.
type PermissionSet struct {
	Namespace string `json:"namespace"`
	ID        string `json:"id"`
	Relation  string `json:"relation"`
}

// Subject is a one-of over the two node kinds. Exactly one field must be
// set.
type Subject struct {
	Entity *Entity        `json:"entity,omitempty"`
	Set    *PermissionSet `json:"set,omitempty"`
}

type GrantRequest struct {
	Src *Subject       `json:"src"`
	Dst *PermissionSet `json:"dst"`
}

type GrantResponse struct{}

type RevokeRequest struct {
	Src *Subject       `json:"src"`
	Dst *PermissionSet `json:"dst"`
}

type RevokeResponse struct{}

type ExistsRequest struct {
	Src *Subject       `json:"src"`
	Dst *PermissionSet `json:"dst"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type IsPermittedRequest struct {
	Src *Subject       `json:"src"`
	Dst *PermissionSet `json:"dst"`
}

type IsPermittedResponse struct {
	Permitted bool `json:"permitted"`
}

type ExpandRequest struct {
	Dst *PermissionSet `json:"dst"`
}

// ExpandedEntity is one expansion result: an entity holding the permission,
// with the permission set chain from the entity to the expanded set.
type ExpandedEntity struct {
	Src  *Entity          `json:"src"`
	Path []*PermissionSet `json:"path"`
}

type ExpandResponse struct {
	Entities []*ExpandedEntity `json:"entities"`
}
