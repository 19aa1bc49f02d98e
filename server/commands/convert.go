// Package commands implements one command object per rpc of the
// RelationService. Command instances may be safely shared by multiple
// go-routines.
package commands

import (
	"github.com/rebacs/rebacs/pkg/api"
	"github.com/rebacs/rebacs/pkg/rebac"
	serverErrors "github.com/rebacs/rebacs/server/errors"
)

// subjectToNode converts the one-of wire subject into a graph node. Exactly
// one of the subject's fields must be set.
func subjectToNode(s *api.Subject) (rebac.Node, error) {
	switch {
	case s == nil:
		return rebac.Node{}, serverErrors.MissingSubject
	case s.Entity != nil && s.Set != nil:
		return rebac.Node{}, serverErrors.MissingSubject
	case s.Entity != nil:
		return rebac.Entity(s.Entity.Namespace, s.Entity.ID), nil
	case s.Set != nil:
		return rebac.PermissionSet(s.Set.Namespace, s.Set.ID, s.Set.Relation), nil
	default:
		return rebac.Node{}, serverErrors.MissingSubject
	}
}

// setToNode converts the wire permission set into a graph node.
func setToNode(s *api.PermissionSet) (rebac.Node, error) {
	if s == nil {
		return rebac.Node{}, serverErrors.MissingDestination
	}
	return rebac.PermissionSet(s.Namespace, s.ID, s.Relation), nil
}
