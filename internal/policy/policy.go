// Package policy holds the role capability table. Ownership checks (is this
// the booking's client, the design's designer) stay in the services; this
// table only answers whether a role may attempt an action at all.
package policy

import (
	"designmarket/internal/domain"
	"designmarket/internal/pkg/apperr"
)

type Resource string

type Action string

const (
	Booking         Resource = "booking"
	Payment         Resource = "payment"
	Design          Resource = "design"
	DesignerProfile Resource = "designer_profile"
	Message         Resource = "message"
	Notification    Resource = "notification"
)

const (
	Create   Action = "create"
	List     Action = "list"
	Read     Action = "read"
	Update   Action = "update"
	Delete   Action = "delete"
	Confirm  Action = "confirm"
	Complete Action = "complete"
	Cancel   Action = "cancel"
	Succeed  Action = "succeed"
)

var (
	anyone       = roles(domain.RoleClient, domain.RoleDesigner, domain.RoleAdmin)
	designerOrAd = roles(domain.RoleDesigner, domain.RoleAdmin)
)

type capability struct {
	resource Resource
	action   Action
}

var table = map[capability]map[domain.UserRole]bool{
	{Booking, Create}:   roles(domain.RoleClient),
	{Booking, List}:     anyone,
	{Booking, Read}:     anyone,
	{Booking, Update}:   roles(domain.RoleClient),
	{Booking, Confirm}:  designerOrAd,
	{Booking, Complete}: designerOrAd,
	{Booking, Cancel}:   anyone,

	{Payment, Create}:  roles(domain.RoleClient, domain.RoleAdmin),
	{Payment, List}:    anyone,
	{Payment, Succeed}: roles(domain.RoleAdmin),

	{Design, Create}: roles(domain.RoleDesigner),
	{Design, Update}: roles(domain.RoleDesigner),
	{Design, Delete}: designerOrAd,

	{DesignerProfile, Update}: roles(domain.RoleDesigner),

	{Message, Create}: anyone,
	{Message, List}:   anyone,
	{Message, Update}: anyone,

	{Notification, List}:   anyone,
	{Notification, Update}: anyone,
}

func roles(rs ...domain.UserRole) map[domain.UserRole]bool {
	m := make(map[domain.UserRole]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

// Allowed reports whether role may perform action on resource. Unknown pairs
// are denied.
func Allowed(role domain.UserRole, resource Resource, action Action) bool {
	return table[capability{resource, action}][role]
}

// Check returns a permission error when the actor's role lacks the capability.
func Check(actor domain.Actor, resource Resource, action Action) error {
	if Allowed(actor.Role, resource, action) {
		return nil
	}
	return apperr.New(apperr.ErrPermissionDenied, "PERMISSION_DENIED",
		"You do not have permission to "+string(action)+" this "+humanize(resource))
}

func humanize(r Resource) string {
	if r == DesignerProfile {
		return "designer profile"
	}
	return string(r)
}
