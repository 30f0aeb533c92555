package domain

// Actor is the authenticated identity a handler extracts from the JWT
// claims. Capability checks take an Actor so role branching lives in one
// place instead of being repeated across handlers.
type Actor struct {
	UserID int64
	Role   UserRole
}

// CanManageStudio reports whether the actor may mutate the studio and its
// availability grid: the owning user or an admin.
func CanManageStudio(actor Actor, studioOwnerID int64) bool {
	if actor.Role == RoleAdmin {
		return true
	}
	return actor.Role == RoleStudioOwner && actor.UserID == studioOwnerID
}

// CanManageBooking reports whether the actor may delete a booking.
// Customers cannot cancel their own bookings; only the studio's owner or
// an admin can.
func CanManageBooking(actor Actor, studioOwnerID int64) bool {
	return CanManageStudio(actor, studioOwnerID)
}
