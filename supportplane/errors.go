package supportplane

import "errors"

var (
	// ErrNotCoplanar is returned when plane corners do not share a single z value.
	ErrNotCoplanar = errors.New("plane is not parallel to the XY plane")

	// ErrObjectNotFound is returned when a named object is not in the scene.
	ErrObjectNotFound = errors.New("object not found in scene")

	// ErrNotABox is returned when a plane is requested from a non-box object.
	ErrNotABox = errors.New("object is not a box")

	// ErrNotAxisAligned is returned when an object is rolled or pitched away
	// from the XY plane.
	ErrNotAxisAligned = errors.New("object is not aligned with the XY plane")

	// ErrUnknownClass is returned when an object class has no entry in the
	// height table.
	ErrUnknownClass = errors.New("object class not in height table")

	// ErrNoAttachedObject is returned when a placement height is requested
	// but nothing is attached to the gripper.
	ErrNoAttachedObject = errors.New("no object attached to the gripper")
)
