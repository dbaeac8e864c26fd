package grasplan

import "errors"

var (
	// ErrIndexOutOfBounds is returned when a grasp index does not exist.
	ErrIndexOutOfBounds = errors.New("grasp index out of bounds")

	// ErrNoSelection is returned when an operation needs a selected grasp
	// but nothing is selected.
	ErrNoSelection = errors.New("no grasp selected")

	// ErrNegativeCount is returned when a pattern is requested with a
	// negative number of grasps.
	ErrNegativeCount = errors.New("number of grasps cannot be negative")

	// ErrObjectNotInFile is returned when a grasp file has no entry for the
	// requested object class.
	ErrObjectNotInFile = errors.New("object class not found in grasp file")
)
