package bp3d

import "errors"

var (
	// ErrNoBins indicates a Pack call with no registered bins.
	ErrNoBins = errors.New("bp3d: no bins registered")
	// ErrNoItems indicates a Pack call with no registered items.
	ErrNoItems = errors.New("bp3d: no items registered")
	// ErrUnknownBindingGroup indicates a binding bucket names a group that
	// does not appear on any registered item.
	ErrUnknownBindingGroup = errors.New("bp3d: binding group matches no item")
)
