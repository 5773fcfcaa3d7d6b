package pdraw

import "errors"

// Configuration errors. They report misuse of the API and abort the draw
// cycle in which they occur.
var (
	ErrNoCanvas           = errors.New("pdraw: no canvas")
	ErrUnknownProperty    = errors.New("pdraw: unknown property")
	ErrWrongPropertyType  = errors.New("pdraw: wrong property type")
	ErrUnknownOption      = errors.New("pdraw: unknown option")
	ErrOptionNoValue      = errors.New("pdraw: option has no value")
	ErrOptionNoReset      = errors.New("pdraw: option has no reset value")
	ErrOptionNotBool      = errors.New("pdraw: option is not a bool")
	ErrRestoreWithoutSave = errors.New("pdraw: restore without matching save")
	ErrUnknownDashPattern = errors.New("pdraw: unknown dash pattern")
	ErrUnknownSequence    = errors.New("pdraw: unknown sequence")
	ErrBadSequence        = errors.New("pdraw: inconsistent sequence definition")
)
