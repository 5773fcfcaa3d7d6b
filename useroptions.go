package pdraw

import (
	"fmt"
	"slices"
	"strconv"
)

// OptionCallback is called with the new value of an option and with the
// trigger passed to SetOptionWith, if any.
type OptionCallback func(value, trigger any)

type option struct {
	value         any
	hasValue      bool
	resetValue    any
	hasReset      bool
	triggerRedraw bool
	ids           []string
	callbacks     map[string]OptionCallback
}

func (o *option) fire(trigger any) {
	for _, id := range o.ids {
		o.callbacks[id](o.value, trigger)
	}
}

// SetOptionOpts modifies SetOptionWith.
type SetOptionOpts struct {
	// NoRedraw suppresses the redraw after the change.
	NoRedraw bool
	// Trigger is passed to the option callbacks.
	Trigger any
	// SetReset also makes value the new reset value.
	SetReset bool
}

// AddOption registers an externally controlled option. Adding an option
// that already has a value does nothing; adding one whose value was
// cleared assigns value and notifies the callbacks. triggerRedraw controls
// whether SetOption redraws.
func (r *Renderer) AddOption(name string, value any, triggerRedraw bool) {
	o, ok := r.options[name]
	if !ok {
		r.options[name] = &option{
			value:         value,
			hasValue:      true,
			resetValue:    value,
			hasReset:      true,
			triggerRedraw: triggerRedraw,
			callbacks:     make(map[string]OptionCallback),
		}
		return
	}
	if !o.hasValue {
		o.value, o.hasValue = value, true
		o.resetValue, o.hasReset = value, true
		o.fire(nil)
	}
}

func (r *Renderer) option(name string) (*option, error) {
	o, ok := r.options[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return o, nil
}

// SetOption sets an option, notifies its callbacks and redraws.
func (r *Renderer) SetOption(name string, value any) error {
	return r.SetOptionWith(name, value, SetOptionOpts{})
}

// SetOptionWith is SetOption with explicit redraw, trigger and reset
// behavior.
func (r *Renderer) SetOptionWith(name string, value any, opts SetOptionOpts) error {
	o, err := r.option(name)
	if err != nil {
		return err
	}
	o.value, o.hasValue = value, true
	if opts.SetReset {
		o.resetValue, o.hasReset = value, true
	}
	o.fire(opts.Trigger)
	if !opts.NoRedraw && o.triggerRedraw {
		r.requestRedraw()
	}
	return nil
}

// Option returns the value of an option.
func (r *Renderer) Option(name string) (any, error) {
	o, err := r.option(name)
	if err != nil {
		return nil, err
	}
	if !o.hasValue {
		return nil, fmt.Errorf("%w: %s", ErrOptionNoValue, name)
	}
	return o.value, nil
}

// OptionBool returns a boolean option. Errors are recorded and abort the
// current draw cycle.
func (r *Renderer) OptionBool(name string) bool {
	v, err := r.Option(name)
	if err != nil {
		r.fail(err)
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(fmt.Errorf("%w: %s", ErrOptionNotBool, name))
	}
	return b
}

// OptionFloat returns a numeric option. Errors are recorded and abort the
// current draw cycle.
func (r *Renderer) OptionFloat(name string) float64 {
	v, err := r.Option(name)
	if err != nil {
		r.fail(err)
		return 0
	}
	switch v := v.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			r.fail(fmt.Errorf("pdraw: option %s: %w", name, err))
		}
		return f
	}
	r.fail(fmt.Errorf("pdraw: option %s is %T, not a number", name, v))
	return 0
}

// ToggleOption negates a boolean option, notifies its callbacks and
// redraws.
func (r *Renderer) ToggleOption(name string) error {
	o, err := r.option(name)
	if err != nil {
		return err
	}
	if !o.hasValue {
		return fmt.Errorf("%w: %s", ErrOptionNoValue, name)
	}
	b, ok := o.value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOptionNotBool, name)
	}
	o.value = !b
	o.fire(nil)
	r.requestRedraw()
	return nil
}

// RegisterOptionCallback adds cb to the option's callbacks and calls it
// once with the current value. An empty id picks the next free integer
// id; an existing id is replaced. The id used is returned.
func (r *Renderer) RegisterOptionCallback(name string, cb OptionCallback, id string) (string, error) {
	o, err := r.option(name)
	if err != nil {
		return "", err
	}
	if id == "" {
		next := 0
		for _, existing := range o.ids {
			if n, err := strconv.Atoi(existing); err == nil {
				next = max(next, n+1)
			}
		}
		id = strconv.Itoa(next)
	}
	if _, ok := o.callbacks[id]; !ok {
		o.ids = append(o.ids, id)
	}
	o.callbacks[id] = cb
	cb(o.value, nil)
	return id, nil
}

// ClearOptionValue removes the option's value and redraws. Reading the
// option fails until a value is set again. Clearing an option that has
// no value is an error.
func (r *Renderer) ClearOptionValue(name string) error {
	o, err := r.option(name)
	if err != nil {
		return err
	}
	if !o.hasValue {
		return fmt.Errorf("%w: %s", ErrOptionNoValue, name)
	}
	o.value, o.hasValue = nil, false
	r.requestRedraw()
	return nil
}

// ResetOptionValue restores the option's reset value and notifies its
// callbacks.
func (r *Renderer) ResetOptionValue(name string) error {
	o, err := r.option(name)
	if err != nil {
		return err
	}
	if !o.hasReset {
		return fmt.Errorf("%w: %s", ErrOptionNoReset, name)
	}
	o.value, o.hasValue = o.resetValue, true
	o.fire(nil)
	return nil
}

// OptionNames returns the registered option names in sorted order.
func (r *Renderer) OptionNames() []string {
	names := make([]string, 0, len(r.options))
	for name := range r.options {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
