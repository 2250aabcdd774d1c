package panel

import "fmt"

// ModalKind identifies which modal flow is active.
type ModalKind int

const (
	ModalIdle ModalKind = iota
	ModalPickingOption
	ModalAddingExisting
	ModalCreatingCustom
	ModalCustomizingExisting
)

func (k ModalKind) String() string {
	switch k {
	case ModalIdle:
		return "idle"
	case ModalPickingOption:
		return "picking-option"
	case ModalAddingExisting:
		return "adding-existing"
	case ModalCreatingCustom:
		return "creating-custom"
	case ModalCustomizingExisting:
		return "customizing-existing"
	}
	return fmt.Sprintf("modal(%d)", int(k))
}

// Modal is the single active modal. ResourceID is set only for
// ModalCustomizingExisting.
type Modal struct {
	Kind       ModalKind
	ResourceID string
}

func (m Modal) String() string {
	if m.Kind == ModalCustomizingExisting {
		return m.Kind.String() + "(" + m.ResourceID + ")"
	}
	return m.Kind.String()
}

// Modals is the modal state machine. The zero value is idle.
type Modals struct {
	current Modal
}

// Current returns the active modal.
func (m *Modals) Current() Modal { return m.current }

// OpenPicker enters the pick-option step, replacing any open modal.
func (m *Modals) OpenPicker() {
	m.current = Modal{Kind: ModalPickingOption}
}

// ChooseExisting moves from the picker to adding a catalog roadmap.
func (m *Modals) ChooseExisting() error {
	return m.fromPicker(ModalAddingExisting)
}

// ChooseCustom moves from the picker to creating a custom roadmap.
func (m *Modals) ChooseCustom() error {
	return m.fromPicker(ModalCreatingCustom)
}

func (m *Modals) fromPicker(next ModalKind) error {
	if m.current.Kind != ModalPickingOption {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, next)
	}
	m.current = Modal{Kind: next}
	return nil
}

// Customize opens the customization flow for a roadmap, replacing any open modal.
func (m *Modals) Customize(resourceID string) {
	m.current = Modal{Kind: ModalCustomizingExisting, ResourceID: resourceID}
}

// Close returns to idle.
func (m *Modals) Close() {
	m.current = Modal{}
}
