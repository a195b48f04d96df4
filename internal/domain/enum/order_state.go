package enum

// OrderState tracks whether an order may be finalized
type OrderState string

const (
	// OrderStateEditing has at least one blocking error.
	OrderStateEditing OrderState = "EDITING"
	// OrderStateFinalizable may be saved, printed or shared.
	OrderStateFinalizable OrderState = "FINALIZABLE"
	// OrderStateCommitted is an immutable history record.
	OrderStateCommitted OrderState = "COMMITTED"
)

func (s OrderState) String() string {
	return string(s)
}
