package request

// UnlockRequest represents an owner unlock request. The first unlock sets the PIN.
type UnlockRequest struct {
	Pin string `json:"pin" binding:"required,numeric,min=4,max=6"`
}

// ChangePinRequest represents a PIN change request
type ChangePinRequest struct {
	CurrentPin string `json:"current_pin" binding:"required"`
	NewPin     string `json:"new_pin" binding:"required,numeric,min=4,max=6"`
	ConfirmPin string `json:"confirm_pin" binding:"required,eqfield=NewPin"`
}
