package models

// ToastLevel is the severity of a transient user-facing message.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast is a transient message surfaced to the user after an action.
type Toast struct {
	Level   ToastLevel `json:"level"`
	Message string     `json:"message"`
}

func SuccessToast(msg string) *Toast { return &Toast{Level: ToastSuccess, Message: msg} }

func ErrorToast(msg string) *Toast { return &Toast{Level: ToastError, Message: msg} }
