package convert

import "fmt"

// noStackPlaceholder подставляется при отсутствии stack trace.
const noStackPlaceholder = "no stack trace available"

// Fault — явный tagged-вариант входного значения "ошибка с трассировкой стека".
// Заменяет динамическую duck-typing проверку "похоже ли значение на ошибку":
// вызывающий код оборачивает error в Fault явно через NewFault.
type Fault struct {
	// Message — текст ошибки.
	Message string

	// Stack — трассировка стека. Может быть пустой.
	Stack string
}

// NewFault создаёт Fault из обычной ошибки (без stack trace).
// Для nil возвращает nil.
func NewFault(err error) *Fault {
	if err == nil {
		return nil
	}
	return &Fault{Message: err.Error()}
}

// stackOrPlaceholder возвращает Stack или placeholder при его отсутствии.
func (f *Fault) stackOrPlaceholder() string {
	if f.Stack == "" {
		return noStackPlaceholder
	}
	return f.Stack
}

// renderText форматирует Fault для текстового файла-вложения.
func (f *Fault) renderText() string {
	return fmt.Sprintf("ERROR: %s\n\nSTACK TRACE:\n%s", f.Message, f.stackOrPlaceholder())
}

// faultOf извлекает Fault из значения (по указателю или по значению).
func faultOf(value any) (*Fault, bool) {
	switch v := value.(type) {
	case *Fault:
		return v, v != nil
	case Fault:
		return &v, true
	default:
		return nil, false
	}
}
