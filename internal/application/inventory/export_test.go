package inventory

import "time"

// SetClock fija el reloj del caso de uso y de su procesador.
func (uc *MovementUseCase) SetClock(now func() time.Time) {
	uc.now = now
	uc.processor.now = now
}
