package system

import (
	"errors"
	"fmt"
	"log"
)

var (
	// ErrInvalidProjectile marks projectile data that cannot be simulated (NaN/Inf state, empty size)
	ErrInvalidProjectile = errors.New("invalid projectile")
	// ErrInvalidEnemy marks an enemy whose kind has no behavior or whose state is unusable
	ErrInvalidEnemy = errors.New("invalid enemy")
)

func loggerOrDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}

// guard runs one entity's update. A returned error or a panic is logged and
// reported as false so the caller skips the entity for this frame.
func guard(logger *log.Logger, component string, id any, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("[%s] entity %v skipped: %v", component, id, r)
			ok = false
		}
	}()

	if err := fn(); err != nil {
		logger.Printf("[%s] entity %v skipped: %v", component, id, err)
		return false
	}
	return true
}

func invalidf(base error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}
