// Package input turns device state into logical intents.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/skyrunner/internal/application/system"
)

// KeyState reports key levels and edges for the current frame
type KeyState interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

// ebitenKeys reads the ebiten keyboard
type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool      { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// Bindings maps each logical action to the keys that trigger it
type Bindings struct {
	Left  []ebiten.Key
	Right []ebiten.Key
	Jump  []ebiten.Key
	Drop  []ebiten.Key
}

// DefaultBindings returns WASD plus arrows, with Space as an extra jump key
func DefaultBindings() Bindings {
	return Bindings{
		Left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Jump:  []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp, ebiten.KeySpace},
		Drop:  []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
	}
}

// Keyboard produces one Intent per frame from key state
type Keyboard struct {
	keys     KeyState
	bindings Bindings
}

// NewKeyboard reads the ebiten keyboard with the given bindings
func NewKeyboard(b Bindings) *Keyboard {
	return NewKeyboardWithState(ebitenKeys{}, b)
}

// NewKeyboardWithState reads an arbitrary key source
func NewKeyboardWithState(keys KeyState, b Bindings) *Keyboard {
	return &Keyboard{keys: keys, bindings: b}
}

// Intent samples the keyboard. Jump edges fire once per physical press or release;
// a release of one jump key while another is still held is not a release.
func (k *Keyboard) Intent() system.Intent {
	jumpHeld := k.any(k.keys.Pressed, k.bindings.Jump)
	return system.Intent{
		MoveLeft:           k.any(k.keys.Pressed, k.bindings.Left),
		MoveRight:          k.any(k.keys.Pressed, k.bindings.Right),
		JumpPressed:        k.any(k.keys.JustPressed, k.bindings.Jump),
		JumpReleased:       !jumpHeld && k.any(k.keys.JustReleased, k.bindings.Jump),
		DropThroughPressed: k.any(k.keys.JustPressed, k.bindings.Drop),
	}
}

func (k *Keyboard) any(test func(ebiten.Key) bool, keys []ebiten.Key) bool {
	for _, key := range keys {
		if test(key) {
			return true
		}
	}
	return false
}
