// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to intents; RuneKeymap maps plain runes.
type Keymap map[tcell.Key]Kind
type RuneKeymap map[rune]Kind

// Processor translates tcell key events into Intents.
type Processor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
}

// NewProcessor creates a processor with the default bindings.
func NewProcessor() *Processor {
	p := &Processor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *Processor) loadDefaultBindings() {
	// --- Special keys ---
	p.keymap[tcell.KeyLeft] = IntentSeekBack
	p.keymap[tcell.KeyRight] = IntentSeekForward
	p.keymap[tcell.KeyHome] = IntentSeekStart
	p.keymap[tcell.KeyEnd] = IntentSeekEnd
	p.keymap[tcell.KeyUp] = IntentSelectPrev
	p.keymap[tcell.KeyDown] = IntentSelectNext
	p.keymap[tcell.KeyTab] = IntentCycleSource
	p.keymap[tcell.KeyDelete] = IntentDelete
	p.keymap[tcell.KeyEscape] = IntentCancel
	p.keymap[tcell.KeyCtrlC] = IntentQuit
	p.keymap[tcell.KeyCtrlR] = IntentRedo

	// --- Runes ---
	p.runeKeymap['q'] = IntentQuit
	p.runeKeymap['p'] = IntentPlace
	p.runeKeymap['x'] = IntentDelete
	p.runeKeymap['C'] = IntentClear
	p.runeKeymap['u'] = IntentUndo
	p.runeKeymap['U'] = IntentRedo
	p.runeKeymap['y'] = IntentYank
	p.runeKeymap['P'] = IntentPut
	p.runeKeymap['t'] = IntentToggleTrash
	p.runeKeymap['c'] = IntentToggleClip
	p.runeKeymap['d'] = IntentToggleDrag
	p.runeKeymap['e'] = IntentToggleEdit
	p.runeKeymap[' '] = IntentPlayPause
	p.runeKeymap['+'] = IntentZoomIn
	p.runeKeymap['='] = IntentZoomIn
	p.runeKeymap['-'] = IntentZoomOut
	p.runeKeymap['['] = IntentNudgeLeft
	p.runeKeymap[']'] = IntentNudgeRight
	p.runeKeymap['{'] = IntentNudgeUp
	p.runeKeymap['}'] = IntentNudgeDown
	p.runeKeymap['h'] = IntentSeekBack
	p.runeKeymap['l'] = IntentSeekForward
	p.runeKeymap['j'] = IntentSelectNext
	p.runeKeymap['k'] = IntentSelectPrev
}

// ProcessEvent decodes a tcell key event into an Intent. Unbound keys yield
// IntentUnknown, which callers ignore.
func (p *Processor) ProcessEvent(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		if kind, ok := p.runeKeymap[ev.Rune()]; ok {
			return Intent{Kind: kind}
		}
		return Intent{Kind: IntentUnknown}
	}
	if kind, ok := p.keymap[ev.Key()]; ok {
		return Intent{Kind: kind}
	}
	return Intent{Kind: IntentUnknown}
}
