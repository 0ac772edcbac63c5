// internal/app/app.go
package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/cutout/internal/asset"
	"github.com/bethropolis/cutout/internal/clipboard"
	"github.com/bethropolis/cutout/internal/config"
	"github.com/bethropolis/cutout/internal/event"
	"github.com/bethropolis/cutout/internal/input"
	"github.com/bethropolis/cutout/internal/logger"
	"github.com/bethropolis/cutout/internal/mode"
	"github.com/bethropolis/cutout/internal/revision"
	"github.com/bethropolis/cutout/internal/scene"
	"github.com/bethropolis/cutout/internal/statusbar"
	"github.com/bethropolis/cutout/internal/texture"
	"github.com/bethropolis/cutout/internal/timeline"
	"github.com/bethropolis/cutout/internal/tui"
)

const stepInterval = 33 * time.Millisecond

// App encapsulates the editor components and the main loop.
type App struct {
	tuiManager     *tui.TUI
	scene          *scene.Scene
	timeline       *timeline.Controller
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	inputProcessor *input.Processor
	clip           *clipboard.Manager
	sources        []string

	// UI-side selection state; never enters the revision log.
	selected  int
	sourceIdx int

	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(cfg *config.Config) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()

	rules, err := mode.ParseRules(cfg.Modes)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}

	catalog := asset.DefaultCatalog()
	if cfg.Editor.AssetCatalog != "" {
		catalog, err = asset.Load(cfg.Editor.AssetCatalog)
		if err != nil {
			tuiManager.Close()
			return nil, err
		}
	}

	log := revision.NewLog(cfg.Editor.HistoryLimit)
	store := texture.NewStore(log)
	modes := mode.NewController(rules, eventManager)
	tl := timeline.NewController(timeline.Config{
		TotalFrames: cfg.Timeline.TotalFrames,
		FPS:         cfg.Timeline.FPS,
		Width:       cfg.Timeline.Width,
		Scale:       cfg.Timeline.Scale,
	}, eventManager)
	tl.Initialize(contentFrames(store))

	scn := scene.New(scene.Config{
		Store:    store,
		Log:      log,
		Modes:    modes,
		Timeline: tl,
		Events:   eventManager,
		Catalog:  catalog,
	})

	appInstance := &App{
		tuiManager:     tuiManager,
		scene:          scn,
		timeline:       tl,
		statusBar:      statusbar.New(statusbar.DefaultConfig()),
		eventManager:   eventManager,
		inputProcessor: input.NewProcessor(),
		clip:           clipboard.NewManager(scn, cfg.Editor.SystemClipboard),
		sources:        catalog.Names(),
		quit:           make(chan struct{}),
		redrawRequest:  make(chan struct{}, 1),
	}

	appInstance.subscribeEvents()
	appInstance.syncStatusBar()
	return appInstance, nil
}

// subscribeEvents wires engine events to status bar updates and redraws.
func (a *App) subscribeEvents() {
	refresh := func(e event.Event) bool {
		a.syncStatusBar()
		a.requestRedraw()
		return false
	}
	a.eventManager.Subscribe(event.TypeTextureAdded, refresh)
	a.eventManager.Subscribe(event.TypeTextureRemoved, refresh)
	a.eventManager.Subscribe(event.TypeTextureTransformed, refresh)
	a.eventManager.Subscribe(event.TypeSceneCleared, refresh)
	a.eventManager.Subscribe(event.TypeHistoryChanged, refresh)
	a.eventManager.Subscribe(event.TypeFrameChanged, refresh)
	a.eventManager.Subscribe(event.TypeModeChanged, refresh)
}

// Run starts the main loop and blocks until quit.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	tcellEvents := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := a.tuiManager.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			select {
			case tcellEvents <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(stepInterval)
	defer ticker.Stop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.draw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("App: Quit signal received.")
			return nil

		case ev := <-tcellEvents:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				a.handleKeyEvent(tev)
			case *tcell.EventResize:
				w, _ := a.tuiManager.Size()
				a.timeline.SetWidth(w - 16)
				a.tuiManager.Sync()
				a.draw()
			}

		case now := <-ticker.C:
			if a.timeline.Step(now) {
				a.draw()
			}

		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// handleKeyEvent decodes a key into an intent, completes its payload from
// the UI selection state and hands it to the scene facade. Rejections
// (mode violations, unknown targets) surface as status messages; they never
// mutate anything.
func (a *App) handleKeyEvent(ev *tcell.EventKey) {
	in := a.inputProcessor.ProcessEvent(ev)
	if in.Kind == input.IntentUnknown {
		return
	}

	switch in.Kind {
	case input.IntentQuit:
		a.signalQuit()
		return

	case input.IntentSelectNext:
		a.moveSelection(1)
		return
	case input.IntentSelectPrev:
		a.moveSelection(-1)
		return
	case input.IntentCycleSource:
		if len(a.sources) > 0 {
			a.sourceIdx = (a.sourceIdx + 1) % len(a.sources)
			a.statusBar.SetTemporaryMessage("source: %s", a.sources[a.sourceIdx])
			a.requestRedraw()
		}
		return

	case input.IntentYank:
		if id, ok := a.selectedID(); ok {
			if err := a.clip.YankTexture(id); err != nil {
				a.statusBar.SetTemporaryMessage("%v", err)
			} else {
				a.statusBar.SetTemporaryMessage("yanked %s", id[:8])
			}
			a.requestRedraw()
		}
		return
	case input.IntentPut:
		if _, err := a.clip.PutTexture(); err != nil {
			a.statusBar.SetTemporaryMessage("%v", err)
			a.requestRedraw()
		}
		return
	}

	in = a.completePayload(in)
	handled, err := a.scene.Dispatch(in)
	if err != nil {
		a.statusBar.SetTemporaryMessage("%v", err)
		a.requestRedraw()
		return
	}
	if !handled && in.Kind == input.IntentCancel {
		a.signalQuit()
		return
	}
	a.clampSelection()
	a.syncStatusBar()
	a.requestRedraw()
}

// completePayload fills intent targets from the selection and catalog state.
func (a *App) completePayload(in input.Intent) input.Intent {
	switch in.Kind {
	case input.IntentPlace:
		if len(a.sources) > 0 {
			in.Source = a.sources[a.sourceIdx]
		}
		n := len(a.scene.Textures())
		in.Transform.X = float64(16 * n)
		in.Transform.Y = float64(8 * n)

	case input.IntentClip:
		if id, ok := a.selectedID(); ok {
			in.ID = id
			in.Insets.Top, in.Insets.Right = 2, 2
			in.Insets.Bottom, in.Insets.Left = 2, 2
		}

	case input.IntentDelete:
		in.ID, _ = a.selectedID()

	case input.IntentNudgeLeft, input.IntentNudgeRight, input.IntentNudgeUp, input.IntentNudgeDown:
		if id, ok := a.selectedID(); ok {
			if item, err := a.scene.Find(id); err == nil {
				dx, dy := 0.0, 0.0
				switch in.Kind {
				case input.IntentNudgeLeft:
					dx = -8
				case input.IntentNudgeRight:
					dx = 8
				case input.IntentNudgeUp:
					dy = -8
				case input.IntentNudgeDown:
					dy = 8
				}
				in.Kind = input.IntentDrag
				in.ID = id
				in.Transform = item.Transform.Translate(dx, dy)
			}
		}
	}
	return in
}

func (a *App) selectedID() (string, bool) {
	items := a.scene.Textures()
	if len(items) == 0 {
		return "", false
	}
	if a.selected >= len(items) {
		a.selected = len(items) - 1
	}
	return items[a.selected].ID, true
}

func (a *App) moveSelection(delta int) {
	items := a.scene.Textures()
	if len(items) == 0 {
		return
	}
	a.selected = (a.selected + delta + len(items)) % len(items)
	a.syncStatusBar()
	a.requestRedraw()
}

func (a *App) clampSelection() {
	if n := len(a.scene.Textures()); a.selected >= n && n > 0 {
		a.selected = n - 1
	} else if n == 0 {
		a.selected = 0
	}
}

func (a *App) syncStatusBar() {
	attrs := a.scene.Attrs()
	a.statusBar.SetFlags(statusbar.ModeFlags{
		Trash:  attrs.Trash,
		Clip:   attrs.Clip,
		Drag:   attrs.Drag,
		Edit:   attrs.Edit,
		Safety: attrs.Safety,
	})
	a.statusBar.SetTimelineDisplay(a.timeline.Display())
	a.statusBar.SetHistory(a.scene.CanUndo(), a.scene.CanRedo())

	if id, ok := a.selectedID(); ok {
		a.statusBar.SetSelected(id[:8])
	} else {
		a.statusBar.SetSelected("")
	}
}

func (a *App) draw() {
	screen := a.tuiManager.GetScreen()
	w, h := a.tuiManager.Size()

	a.tuiManager.Clear()
	tui.DrawTextures(screen, w, 0, a.scene.Textures(), a.selected)
	if h >= 3 {
		tui.DrawTimeline(screen, w, h-2, a.timeline)
	}
	a.statusBar.Draw(screen, w, h)
	a.tuiManager.Show()
}

func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

func (a *App) signalQuit() {
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
}

// contentFrames reports the frame window the store's content needs.
func contentFrames(store *texture.Store) int {
	frames := store.Frames()
	if len(frames) == 0 {
		return 0
	}
	return frames[len(frames)-1] + 1
}
