package gui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"multiverse/src/base"
	"multiverse/src/logx"
	"multiverse/ui/gui/gbase"
	"multiverse/ui/gui/gbase/gconf"
	"multiverse/ui/gui/gcolor"
	"multiverse/ui/gui/gdraw"
	"multiverse/ui/gui/ghelper"
	"multiverse/ui/gui/ghelper/gclipboard"
	"multiverse/ui/gui/ghelper/gfont"
	"multiverse/ui/gui/ghelper/gimages"
	"multiverse/ui/gui/glod"
	"multiverse/ui/gui/gview"
)

const (
	title       = "Multiverse"
	focusLabel  = "Focus"
	focusW      = 72
	focusH      = 28
	focusRadius = 8
	uiPad       = 8
)

// GUIProcessing is the ebiten game hosting the board view
type GUIProcessing struct {
	cfg   *gconf.Config
	logx  logx.Logger
	ctx   context.Context
	fonts *gfont.Fonts

	surface *ghelper.Surface
	view    *gview.Viewport
	board   *gdraw.BoardRenderer
	colors  *gcolor.Resolver
	loader  *glod.Loader
	input   *ghelper.InputPoller
	status  ghelper.StatusBar
	focus   *ghelper.Button

	snapshots chan *base.Snapshot
	themes    chan gcolor.Theme

	piecesShown bool
	lastUpdate  time.Time

	// Phantom folds phantom boards into snapshots reloaded by Follow
	Phantom bool
}

func NewGUI(cfg *gconf.Config, l logx.Logger) (*GUIProcessing, error) {
	theme, err := loadTheme(cfg)
	if err != nil {
		return nil, err
	}
	fonts, err := gfont.LoadFonts(cfg.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("error load fonts: %w", err)
	}

	gp := &GUIProcessing{
		cfg:       cfg,
		logx:      l,
		ctx:       context.Background(),
		fonts:     fonts,
		colors:    gcolor.NewResolver(theme, l.Named("color")),
		loader:    glod.NewLoader(loadGlyphs(cfg, l), glod.LetterGlyphs(base.PieceLetters), l.Named("lod")),
		snapshots: make(chan *base.Snapshot, 1),
		themes:    make(chan gcolor.Theme, 1),
	}

	gp.surface = ghelper.NewSurface(cfg.WindowW, cfg.WindowH, fonts)
	gp.view, err = gview.NewViewport(gp.surface, cfg.Viewport, l.Named("view"))
	if err != nil {
		return nil, err
	}
	gp.board = gdraw.NewBoardRenderer(gp.view, gp.colors, gp.loader, l.Named("board"))
	gp.board.Debug = cfg.Debug
	gp.board.ShowLabels = cfg.ShowLabels
	gp.board.Bind(gp.view)
	gp.board.OnClickSquare = gp.onClickSquare

	gp.status.Face = fonts.Status
	gp.focus = &ghelper.Button{
		Label: focusLabel,
		X:     cfg.WindowW - focusW - uiPad, Y: uiPad, W: focusW, H: focusH,
		Scale: 1, TargetScale: 1,
	}
	gp.applyChrome()

	gp.input = ghelper.NewInputPoller(gp.view)
	gp.input.SetArea(gp.surface.Size())
	gp.input.Block = gp.focus.Contains
	return gp, nil
}

// applyChrome colours the overlay widgets from the palette
func (gp *GUIProcessing) applyChrome() {
	pal := gp.colors.Palette()
	gp.status.Fill = pal.GridDark
	gp.status.Stroke = pal.BoardMarginWhite
	gp.status.Text = pal.Label
	gp.status.Invalidate()

	if gp.focus.Image != nil {
		gp.focus.Image.Deallocate()
	}
	gp.focus.Image = ghelper.RenderRoundedRect(focusW, focusH, focusRadius, pal.GridDark, pal.BoardMarginBlack, 1.5)
}

func loadTheme(cfg *gconf.Config) (gcolor.Theme, error) {
	if cfg.ThemeFile == "" {
		return gcolor.BuiltinTheme(gbase.ThemeFromString(cfg.Theme)), nil
	}
	t, _, err := gcolor.LoadThemeFile(cfg.ThemeFile)
	if err != nil {
		return nil, fmt.Errorf("error load theme: %w", err)
	}
	return t, nil
}

// loadGlyphs reads the mapped piece files. Broken entries are logged and
// left to the fallback letters.
func loadGlyphs(cfg *gconf.Config, l logx.Logger) map[string]glod.Glyph {
	if cfg.AssetsDir == "" {
		return nil
	}
	fsys := os.DirFS(cfg.AssetsDir)
	m := gimages.Mapping(cfg.Pieces)
	if len(m) == 0 {
		m = gimages.Discover(fsys)
	}
	glyphs, err := gimages.LoadGlyphs(fsys, m)
	if err != nil {
		l.Warnf("piece assets in %s: %v", cfg.AssetsDir, err)
	}
	l.Infof("piece assets: %d of %d mapped symbols loaded", len(glyphs), len(m))
	return glyphs
}

// Push hands a snapshot to the game loop. Only the newest pending one is
// kept. Safe to call from any goroutine.
func (gp *GUIProcessing) Push(s *base.Snapshot) {
	for {
		select {
		case gp.snapshots <- s:
			return
		default:
		}
		select {
		case <-gp.snapshots:
		default:
		}
	}
}

// PushTheme swaps the theme on the next update. Safe to call from any
// goroutine.
func (gp *GUIProcessing) PushTheme(t gcolor.Theme) {
	for {
		select {
		case gp.themes <- t:
			return
		default:
		}
		select {
		case <-gp.themes:
		default:
		}
	}
}

func (gp *GUIProcessing) onClickSquare(sq base.Square) {
	if !gp.cfg.CopyOnClick || gclipboard.Unsupported() {
		return
	}
	if err := gclipboard.WriteAll(sq.String()); err != nil {
		gp.logx.Warnf("clipboard: %v", err)
	}
}

// Run blocks until the window closes or ctx ends
func (gp *GUIProcessing) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	gp.ctx = ctx
	gp.loader.Start(ctx)

	ebiten.SetWindowSize(gp.cfg.WindowW, gp.cfg.WindowH)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	gp.view.StartAnimation()

	err := ebiten.RunGame(gp)
	if errors.Is(err, gbase.ErrExit) {
		return nil
	}
	return err
}

func (gp *GUIProcessing) Update() error {
	select {
	case <-gp.ctx.Done():
		return gbase.ErrExit
	default:
	}

	now := time.Now()
	dt := 0.0
	if !gp.lastUpdate.IsZero() {
		dt = now.Sub(gp.lastUpdate).Seconds()
	}
	gp.lastUpdate = now

	select {
	case s := <-gp.snapshots:
		if err := gp.board.SetData(s); err != nil {
			gp.logx.Errorf("snapshot rejected: %v", err)
		}
	default:
	}
	select {
	case t := <-gp.themes:
		gp.colors.SetTheme(t)
		gp.board.ReloadColors()
		gp.applyChrome()
	default:
	}

	if !gp.piecesShown && gp.loader.Selector() != nil {
		gp.piecesShown = true
		gp.view.StartAnimation()
	}

	mx, my := ebiten.CursorPosition()
	if gp.focus.HandleInput(mx, my,
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)) {
		gp.board.GoToNextFocus()
	}
	gp.focus.UpdateAnim(dt)

	gp.input.Poll(now)
	gp.view.Tick(now)
	return nil
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	screen.DrawImage(gp.surface.Image(), nil)

	pal := gp.colors.Palette()
	_, h := gp.surface.Size()
	gp.status.Draw(screen, gp.board.Status(), uiPad, h-uiPad)
	gp.focus.DrawAnimated(screen, gp.fonts.Status, pal.Label)

	if gp.cfg.Debug {
		cam := gp.view.Camera()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %0.2f FPS: %0.2f\nzoom %.3f %s\n%s",
			ebiten.ActualTPS(), ebiten.ActualFPS(), cam.ZoomLevel(), gp.view.Gesture(), gp.board.Window()))
	}
}

func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if gp.surface.SetSize(outsideWidth, outsideHeight) {
		w, h := gp.surface.Size()
		gp.input.SetArea(w, h)
		gp.focus.X = w - focusW - uiPad
		gp.view.Resize()
		gp.view.StartAnimation()
	}
	return gp.surface.Size()
}

// Board exposes the renderer to hosts, e.g. to install click handlers
func (gp *GUIProcessing) Board() *gdraw.BoardRenderer {
	return gp.board
}
