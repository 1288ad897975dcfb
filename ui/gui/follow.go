package gui

import (
	"context"

	"multiverse/src/convert/convsnap"
	"multiverse/ui/gui/gbase"
	"multiverse/ui/gui/gcolor"
	"multiverse/ui/gui/gwatch"
)

// Follow reloads the snapshot and theme files whenever they are written.
// Either path may be empty. Bad files are logged and the view keeps the
// previous state.
func (gp *GUIProcessing) Follow(ctx context.Context, w *gwatch.Watcher, snapshotPath, themePath string) error {
	var snapName, themeName string
	var err error
	if snapshotPath != "" {
		if snapName, err = w.Add(snapshotPath); err != nil {
			return err
		}
	}
	if themePath != "" {
		if themeName, err = w.Add(themePath); err != nil {
			return err
		}
	}

	go w.Run(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case name := <-w.Changes():
				switch name {
				case snapName:
					gp.reloadSnapshot(name)
				case themeName:
					gp.reloadTheme(name)
				default:
				}
			}
		}
	}()
	return nil
}

func (gp *GUIProcessing) reloadSnapshot(path string) {
	s, err := convsnap.LoadFile(path)
	if err != nil {
		gp.logx.Warnf("snapshot %s: %v", path, err)
		return
	}
	if gp.Phantom {
		s.MergePhantom(gbase.TokenHighlightPhantomBoard, gbase.TokenHighlightCheck)
	}
	gp.logx.Debugf("snapshot %s reloaded", path)
	gp.Push(s)
}

func (gp *GUIProcessing) reloadTheme(path string) {
	t, name, err := gcolor.LoadThemeFile(path)
	if err != nil {
		gp.logx.Warnf("theme %s: %v", path, err)
		return
	}
	gp.logx.Infof("theme %q reloaded", name)
	gp.PushTheme(t)
}
