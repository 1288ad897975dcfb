package gconf

import (
	"encoding/json"
	"fmt"
	"os"

	"multiverse/ui/gui/gbase"
	"multiverse/ui/gui/gview"
)

const FileName = "multiverse.json"

type Config struct {
	Viewport    gview.Config      `json:"viewport"`      //
	Theme       string            `json:"theme"`         // light/dark
	ThemeFile   string            `json:"theme_file"`    // YAML theme, wins over theme
	AssetsDir   string            `json:"assets_dir"`    // piece artwork and label.ttf
	Pieces      map[string]string `json:"pieces"`        // symbol -> file in assets_dir
	WindowH     int               `json:"window_h"`      //
	WindowW     int               `json:"window_w"`      //
	Debug       bool              `json:"debug"`         // origin marker and TPS
	ShowLabels  bool              `json:"show_labels"`   // layer/timeline labels
	CopyOnClick bool              `json:"copy_on_click"` // clicked square to clipboard
}

func defaultConfig() Config {
	return Config{
		Viewport:   gview.DefaultConfig(),
		Theme:      string(gbase.ThemeLight),
		AssetsDir:  "assets/pieces",
		WindowH:    gbase.WindowH,
		WindowW:    gbase.WindowW,
		ShowLabels: true,
	}
}

func Default() *Config {
	def := defaultConfig()
	return &def
}

// NewGUIConfig reads file, a missing file gives the defaults
func NewGUIConfig(file string) (*Config, error) {
	if file == "" {
		file = FileName
	}

	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		return Default(), nil
	} else if err != nil {
		return nil, err
	}

	conf, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer conf.Close()

	// absent keys keep their defaults
	c := defaultConfig()
	dec := json.NewDecoder(conf)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config: %w", err)
	}
	correctableConfig(&c)

	return &c, nil
}

func (c *Config) Save(file string) error {
	if file == "" {
		file = FileName
	}
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, jsonData, 0644)
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.Theme != string(gbase.ThemeLight) && c.Theme != string(gbase.ThemeDark) {
		c.Theme = def.Theme
	}
	if c.WindowH <= 0 || c.WindowW <= 0 {
		c.WindowH = def.WindowH
		c.WindowW = def.WindowW
	}
	if c.Viewport.MinZoom >= c.Viewport.MaxZoom {
		c.Viewport.MinZoom = def.Viewport.MinZoom
		c.Viewport.MaxZoom = def.Viewport.MaxZoom
	}
	for sym, file := range c.Pieces {
		if len([]rune(sym)) != 1 || file == "" {
			delete(c.Pieces, sym)
		}
	}
}
