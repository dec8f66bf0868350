package server

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/solitaire/internal/view"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Board  *BoardSettings `hcl:"board,block"`
	Games  *GameSettings  `hcl:"games,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// BoardSettings sizes the board sent to browsers, in pixels.
type BoardSettings struct {
	CardWidth  float64 `hcl:"card_width,optional"`
	CardHeight float64 `hcl:"card_height,optional"`
	ColumnGap  float64 `hcl:"column_gap,optional"`
	RowGap     float64 `hcl:"row_gap,optional"`
	FanOffset  float64 `hcl:"fan_offset,optional"`
	DragMargin float64 `hcl:"drag_margin,optional"`
	OriginX    float64 `hcl:"origin_x,optional"`
	OriginY    float64 `hcl:"origin_y,optional"`
}

// GameSettings picks the game dealt on connect and extra variation files.
type GameSettings struct {
	Default string   `hcl:"default,optional"`
	Files   []string `hcl:"files,optional"`
}

const defaultGame = "klondike"

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	c := &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
	}
	c.applyDefaults()
	return c
}

// LoadServerConfig loads server configuration from an HCL file. A missing
// file yields the defaults.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseServerConfig(src, filename)
}

// ParseServerConfig decodes an HCL configuration document.
func ParseServerConfig(src []byte, filename string) (*ServerConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *ServerConfig) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	def := view.DefaultGeometry()
	if c.Board == nil {
		c.Board = &BoardSettings{}
	}
	b := c.Board
	for _, f := range []struct {
		v   *float64
		def float64
	}{
		{&b.CardWidth, def.CardWidth},
		{&b.CardHeight, def.CardHeight},
		{&b.ColumnGap, def.ColumnGap},
		{&b.RowGap, def.RowGap},
		{&b.FanOffset, def.FanOffset},
		{&b.DragMargin, def.DragMargin},
	} {
		if *f.v == 0 {
			*f.v = f.def
		}
	}

	if c.Games == nil {
		c.Games = &GameSettings{}
	}
	if c.Games.Default == "" {
		c.Games.Default = defaultGame
	}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}

	if c.Board != nil {
		if c.Board.CardWidth <= 0 || c.Board.CardHeight <= 0 {
			return fmt.Errorf("board: card size must be positive")
		}
		if c.Board.ColumnGap < 0 || c.Board.RowGap < 0 {
			return fmt.Errorf("board: gaps must not be negative")
		}
		if c.Board.FanOffset < 0 || c.Board.DragMargin < 0 {
			return fmt.Errorf("board: fan offset and drag margin must not be negative")
		}
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Level returns the configured log level, falling back to info.
func (c *ServerConfig) Level() log.Level {
	level, err := log.ParseLevel(c.Server.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Geometry returns the board geometry described by the board block.
func (c *ServerConfig) Geometry() view.Geometry {
	g := view.DefaultGeometry()
	if b := c.Board; b != nil {
		g = view.Geometry{
			CardWidth:  b.CardWidth,
			CardHeight: b.CardHeight,
			ColumnGap:  b.ColumnGap,
			RowGap:     b.RowGap,
			FanOffset:  b.FanOffset,
			DragMargin: b.DragMargin,
			Origin:     view.Point{X: b.OriginX, Y: b.OriginY},
		}
	}
	return g
}

// DefaultGame returns the game dealt to new sessions.
func (c *ServerConfig) DefaultGame() string {
	if c.Games == nil || c.Games.Default == "" {
		return defaultGame
	}
	return c.Games.Default
}

// GameFiles returns the extra variation files to load.
func (c *ServerConfig) GameFiles() []string {
	if c.Games == nil {
		return nil
	}
	return c.Games.Files
}
