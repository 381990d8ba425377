// Package cli holds the tracker's command-line commands.
package cli

import (
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/config"
)

// Context is shared by every command's Run method.
type Context struct {
	Config  *config.Config
	Version string
	Logger  *zap.Logger
}
