// Package autoload registers all built-in channel factories.
package autoload

import (
	_ "deskpilot/pkg/channels/console"
	_ "deskpilot/pkg/channels/telegram"
	_ "deskpilot/pkg/channels/web"
)
