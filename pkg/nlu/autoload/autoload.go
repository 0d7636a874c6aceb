// Package autoload registers all built-in NLU providers through their
// init() functions. Import it for side effects from main.
package autoload

import (
	_ "deskpilot/pkg/nlu/gemini"
	_ "deskpilot/pkg/nlu/ollama"
	_ "deskpilot/pkg/nlu/openainlu"
)
