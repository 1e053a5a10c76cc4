// Package all wires every adapter into the registry via side-effect imports.
// Entry points import it once instead of tracking individual adapter packages
package all

import (
	_ "veracity/internal/adapters/providers/heuristic"
	_ "veracity/internal/adapters/providers/speech"
	_ "veracity/internal/adapters/providers/textmodel"
	_ "veracity/internal/adapters/providers/videointel"
	_ "veracity/internal/adapters/providers/vision"
)
