package ports

import "github.com/alx-cc/sensor-scope/internal/domain"

// Renderer consumes one Frame per refresh tick and owns all presentation.
type Renderer interface {
	RenderFrame(f domain.Frame) error
	Name() string
}
