package recognition

import (
	"sync"
	"time"
)

// LastMatch último cliente reconocido por la caja, con la hora del evento.
type LastMatch struct {
	Match        Match
	RecognizedAt time.Time
}

// LastMatchCache caché de capacidad uno: cada reconocimiento exitoso
// reemplaza al anterior. Segura para uso concurrente; se inyecta en los
// casos de uso en lugar de mantener estado global.
type LastMatchCache struct {
	mu   sync.RWMutex
	last *LastMatch
}

func NewLastMatchCache() *LastMatchCache {
	return &LastMatchCache{}
}

// Store registra el reconocimiento más reciente, descartando el anterior.
func (c *LastMatchCache) Store(m Match, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = &LastMatch{Match: m, RecognizedAt: at}
}

// Load devuelve el último reconocimiento y false si aún no hay ninguno.
func (c *LastMatchCache) Load() (LastMatch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.last == nil {
		return LastMatch{}, false
	}
	return *c.last, true
}

// Clear vacía la caché (se usa al cerrar el turno de caja).
func (c *LastMatchCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = nil
}
