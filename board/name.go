package board

import "fmt"

// pinName returns cfg.Name or the GPIO<line> form periph uses.
func pinName(cfg Config) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return fmt.Sprintf("GPIO%d", cfg.Line)
}
