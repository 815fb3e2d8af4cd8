// internal/rules/builtin.go
package rules

import (
	_ "embed"
	"fmt"
	"sync"
)

// Embedded default catalog bundled at compile time.
// Single binary deployment without external file dependencies.
//
//go:embed catalog.json
var builtinCatalogJSON []byte

// Several builtin rules reference keys no current detector populates
// (ultimate_available, spike_available, safe_to_plant, spike_planted,
// need_smoke, need_flash, low_health, entering_new_area, close_range).
// They are dormant until a detector supplies those keys and are kept
// verbatim rather than pruned.
var builtinOnce = sync.OnceValues(func() (*Catalog, error) {
	c, err := ParseCatalog(builtinCatalogJSON)
	if err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}
	return c, nil
})

// Builtin returns the embedded default catalog: valorant (16 rules
// including the priority-99 catch-all), csgo (2 rules), dota2 (2 rules).
// Panics if the embedded document is malformed; the document is fixed at
// compile time and covered by tests.
func Builtin() *Catalog {
	c, err := builtinOnce()
	if err != nil {
		panic(err)
	}
	return c
}
