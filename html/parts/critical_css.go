package parts

import (
	"log"
	"os"
	"sync"
)

var (
	cssOnce   sync.Once
	cssCached string
)

// GetCriticalCSS reads the inline stylesheet for server-rendered pages.
// Cached after the first read; missing file renders unstyled pages.
func GetCriticalCSS() (string, error) {
	var err error
	cssOnce.Do(func() {
		var css []byte
		css, err = os.ReadFile("assets/pos.css")
		if err != nil {
			log.Println("Critical CSS error:", err)
			return
		}
		cssCached = string(css)
	})
	return cssCached, err
}
