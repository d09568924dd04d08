//go:build linux

package linux

import "github.com/mj1618/computer-use/internal/platform"

func init() {
	platform.NewProviderFunc = New
}
