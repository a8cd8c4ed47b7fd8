//go:build !lensdebug

package lens

const debugContracts = false
