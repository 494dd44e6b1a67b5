// main is the entry point for the specboard CLI.
package main

import (
	"github.com/huangsam/specboard/cmd"
	"github.com/huangsam/specboard/internal/contract"
	"github.com/huangsam/specboard/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("Cannot run specboard", err)
	}
}
