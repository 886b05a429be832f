// Command sstcli builds, scans, merges, and inspects sstable files
// directly from the command line, as a thin harness over the block and
// merge layers implemented by this module.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("sstcli: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sstcli",
		Short: "Inspect and manipulate sstable files",
	}
	root.AddCommand(newBuildCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newInspectCmd())
	return root
}
