package main

import (
	"github.com/intellect4all/lsmtree/sstable"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <table.sst>",
		Short: "Print an sstable's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sst, err := openTable(args[0])
			if err != nil {
				return err
			}
			defer sst.Close()

			cmd.Printf("id:          %d\n", sst.ID())
			cmd.Printf("blocks:      %d\n", sst.NumBlocks())
			cmd.Printf("first key:   %q\n", sst.FirstKey())
			cmd.Printf("last key:    %q\n", sst.LastKey())
			cmd.Printf("max_ts:      %d (reserved)\n", sst.MaxTs())

			it, err := sstable.CreateAndSeekToFirst(sst)
			if err != nil {
				return err
			}
			cmd.Printf("active iters: %d\n", it.NumActiveIterators())
			return nil
		},
	}
	return cmd
}
