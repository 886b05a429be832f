package main

import (
	"fmt"

	"github.com/intellect4all/lsmtree/sstable"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var from string
	var limit int

	cmd := &cobra.Command{
		Use:   "scan <table.sst>",
		Short: "Print entries from an sstable in key order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sst, err := openTable(args[0])
			if err != nil {
				return err
			}
			defer sst.Close()

			var it *sstable.Iterator
			if from != "" {
				it, err = sstable.CreateAndSeekToKey(sst, []byte(from))
			} else {
				it, err = sstable.CreateAndSeekToFirst(sst)
			}
			if err != nil {
				return fmt.Errorf("seeking: %w", err)
			}

			printed := 0
			for it.IsValid() {
				if limit > 0 && printed >= limit {
					break
				}
				tombstone := ""
				if len(it.Value()) == 0 {
					tombstone = " (tombstone)"
				}
				cmd.Printf("%s\t%s%s\n", it.Key(), it.Value(), tombstone)
				printed++
				if err := it.Next(); err != nil {
					return fmt.Errorf("advancing: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "seek to the first entry >= this key before scanning")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many entries (0 = unlimited)")
	return cmd
}

func openTable(path string) (*sstable.SsTable, error) {
	file, err := sstable.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	sst, err := sstable.Open(1, nil, file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sst, nil
}
