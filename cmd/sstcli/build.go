package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/intellect4all/lsmtree/sstable"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var blockSize int
	var compress bool
	var id uint64

	cmd := &cobra.Command{
		Use:   "build <input> <output.sst>",
		Short: "Build an sstable from a sorted tab-separated key/value input file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := sstable.DefaultOptions()
			opts.BlockSize = blockSize
			opts.Compress = compress

			b := sstable.NewBuilder(opts)
			n, err := loadEntries(args[0], b)
			if err != nil {
				return err
			}

			sst, err := b.Build(id, nil, args[1])
			if err != nil {
				return fmt.Errorf("building %s: %w", args[1], err)
			}
			defer sst.Close()

			cmd.Printf("wrote %d entries across %d blocks to %s\n", n, sst.NumBlocks(), args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&blockSize, "block-size", sstable.DefaultOptions().BlockSize, "target block size in bytes")
	cmd.Flags().BoolVar(&compress, "compress", false, "snappy-compress block payloads")
	cmd.Flags().Uint64Var(&id, "id", 1, "sstable id recorded on the table")
	return cmd
}

// loadEntries reads "key\tvalue" lines from path and feeds them to b in
// file order, which must already be key-ascending.
func loadEntries(path string, b *sstable.Builder) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		key := parts[0]
		value := ""
		if len(parts) == 2 {
			value = parts[1]
		}
		if err := b.Add([]byte(key), []byte(value)); err != nil {
			return n, fmt.Errorf("adding %q: %w", key, err)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}
