package main

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/benvalle33/blockmerkle/merkle"
)

var (
	createTreeOut string
)

var createCmd = &cobra.Command{
	Use:   "create <input-file>",
	Short: "Build the Merkle tree for a file and print its root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat input: %w", err)
		}
		dataLen := uint64(info.Size())

		tree := make([]byte, merkle.TreeLength(dataLen))
		b := merkle.NewBuilder(sha256.New)
		if err := b.CreateInit(dataLen, uint64(len(tree))); err != nil {
			return fmt.Errorf("init tree: %w", err)
		}

		buf := make([]byte, merkle.NodeSize)
		for {
			n, readErr := io.ReadFull(f, buf)
			if n > 0 {
				if err := b.CreateUpdate(buf[:n], tree); err != nil {
					return fmt.Errorf("update tree: %w", err)
				}
			}
			if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
				break
			}
			if readErr != nil {
				return fmt.Errorf("read input: %w", readErr)
			}
		}

		var root merkle.Digest
		if err := b.CreateFinal(tree, &root); err != nil {
			return fmt.Errorf("finalize tree: %w", err)
		}

		treeOut := createTreeOut
		if treeOut == "" {
			treeOut = args[0] + ".tree"
		}
		if len(tree) > 0 {
			if err := os.WriteFile(treeOut, tree, 0o644); err != nil {
				return fmt.Errorf("write tree: %w", err)
			}
		}

		logger.Infow("tree created", "input", args[0], "dataLen", dataLen, "treeLen", len(tree), "root", root.String())
		fmt.Println(root.String())
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createTreeOut, "tree-out", "", "path to write the auxiliary tree buffer to (default <input-file>.tree)")
}
