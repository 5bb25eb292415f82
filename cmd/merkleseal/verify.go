package main

import (
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benvalle33/blockmerkle/merkle"
)

var (
	verifyTreePath string
	verifyOffset   uint64
	verifyLength   uint64
	verifyRootHex  string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <input-file>",
	Short: "Check a range of a file against a previously produced root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		root, err := merkle.ParseDigest(verifyRootHex)
		if err != nil {
			return fmt.Errorf("parse root: %w", err)
		}

		var tree []byte
		if verifyTreePath != "" {
			tree, err = os.ReadFile(verifyTreePath)
			if err != nil {
				return fmt.Errorf("read tree: %w", err)
			}
		}

		length := verifyLength
		if length == 0 {
			length = uint64(len(data)) - verifyOffset
		}

		err = merkle.Verify(sha256.New, data, uint64(len(data)), tree, uint64(len(tree)), verifyOffset, length, root)
		if err != nil {
			logger.Errorw("verification failed", "input", args[0], "offset", verifyOffset, "length", length, "error", err)
			return err
		}

		logger.Infow("verification succeeded", "input", args[0], "offset", verifyOffset, "length", length)
		fmt.Println("OK")
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyTreePath, "tree", "", "path to the auxiliary tree buffer")
	verifyCmd.Flags().Uint64Var(&verifyOffset, "offset", 0, "start of the range to verify")
	verifyCmd.Flags().Uint64Var(&verifyLength, "length", 0, "length of the range to verify (0 means to end of file)")
	verifyCmd.Flags().StringVar(&verifyRootHex, "root", "", "expected root, as printed by create")
	_ = verifyCmd.MarkFlagRequired("root")
}
