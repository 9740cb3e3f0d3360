package mtree

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Dump writes one line per node of t to w, in index order:
// the hash in uppercase hexadecimal,
// then the node index, previous, next, and parent indices,
// tab separated, with -1 for absent links.
func (t *Tree) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, n := range t.nodes {
		if _, err := fmt.Fprintf(
			bw, "%s %d\t%d\t%d\t%d\n",
			strings.ToUpper(hex.EncodeToString(n.Hash)),
			n.Index, n.Prev, n.Next, n.Parent,
		); err != nil {
			return fmt.Errorf("failed to write node %d: %w", n.Index, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush tree dump: %w", err)
	}
	return nil
}
