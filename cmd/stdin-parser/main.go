// Command stdin-parser is a manual-testing aid: it treats each line of
// stdin as one syslog datagram, runs it through the same decode+CLEF
// pipeline the daemon uses per UDP packet, and prints the resulting
// document. It exists so a payload can be exercised without standing up
// a UDP listener.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/datalust/seq-input-syslog/internal/clef"
	"github.com/datalust/seq-input-syslog/internal/decode"
)

func main() {
	writer := clef.NewWriter(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		msg := decode.Message(line, time.Now().UTC())
		doc := clef.Project(msg)
		if err := writer.WriteDocument(doc); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write CLEF document: %s\n", err)
			os.Exit(1)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read from stdin: %s\n", err)
		os.Exit(1)
	}
}
