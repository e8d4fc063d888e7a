package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

const promptLayout = "02.01.2006"

// PromptDate asks for a cutoff date as DD.MM.YYYY until a valid one is
// entered. Empty input or end of input keeps def.
func PromptDate(in io.Reader, out io.Writer, def time.Time) time.Time {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Date [%s]: ", def.Format(promptLayout))
		if !sc.Scan() {
			fmt.Fprintln(out)
			return def
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			return def
		}
		if d, err := time.Parse(promptLayout, text); err == nil {
			return d
		}
		fmt.Fprintln(out, "invalid date")
	}
}
